package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

const cacheTTL = 30 * time.Second

var ErrInvalidPeriod = httperr.ErrBusiness("invalid_period")

type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Since is the start of the period counted back from now.
func (p Period) Since(now time.Time) (time.Time, error) {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	case PeriodQuarter:
		return now.AddDate(0, -3, 0), nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, ErrInvalidPeriod
}

type Repository interface {
	CountServiceRequestsSince(ctx context.Context, since time.Time) (int64, error)
	CountLeadsSince(ctx context.Context, since time.Time, status string) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	SumTransactionsSince(ctx context.Context, txType string, since time.Time) (float64, error)
	NextAppointment(ctx context.Context, today string) (*models.Appointment, error)
}

type Stats struct {
	Period          Period    `json:"period"`
	Since           time.Time `json:"since"`
	ServiceRequests int64     `json:"service_requests"`
	Leads           int64     `json:"leads"`
	NewLeads        int64     `json:"new_leads"`
	CompletedJobs   int64     `json:"completed_jobs"`
	Revenue         float64   `json:"revenue"`
	Expenses        float64   `json:"expenses"`
	Profit          float64   `json:"profit"`
	ConversionRate  float64   `json:"conversion_rate"`
	NextJob         string    `json:"next_job"`
}

type GetStats struct {
	repo  Repository
	clock *timezone.Clock
	cache *cache.Cache
}

func NewGetStats(repo Repository, clock *timezone.Clock) *GetStats {
	return &GetStats{
		repo:  repo,
		clock: clock,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (uc *GetStats) Execute(ctx context.Context, p access.Principal, period Period) (*Stats, error) {
	if !access.CanManageLeads(p) {
		return nil, access.ErrForbidden
	}
	if period == "" {
		period = PeriodMonth
	}

	now := uc.clock.Now()
	since, err := period.Since(now)
	if err != nil {
		return nil, err
	}

	if cached, ok := uc.cache.Get(string(period)); ok {
		return cached.(*Stats), nil
	}

	stats, err := uc.compute(ctx, period, since.UTC())
	if err != nil {
		return nil, err
	}

	uc.cache.Set(string(period), stats, cache.DefaultExpiration)
	return stats, nil
}

func (uc *GetStats) compute(ctx context.Context, period Period, since time.Time) (*Stats, error) {
	s := &Stats{Period: period, Since: since}

	var err error
	if s.ServiceRequests, err = uc.repo.CountServiceRequestsSince(ctx, since); err != nil {
		return nil, err
	}
	if s.Leads, err = uc.repo.CountLeadsSince(ctx, since, ""); err != nil {
		return nil, err
	}
	if s.NewLeads, err = uc.repo.CountLeadsSince(ctx, since, "new"); err != nil {
		return nil, err
	}
	if s.CompletedJobs, err = uc.repo.CountCompletedSince(ctx, since); err != nil {
		return nil, err
	}
	if s.Revenue, err = uc.repo.SumTransactionsSince(ctx, "income", since); err != nil {
		return nil, err
	}
	if s.Expenses, err = uc.repo.SumTransactionsSince(ctx, "expense", since); err != nil {
		return nil, err
	}
	s.Profit = round2(s.Revenue - s.Expenses)

	if s.ServiceRequests > 0 {
		s.ConversionRate = round2(float64(s.CompletedJobs) / float64(s.ServiceRequests) * 100)
	}

	next, err := uc.repo.NextAppointment(ctx, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	s.NextJob = describe(next)

	return s, nil
}

func describe(ap *models.Appointment) string {
	if ap == nil {
		return "No upcoming jobs"
	}
	who := ap.ServiceRequest.Name
	if who == "" {
		who = "customer"
	}
	return fmt.Sprintf("%s for %s on %s (%s)",
		ap.IssueType, who, ap.ScheduledDate, domain.TimeSlot(ap.TimeSlot).Label())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
