package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/infra/repository"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/testutil"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
	uc "github.com/BruksfildServices01/field-service-api/internal/usecase/dashboard"
)

var staff = access.Principal{ID: 1, Role: access.RoleOwner}

func TestPeriodSince(t *testing.T) {
	now := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

	since, err := uc.PeriodQuarter.Since(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC), since)

	_, err = uc.Period("decade").Since(now)
	assert.ErrorIs(t, err, uc.ErrInvalidPeriod)
}

func TestStatsAggregatesAndCaches(t *testing.T) {
	db := testutil.NewDB(t)
	clock := timezone.NewClock("UTC")
	stats := uc.NewGetStats(repository.NewGormRepository(db), clock)
	ctx := context.Background()

	_, err := stats.Execute(ctx, access.Principal{ID: 2, Role: access.RoleClient}, uc.PeriodWeek)
	assert.ErrorIs(t, err, access.ErrForbidden)

	sr := testutil.CreateServiceRequest(t, db, nil)
	done := clock.Now()
	require.NoError(t, db.Model(&models.ServiceRequest{}).Where("id = ?", sr.ID).
		Updates(map[string]any{"status": "completed", "completed_date": done}).Error)
	testutil.CreateServiceRequest(t, db, nil)

	require.NoError(t, db.Create(&models.Transaction{Type: "income", Amount: 300, Date: done}).Error)
	require.NoError(t, db.Create(&models.Transaction{Type: "expense", Amount: 120.5, Date: done}).Error)
	require.NoError(t, db.Create(&models.Transaction{Type: "income", Amount: 999, Date: done.AddDate(0, -2, 0)}).Error)

	upcoming := clock.Now().AddDate(0, 0, 3).Format(timezone.DayLayout)
	require.NoError(t, db.Create(&models.Appointment{
		ServiceRequestID: sr.ID,
		ScheduledDate:    upcoming,
		TimeSlot:         "morning",
		IssueType:        "Leaking pipe",
		Status:           "scheduled",
	}).Error)

	got, err := stats.Execute(ctx, staff, uc.PeriodWeek)
	require.NoError(t, err)

	assert.EqualValues(t, 2, got.ServiceRequests)
	assert.EqualValues(t, 1, got.CompletedJobs)
	assert.Equal(t, 300.0, got.Revenue)
	assert.Equal(t, 120.5, got.Expenses)
	assert.Equal(t, 179.5, got.Profit)
	assert.Equal(t, 50.0, got.ConversionRate)
	assert.Contains(t, got.NextJob, "Leaking pipe")
	assert.Contains(t, got.NextJob, upcoming)

	require.NoError(t, db.Create(&models.Transaction{Type: "income", Amount: 50, Date: done}).Error)
	again, err := stats.Execute(ctx, staff, uc.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, 300.0, again.Revenue, "served from cache")

	quarter, err := stats.Execute(ctx, staff, uc.PeriodQuarter)
	require.NoError(t, err)
	assert.Equal(t, 1349.0, quarter.Revenue)
}

func TestStatsWithEmptyCalendar(t *testing.T) {
	db := testutil.NewDB(t)
	got, err := uc.NewGetStats(repository.NewGormRepository(db), timezone.NewClock("UTC")).
		Execute(context.Background(), staff, "")
	require.NoError(t, err)

	assert.Equal(t, uc.PeriodMonth, got.Period)
	assert.Zero(t, got.ConversionRate)
	assert.Equal(t, "No upcoming jobs", got.NextJob)
}
