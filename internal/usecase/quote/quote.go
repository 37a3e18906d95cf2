package quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

type Repository interface {
	servicerequest.Repository
	GetTechnician(ctx context.Context, id uint) (*models.User, error)
	ListTechnicianDay(ctx context.Context, technicianID uint, day string) ([]models.Appointment, error)
	SaveSchedule(ctx context.Context, ap *models.Appointment, sr *models.ServiceRequest) error
}

type Deps struct {
	Repo     Repository
	Audit    *audit.Dispatcher
	Clock    *timezone.Clock
	Messages *notify.Composer
	// NewToken defaults to a random uuid.
	NewToken func() string
}

type Result struct {
	ServiceRequest *models.ServiceRequest
	Appointment    *models.Appointment
	Notifications  []notify.Message
}

// ======================================================
// ISSUE
// ======================================================

type IssueQuote struct {
	Deps
}

func NewIssueQuote(d Deps) *IssueQuote {
	if d.NewToken == nil {
		d.NewToken = uuid.NewString
	}
	return &IssueQuote{Deps: d}
}

func (uc *IssueQuote) Execute(
	ctx context.Context,
	p access.Principal,
	serviceRequestID uint,
	amount float64,
	validDays int,
) (*Result, error) {

	if !access.CanManageLeads(p) {
		return nil, access.ErrForbidden
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}

	if err := servicerequest.IssueQuote(sr, amount, validDays, uc.NewToken(), uc.Clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.Repo.UpdateServiceRequest(ctx, sr); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "quote_issued",
		Entity:   "service_request",
		EntityID: &sr.ID,
		Metadata: map[string]any{"amount": amount, "expires": sr.QuoteExpiryDate},
	})

	return &Result{
		ServiceRequest: sr,
		Notifications:  []notify.Message{uc.Messages.QuoteIssued(sr)},
	}, nil
}

// ======================================================
// ACCEPT
// ======================================================

type AcceptQuote struct {
	Deps
}

func NewAcceptQuote(d Deps) *AcceptQuote {
	return &AcceptQuote{Deps: d}
}

// Execute is reached anonymously; the token is the credential.
func (uc *AcceptQuote) Execute(ctx context.Context, token string) (*Result, error) {
	sr, err := uc.Repo.GetServiceRequestByQuoteToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := servicerequest.AcceptQuote(sr, uc.Clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.Repo.UpdateServiceRequest(ctx, sr); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   sr.UserID,
		Action:   "quote_accepted",
		Entity:   "service_request",
		EntityID: &sr.ID,
	})

	return &Result{ServiceRequest: sr}, nil
}

// ======================================================
// CLAIM
// ======================================================

type ClaimInput struct {
	Principal        access.Principal
	ServiceRequestID uint
	ScheduledDate    string
	TimeSlot         domain.TimeSlot
}

type ClaimServiceRequest struct {
	Deps
}

func NewClaimServiceRequest(d Deps) *ClaimServiceRequest {
	return &ClaimServiceRequest{Deps: d}
}
