package quote

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	appointmentuc "github.com/BruksfildServices01/field-service-api/internal/usecase/appointment"
)

// Execute lets a technician take an accepted job and book the first visit.
func (uc *ClaimServiceRequest) Execute(
	ctx context.Context,
	in ClaimInput,
) (*Result, error) {

	if !access.CanClaimServiceRequest(in.Principal) {
		return nil, access.ErrForbidden
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, in.ServiceRequestID)
	if err != nil {
		return nil, err
	}
	if err := servicerequest.CanClaim(sr); err != nil {
		return nil, err
	}

	tech, err := uc.Repo.GetTechnician(ctx, in.Principal.ID)
	if err != nil {
		return nil, err
	}

	if !in.TimeSlot.Valid() {
		return nil, domain.ErrInvalidSlot
	}
	day, visit, err := appointmentuc.ParseVisitDay(uc.Clock, in.ScheduledDate)
	if err != nil {
		return nil, err
	}

	booking := domain.Booking{TechnicianID: tech.ID, ScheduledDate: day, TimeSlot: in.TimeSlot}
	if err := appointmentuc.CheckConflicts(ctx, uc.Repo, booking, "claim"); err != nil {
		uc.Audit.Dispatch(appointmentuc.ConflictEvent(tech.ID, booking, "claim"))
		return nil, err
	}

	ap := &models.Appointment{
		ServiceRequestID:  sr.ID,
		UserID:            sr.UserID,
		ScheduledDate:     day,
		TimeSlot:          string(in.TimeSlot),
		ServiceType:       sr.ServiceType,
		IssueType:         sr.IssueType,
		Status:            string(domain.InitialStatus()),
		ReminderScheduled: appointmentuc.ReminderFor(visit),
	}
	domain.Assign(ap, domain.Technician{ID: tech.ID, Name: tech.Name, Phone: tech.Phone})

	sr.Status = string(servicerequest.StatusAssigned)
	sr.TechnicianID = ap.TechnicianID
	sr.TechnicianName = tech.Name
	sr.ScheduledDate = day

	if err := uc.Repo.SaveSchedule(ctx, ap, sr); err != nil {
		err = appointmentuc.TranslateWriteError(ctx, uc.Repo, booking, "claim", err)
		var cerr *domain.ConflictError
		if errors.As(err, &cerr) {
			uc.Audit.Dispatch(appointmentuc.ConflictEvent(tech.ID, booking, "claim"))
		}
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &tech.ID,
		Action:   "service_request_claimed",
		Entity:   "service_request",
		EntityID: &sr.ID,
		Metadata: map[string]any{"appointment_id": ap.ID},
	})

	return &Result{
		ServiceRequest: sr,
		Appointment:    ap,
		Notifications:  []notify.Message{uc.Messages.LeadAssigned(sr, ap)},
	}, nil
}
