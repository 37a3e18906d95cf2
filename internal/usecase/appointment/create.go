package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Principal access.Principal

	ServiceRequestID uint
	ScheduledDate    string
	TimeSlot         domain.TimeSlot
	StartTime        string
	EndTime          string
	Duration         *int
	TechnicianID     *uint
	Notes            string
	ServiceType      string
	IssueType        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*Result, error) {

	// --------------------------------------------------
	// Service request + ownership
	// --------------------------------------------------
	sr, err := uc.Repo.GetServiceRequest(ctx, in.ServiceRequestID)
	if err != nil {
		return nil, err
	}
	if !access.CanCreateAppointment(in.Principal, sr) {
		return nil, access.ErrForbidden
	}

	// --------------------------------------------------
	// Date / slot
	// --------------------------------------------------
	if !in.TimeSlot.Valid() {
		return nil, domain.ErrInvalidSlot
	}
	day, visit, err := ParseVisitDay(uc.Clock, in.ScheduledDate)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ServiceRequestID:  sr.ID,
		UserID:            sr.UserID,
		ScheduledDate:     day,
		TimeSlot:          string(in.TimeSlot),
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Duration:          in.Duration,
		ServiceType:       firstNonEmpty(in.ServiceType, sr.ServiceType),
		IssueType:         firstNonEmpty(in.IssueType, sr.IssueType),
		Status:            string(domain.InitialStatus()),
		Notes:             in.Notes,
		ReminderScheduled: ReminderFor(visit),
	}

	// --------------------------------------------------
	// Unassigned booking
	// --------------------------------------------------
	if in.TechnicianID == nil {
		if err := uc.Repo.SaveSchedule(ctx, ap, nil); err != nil {
			return nil, err
		}
		uc.audited(in.Principal, ap)
		return &Result{
			Appointment:   ap,
			Notifications: []notify.Message{uc.Messages.AppointmentConfirmed(sr, ap)},
		}, nil
	}

	// --------------------------------------------------
	// Technician + conflict check
	// --------------------------------------------------
	tech, err := uc.Repo.GetTechnician(ctx, *in.TechnicianID)
	if err != nil {
		return nil, err
	}

	booking := domain.Booking{
		TechnicianID:  tech.ID,
		ScheduledDate: day,
		TimeSlot:      in.TimeSlot,
	}
	if err := CheckConflicts(ctx, uc.Repo, booking, "create"); err != nil {
		uc.conflicted(in.Principal, booking, err)
		return nil, err
	}

	domain.Assign(ap, domain.Technician{ID: tech.ID, Name: tech.Name, Phone: tech.Phone})

	sr.Status = string(servicerequest.StatusInProgress)
	sr.TechnicianID = ap.TechnicianID
	sr.TechnicianName = tech.Name
	sr.ScheduledDate = day

	if err := uc.Repo.SaveSchedule(ctx, ap, sr); err != nil {
		err = TranslateWriteError(ctx, uc.Repo, booking, "create", err)
		uc.conflicted(in.Principal, booking, err)
		return nil, err
	}

	uc.audited(in.Principal, ap)

	return &Result{
		Appointment: ap,
		Notifications: []notify.Message{
			uc.Messages.AppointmentConfirmed(sr, ap),
			uc.Messages.TechnicianAssigned(sr, ap),
		},
	}, nil
}

func (uc *CreateAppointment) audited(p access.Principal, ap *models.Appointment) {
	uc.Audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"service_request_id": ap.ServiceRequestID,
			"scheduled_date":     ap.ScheduledDate,
			"time_slot":          ap.TimeSlot,
			"technician_id":      ap.TechnicianID,
		},
	})
}

func (uc *CreateAppointment) conflicted(p access.Principal, b domain.Booking, err error) {
	var cerr *domain.ConflictError
	if errors.As(err, &cerr) {
		uc.Audit.Dispatch(ConflictEvent(p.ID, b, "create"))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
