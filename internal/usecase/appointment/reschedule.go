package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

type RescheduleAppointmentInput struct {
	Principal     access.Principal
	AppointmentID uint

	ScheduledDate string
	TimeSlot      domain.TimeSlot
	StartTime     string
	EndTime       string
	Duration      *int
	TechnicianID  *uint
	Reason        string
}

type RescheduleAppointment struct {
	Deps
}

func NewRescheduleAppointment(d Deps) *RescheduleAppointment {
	return &RescheduleAppointment{Deps: d}
}

// Execute moves the appointment in place; its id never changes.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*Result, error) {

	ap, err := uc.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !access.CanManageAppointment(in.Principal, ap) {
		return nil, access.ErrForbidden
	}
	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if !in.TimeSlot.Valid() {
		return nil, domain.ErrInvalidSlot
	}
	day, visit, err := ParseVisitDay(uc.Clock, in.ScheduledDate)
	if err != nil {
		return nil, err
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, ap.ServiceRequestID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Effective technician
	// --------------------------------------------------
	var newTech *domain.Technician
	if in.TechnicianID != nil && (ap.TechnicianID == nil || *ap.TechnicianID != *in.TechnicianID) {
		u, err := uc.Repo.GetTechnician(ctx, *in.TechnicianID)
		if err != nil {
			return nil, err
		}
		newTech = &domain.Technician{ID: u.ID, Name: u.Name, Phone: u.Phone}
	}

	previousPhone := ""
	if newTech != nil && ap.TechnicianID != nil {
		previousPhone = ap.TechnicianPhone
	}

	var booking *domain.Booking
	switch {
	case newTech != nil:
		booking = &domain.Booking{TechnicianID: newTech.ID}
	case ap.TechnicianID != nil:
		booking = &domain.Booking{TechnicianID: *ap.TechnicianID}
	}
	if booking != nil {
		booking.ScheduledDate = day
		booking.TimeSlot = in.TimeSlot
		booking.ExcludeID = ap.ID

		if err := CheckConflicts(ctx, uc.Repo, *booking, "reschedule"); err != nil {
			uc.Audit.Dispatch(ConflictEvent(in.Principal.ID, *booking, "reschedule"))
			return nil, err
		}
	}

	// --------------------------------------------------
	// Mutate in place
	// --------------------------------------------------
	if err := domain.Reschedule(ap, domain.RescheduleChange{
		ScheduledDate: day,
		TimeSlot:      in.TimeSlot,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Duration:      in.Duration,
		Technician:    newTech,
		Reason:        in.Reason,
		ReminderAt:    *ReminderFor(visit),
	}, uc.Clock.Now()); err != nil {
		return nil, err
	}

	sr.ScheduledDate = day
	sr.Status = string(servicerequest.StatusRescheduled)
	if ap.TechnicianID != nil {
		sr.TechnicianID = ap.TechnicianID
		sr.TechnicianName = ap.TechnicianName
	}

	if err := uc.Repo.SaveSchedule(ctx, ap, sr); err != nil {
		if booking != nil {
			err = TranslateWriteError(ctx, uc.Repo, *booking, "reschedule", err)
			var cerr *domain.ConflictError
			if errors.As(err, &cerr) {
				uc.Audit.Dispatch(ConflictEvent(in.Principal.ID, *booking, "reschedule"))
			}
		}
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &in.Principal.ID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"scheduled_date": ap.ScheduledDate,
			"time_slot":      ap.TimeSlot,
			"technician_id":  ap.TechnicianID,
			"reason":         in.Reason,
		},
	})

	msgs := []notify.Message{uc.Messages.RescheduledCustomer(sr, ap)}
	if ap.TechnicianID != nil {
		msgs = append(msgs, uc.Messages.RescheduledTechnician(sr, ap))
	}
	if previousPhone != "" {
		msgs = append(msgs, uc.Messages.Reassigned(previousPhone, ap))
	}

	return &Result{Appointment: ap, Notifications: msgs}, nil
}
