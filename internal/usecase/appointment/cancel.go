package appointment

import (
	"context"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{Deps: d}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	p access.Principal,
	appointmentID uint,
	reason string,
) (*Result, error) {

	ap, err := uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !access.CanManageAppointment(p, ap) {
		return nil, access.ErrForbidden
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, ap.ServiceRequestID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap, reason, uc.Clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": reason},
	})

	msgs := []notify.Message{uc.Messages.CancelledCustomer(sr, ap)}
	if ap.TechnicianID != nil {
		msgs = append(msgs, uc.Messages.CancelledTechnician(sr, ap))
	}

	return &Result{Appointment: ap, Notifications: msgs}, nil
}
