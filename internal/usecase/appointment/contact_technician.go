package appointment

import (
	"context"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

type ContactTechnician struct {
	Deps
}

func NewContactTechnician(d Deps) *ContactTechnician {
	return &ContactTechnician{Deps: d}
}

// Execute relays a customer's request to be contacted to the assigned technician.
func (uc *ContactTechnician) Execute(
	ctx context.Context,
	p access.Principal,
	appointmentID uint,
	message string,
) (*Result, error) {

	ap, err := uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !access.CanContactTechnician(p, ap) {
		return nil, access.ErrForbidden
	}
	if ap.TechnicianPhone == "" {
		return nil, domain.ErrNoTechnicianPhone
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, ap.ServiceRequestID)
	if err != nil {
		return nil, err
	}

	domain.AppendNote(ap, uc.Clock.Now(), "Customer asked technician "+ap.TechnicianName+" to get in touch")
	if err := uc.Repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "technician_contact_requested",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &Result{
		Appointment:   ap,
		Notifications: []notify.Message{uc.Messages.ContactRequest(sr, ap, message)},
	}, nil
}
