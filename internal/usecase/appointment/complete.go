package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

type CompleteAppointmentInput struct {
	Principal     access.Principal
	AppointmentID uint
	Notes         string
	MaterialUsed  string
	Cost          *float64
}

type CompleteAppointment struct {
	Deps
}

func NewCompleteAppointment(d Deps) *CompleteAppointment {
	return &CompleteAppointment{Deps: d}
}

// Execute closes the visit and its service request. A cost books an income
// transaction in the same write.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteAppointmentInput,
) (*Result, error) {

	ap, err := uc.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !access.CanCompleteAppointment(in.Principal, ap) {
		return nil, access.ErrForbidden
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, ap.ServiceRequestID)
	if err != nil {
		return nil, err
	}

	now := uc.Clock.Now()
	if err := domain.Complete(ap, in.Notes, now); err != nil {
		return nil, err
	}

	completed := now
	sr.Status = string(servicerequest.StatusCompleted)
	sr.CompletedDate = &completed
	sr.CompletionNotes = in.Notes
	if in.MaterialUsed != "" {
		sr.MaterialUsed = in.MaterialUsed
	}

	var income *models.Transaction
	if in.Cost != nil {
		sr.Cost = in.Cost
		income = &models.Transaction{
			Type:             "income",
			Category:         fmt.Sprintf("%s-service", firstNonEmpty(ap.ServiceType, sr.ServiceType)),
			Amount:           *in.Cost,
			Description:      fmt.Sprintf("Appointment #%d completed", ap.ID),
			Date:             now,
			ServiceRequestID: &sr.ID,
			AppointmentID:    &ap.ID,
			CreatedBy:        &in.Principal.ID,
		}
	}

	if err := uc.Repo.SaveCompletion(ctx, ap, sr, income); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &in.Principal.ID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"cost": in.Cost},
	})

	return &Result{
		Appointment:   ap,
		Notifications: []notify.Message{uc.Messages.Completed(sr, ap)},
	}, nil
}
