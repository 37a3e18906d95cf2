package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/metrics"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

type ReminderResult struct {
	AppointmentID uint   `json:"appointment_id"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

type ReminderSweep struct {
	Processed     int              `json:"processed"`
	Results       []ReminderResult `json:"results"`
	Notifications []notify.Message `json:"-"`
}

type ProcessReminders struct {
	Deps
}

func NewProcessReminders(d Deps) *ProcessReminders {
	return &ProcessReminders{Deps: d}
}

// Execute sends one reminder per due, unreminded, active appointment. Each
// item succeeds or fails on its own; a failure never stops the sweep.
func (uc *ProcessReminders) Execute(
	ctx context.Context,
	p access.Principal,
) (*ReminderSweep, error) {

	if !access.CanManageLeads(p) {
		return nil, access.ErrForbidden
	}

	now := uc.Clock.Now()
	due, err := uc.Repo.ListDueReminders(ctx, now)
	if err != nil {
		return nil, err
	}

	sweep := &ReminderSweep{Results: make([]ReminderResult, 0, len(due))}

	for i := range due {
		ap := &due[i]

		fail := func(err error) {
			metrics.RemindersProcessed.WithLabelValues("error").Inc()
			log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("reminder failed")
			sweep.Results = append(sweep.Results, ReminderResult{
				AppointmentID: ap.ID,
				Status:        "error",
				Error:         err.Error(),
			})
		}

		sr, err := uc.Repo.GetServiceRequest(ctx, ap.ServiceRequestID)
		if err != nil {
			fail(err)
			continue
		}

		domain.AppendNote(ap, now, "Reminder sent to customer")
		won, err := uc.Repo.ClaimReminder(ctx, ap)
		if err != nil {
			fail(err)
			continue
		}
		if !won {
			// another sweep got there first
			continue
		}

		metrics.RemindersProcessed.WithLabelValues("sent").Inc()
		sweep.Processed++
		sweep.Results = append(sweep.Results, ReminderResult{AppointmentID: ap.ID, Status: "success"})
		sweep.Notifications = append(sweep.Notifications, uc.Messages.Reminder(sr, ap))
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "reminders_processed",
		Entity:   "appointment",
		Metadata: map[string]any{"processed": sweep.Processed, "due": len(due)},
	})

	return sweep, nil
}
