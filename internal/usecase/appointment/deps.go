package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/metrics"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

// Deps are the collaborators shared by the appointment use cases.
type Deps struct {
	Repo     domain.Repository
	Audit    *audit.Dispatcher
	Clock    *timezone.Clock
	Messages *notify.Composer
}

// Result is a changed appointment plus the SMS the change requests. Callers
// hand Notifications to a notify.Dispatcher.
type Result struct {
	Appointment   *models.Appointment
	Notifications []notify.Message
}

// ParseVisitDay resolves a requested date to a calendar day that must lie
// strictly after now.
func ParseVisitDay(clock *timezone.Clock, raw string) (string, time.Time, error) {
	at, err := clock.ParseInstant(raw)
	if err != nil {
		return "", time.Time{}, err
	}
	if !at.After(clock.Now()) {
		return "", time.Time{}, domain.ErrPastDate
	}

	day := at.Format(timezone.DayLayout)
	start, err := clock.StartOfDay(day)
	if err != nil {
		return "", time.Time{}, err
	}
	return day, start, nil
}

func ReminderFor(visitDay time.Time) *time.Time {
	at := domain.ReminderAt(visitDay).UTC()
	return &at
}

// DayLister is the slice of a repository the conflict check reads.
type DayLister interface {
	ListTechnicianDay(ctx context.Context, technicianID uint, day string) ([]models.Appointment, error)
}

// CheckConflicts loads the technician's day and applies the booking rule.
func CheckConflicts(
	ctx context.Context,
	repo DayLister,
	b domain.Booking,
	operation string,
) error {

	existing, err := repo.ListTechnicianDay(ctx, b.TechnicianID, b.ScheduledDate)
	if err != nil {
		return err
	}

	if conflicts := domain.FindConflicts(b, existing); len(conflicts) > 0 {
		metrics.SchedulingConflicts.WithLabelValues(operation).Inc()
		return &domain.ConflictError{Conflicts: conflicts}
	}
	return nil
}

// TranslateWriteError turns a slot index violation raced past the read-side
// check into the same ConflictError the check would have produced.
func TranslateWriteError(
	ctx context.Context,
	repo DayLister,
	b domain.Booking,
	operation string,
	err error,
) error {

	if !httperr.IsExclusionConflict(err) {
		return err
	}

	log.Warn().
		Uint("technician_id", b.TechnicianID).
		Str("date", b.ScheduledDate).
		Str("slot", string(b.TimeSlot)).
		Msg("slot index rejected concurrent booking")

	if cerr := CheckConflicts(ctx, repo, b, operation); cerr != nil {
		return cerr
	}
	metrics.SchedulingConflicts.WithLabelValues(operation).Inc()
	return &domain.ConflictError{Conflicts: []models.Appointment{}}
}

func ConflictEvent(userID uint, b domain.Booking, operation string) audit.Event {
	return audit.Event{
		UserID: &userID,
		Action: "scheduling_conflict",
		Entity: "appointment",
		Metadata: map[string]any{
			"operation":      operation,
			"technician_id":  b.TechnicianID,
			"scheduled_date": b.ScheduledDate,
			"time_slot":      b.TimeSlot,
		},
	}
}
