package appointment

import "github.com/BruksfildServices01/field-service-api/internal/httperr"

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

var ErrInvalidState = httperr.ErrBusiness("invalid_state")

// IsActive reports whether the appointment still occupies its slot.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

func CanReschedule(current Status) error {
	if !current.IsActive() {
		return ErrInvalidState
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.IsActive() {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if !current.IsActive() {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
