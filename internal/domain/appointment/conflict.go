package appointment

import "github.com/BruksfildServices01/field-service-api/internal/models"

// Booking identifies the slot an appointment wants to occupy.
type Booking struct {
	TechnicianID  uint
	ScheduledDate string
	TimeSlot      TimeSlot
	// ExcludeID skips the appointment being rescheduled.
	ExcludeID uint
}

// ConflictError carries the rows that already hold the requested slot.
type ConflictError struct {
	Conflicts []models.Appointment
}

func (e *ConflictError) Error() string {
	return "scheduling_conflict"
}

// FindConflicts applies the booking rule: same technician, same calendar day
// and the identical named slot. Explicit start/end times play no part, and
// cancelled appointments never conflict.
func FindConflicts(b Booking, existing []models.Appointment) []models.Appointment {
	var out []models.Appointment
	for _, ap := range existing {
		if ap.ID == b.ExcludeID && b.ExcludeID != 0 {
			continue
		}
		if ap.TechnicianID == nil || *ap.TechnicianID != b.TechnicianID {
			continue
		}
		if ap.ScheduledDate != b.ScheduledDate || ap.TimeSlot != string(b.TimeSlot) {
			continue
		}
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		out = append(out, ap)
	}
	return out
}
