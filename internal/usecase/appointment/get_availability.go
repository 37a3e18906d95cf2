package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
)

type SlotAvailability struct {
	TimeSlot  domain.TimeSlot `json:"time_slot"`
	Label     string          `json:"label"`
	Available bool            `json:"available"`
}

var bookableSlots = []domain.TimeSlot{
	domain.SlotMorning,
	domain.SlotAfternoon,
	domain.SlotEvening,
	domain.SlotAnytime,
}

type GetAvailability struct {
	Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{Deps: d}
}

// Execute reports, per named slot, whether a booking for the technician on
// date would pass the conflict check.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	technicianID uint,
	date string,
) ([]SlotAvailability, error) {

	if _, err := uc.Repo.GetTechnician(ctx, technicianID); err != nil {
		return nil, err
	}

	day, err := uc.Clock.ParseDay(date)
	if err != nil {
		return nil, err
	}

	existing, err := uc.Repo.ListTechnicianDay(ctx, technicianID, day)
	if err != nil {
		return nil, err
	}

	out := make([]SlotAvailability, 0, len(bookableSlots))
	for _, slot := range bookableSlots {
		conflicts := domain.FindConflicts(domain.Booking{
			TechnicianID:  technicianID,
			ScheduledDate: day,
			TimeSlot:      slot,
		}, existing)

		out = append(out, SlotAvailability{
			TimeSlot:  slot,
			Label:     slot.Label(),
			Available: len(conflicts) == 0,
		})
	}
	return out, nil
}
