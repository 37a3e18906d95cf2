package appointment

type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotAnytime   TimeSlot = "anytime"
)

const DefaultSlot = SlotMorning

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotAnytime:
		return true
	}
	return false
}

// Label is the customer-facing description used in messages.
func (s TimeSlot) Label() string {
	switch s {
	case SlotMorning:
		return "morning (8AM-12PM)"
	case SlotAfternoon:
		return "afternoon (12PM-4PM)"
	case SlotEvening:
		return "evening (4PM-8PM)"
	case SlotAnytime:
		return "anytime during business hours"
	}
	return string(s)
}

// SlotOrDefault maps free text such as a customer's preferred time to a
// slot, falling back to the morning slot.
func SlotOrDefault(s string) TimeSlot {
	if slot := TimeSlot(s); slot.Valid() {
		return slot
	}
	return DefaultSlot
}
