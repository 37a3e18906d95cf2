package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

func techID(v uint) *uint { return &v }

func TestFindConflicts(t *testing.T) {
	existing := []models.Appointment{
		{ID: 1, TechnicianID: techID(7), ScheduledDate: "2025-06-01", TimeSlot: "morning", StartTime: "08:00", EndTime: "10:00", Status: "scheduled"},
		{ID: 2, TechnicianID: techID(7), ScheduledDate: "2025-06-01", TimeSlot: "evening", Status: "cancelled"},
		{ID: 3, TechnicianID: techID(8), ScheduledDate: "2025-06-01", TimeSlot: "afternoon", Status: "scheduled"},
		{ID: 4, TechnicianID: techID(7), ScheduledDate: "2025-06-02", TimeSlot: "morning", Status: "rescheduled"},
	}

	tests := []struct {
		name    string
		booking Booking
		want    []uint
	}{
		{"same technician day and slot", Booking{TechnicianID: 7, ScheduledDate: "2025-06-01", TimeSlot: SlotMorning}, []uint{1}},
		{"different slot on the same day", Booking{TechnicianID: 7, ScheduledDate: "2025-06-01", TimeSlot: SlotAfternoon}, nil},
		{"cancelled appointment frees the slot", Booking{TechnicianID: 7, ScheduledDate: "2025-06-01", TimeSlot: SlotEvening}, nil},
		{"other technician", Booking{TechnicianID: 9, ScheduledDate: "2025-06-01", TimeSlot: SlotMorning}, nil},
		{"rescheduled still occupies", Booking{TechnicianID: 7, ScheduledDate: "2025-06-02", TimeSlot: SlotMorning}, []uint{4}},
		{"own id is excluded", Booking{TechnicianID: 7, ScheduledDate: "2025-06-02", TimeSlot: SlotMorning, ExcludeID: 4}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uint
			for _, ap := range FindConflicts(tt.booking, existing) {
				got = append(got, ap.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnytimeOnlyConflictsWithAnytime(t *testing.T) {
	existing := []models.Appointment{
		{ID: 1, TechnicianID: techID(7), ScheduledDate: "2025-06-01", TimeSlot: "anytime", Status: "scheduled"},
	}

	assert.Empty(t, FindConflicts(Booking{TechnicianID: 7, ScheduledDate: "2025-06-01", TimeSlot: SlotMorning}, existing))
	assert.Len(t, FindConflicts(Booking{TechnicianID: 7, ScheduledDate: "2025-06-01", TimeSlot: SlotAnytime}, existing), 1)
}

func TestRescheduleMutatesInPlace(t *testing.T) {
	now := time.Date(2025, 5, 20, 9, 15, 0, 0, time.UTC)
	ap := &models.Appointment{
		ID:            5,
		TechnicianID:  techID(7),
		ScheduledDate: "2025-06-01",
		TimeSlot:      "morning",
		Status:        "scheduled",
		ReminderSent:  true,
		Notes:         "Gate code 1234",
	}
	reminder := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	err := Reschedule(ap, RescheduleChange{
		ScheduledDate: "2025-06-03",
		TimeSlot:      SlotAfternoon,
		Reason:        "customer travelling",
		ReminderAt:    reminder,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, uint(5), ap.ID)
	assert.Equal(t, "2025-06-03", ap.ScheduledDate)
	assert.Equal(t, "afternoon", ap.TimeSlot)
	assert.Equal(t, "rescheduled", ap.Status)
	assert.False(t, ap.ReminderSent)
	assert.Equal(t, reminder, *ap.ReminderScheduled)
	assert.Contains(t, ap.Notes, "Gate code 1234\n[2025-05-20 09:15] Rescheduled from 2025-06-01 (morning) to 2025-06-03 (afternoon)")
	assert.Contains(t, ap.Notes, "Reason: customer travelling")
}

func TestRescheduleChangesTechnician(t *testing.T) {
	ap := &models.Appointment{TechnicianID: techID(7), TechnicianName: "Ana", ScheduledDate: "2025-06-01", TimeSlot: "morning", Status: "scheduled"}

	err := Reschedule(ap, RescheduleChange{
		ScheduledDate: "2025-06-01",
		TimeSlot:      SlotMorning,
		Technician:    &Technician{ID: 8, Name: "Ben", Phone: "+15550008"},
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, uint(8), *ap.TechnicianID)
	assert.Equal(t, "Ben", ap.TechnicianName)
	assert.Equal(t, "+15550008", ap.TechnicianPhone)
	assert.Contains(t, ap.Notes, "technician Ben")
}

func TestCancelSuppressesReminder(t *testing.T) {
	ap := &models.Appointment{Status: "scheduled"}

	require.NoError(t, Cancel(ap, "no longer needed", time.Now()))
	assert.Equal(t, "cancelled", ap.Status)
	assert.True(t, ap.ReminderSent)
	assert.Contains(t, ap.Notes, "Cancelled. Reason: no longer needed")

	assert.ErrorIs(t, Cancel(ap, "", time.Now()), ErrInvalidState)
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		assert.Error(t, CanReschedule(s))
		assert.Error(t, CanCancel(s))
		assert.Error(t, CanComplete(s))
	}
	for _, s := range []Status{StatusScheduled, StatusRescheduled} {
		assert.NoError(t, CanReschedule(s))
		assert.NoError(t, CanCancel(s))
		assert.NoError(t, CanComplete(s))
	}
}

func TestSlotOrDefault(t *testing.T) {
	assert.Equal(t, SlotEvening, SlotOrDefault("evening"))
	assert.Equal(t, SlotMorning, SlotOrDefault("after lunch please"))
	assert.Equal(t, SlotMorning, SlotOrDefault(""))
}

func TestReminderAt(t *testing.T) {
	visit := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), ReminderAt(visit))
}
