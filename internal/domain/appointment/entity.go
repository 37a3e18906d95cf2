package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

const noteStamp = "2006-01-02 15:04"

// ReminderAt is when the one-time reminder for a visit becomes due.
func ReminderAt(visit time.Time) time.Time {
	return visit.AddDate(0, 0, -1)
}

func AppendNote(ap *models.Appointment, now time.Time, line string) {
	entry := fmt.Sprintf("[%s] %s", now.Format(noteStamp), line)
	if strings.TrimSpace(ap.Notes) == "" {
		ap.Notes = entry
		return
	}
	ap.Notes = ap.Notes + "\n" + entry
}

// Technician is the resolved assignee of an appointment.
type Technician struct {
	ID    uint
	Name  string
	Phone string
}

func Assign(ap *models.Appointment, tech Technician) {
	id := tech.ID
	ap.TechnicianID = &id
	ap.TechnicianName = tech.Name
	ap.TechnicianPhone = tech.Phone
}

// RescheduleChange is the new placement of an existing appointment.
type RescheduleChange struct {
	ScheduledDate string
	TimeSlot      TimeSlot
	StartTime     string
	EndTime       string
	Duration      *int
	Technician    *Technician
	Reason        string
	ReminderAt    time.Time
}

// Reschedule moves ap in place and re-arms its reminder.
func Reschedule(ap *models.Appointment, ch RescheduleChange, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	line := fmt.Sprintf("Rescheduled from %s (%s) to %s (%s)",
		ap.ScheduledDate, ap.TimeSlot, ch.ScheduledDate, ch.TimeSlot)
	if ch.Technician != nil && (ap.TechnicianID == nil || *ap.TechnicianID != ch.Technician.ID) {
		line += fmt.Sprintf("; technician %s", ch.Technician.Name)
	}
	if ch.Reason != "" {
		line += ". Reason: " + ch.Reason
	}
	AppendNote(ap, now, line)

	ap.ScheduledDate = ch.ScheduledDate
	ap.TimeSlot = string(ch.TimeSlot)
	ap.StartTime = ch.StartTime
	ap.EndTime = ch.EndTime
	if ch.Duration != nil {
		ap.Duration = ch.Duration
	}
	if ch.Technician != nil {
		Assign(ap, *ch.Technician)
	}
	ap.Status = string(StatusRescheduled)
	ap.ReminderSent = false
	reminder := ch.ReminderAt
	ap.ReminderScheduled = &reminder
	return nil
}

// Cancel marks the reminder as sent so the sweep never fires for it.
func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	line := "Cancelled"
	if reason != "" {
		line += ". Reason: " + reason
	}
	AppendNote(ap, now, line)

	ap.Status = string(StatusCancelled)
	ap.ReminderSent = true
	return nil
}

func Complete(ap *models.Appointment, notes string, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	line := "Completed"
	if notes != "" {
		line += ": " + notes
	}
	AppendNote(ap, now, line)

	ap.Status = string(StatusCompleted)
	return nil
}
