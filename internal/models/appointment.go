package models

import "time"

// Appointment is a visit tied to exactly one ServiceRequest. Reschedules
// mutate the row in place; Notes is an append-only event log.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceRequestID uint           `gorm:"index;not null" json:"service_request_id"`
	ServiceRequest   ServiceRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	UserID *uint `gorm:"index" json:"user_id"`

	TechnicianID    *uint  `json:"technician_id"`
	TechnicianName  string `gorm:"size:100" json:"technician_name"`
	TechnicianPhone string `gorm:"size:20" json:"technician_phone"`

	ScheduledDate string `gorm:"size:10;not null;index" json:"scheduled_date"`
	TimeSlot      string `gorm:"size:20;not null" json:"time_slot"`
	StartTime     string `gorm:"size:5" json:"start_time"`
	EndTime       string `gorm:"size:5" json:"end_time"`
	Duration      *int   `json:"duration"`

	ServiceType string `gorm:"size:20" json:"service_type"`
	IssueType   string `gorm:"size:100" json:"issue_type"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	ReminderSent      bool       `gorm:"default:false" json:"reminder_sent"`
	ReminderScheduled *time.Time `json:"reminder_scheduled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
