package models

import "time"

type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:10;not null;index" json:"type"`
	Category    string    `gorm:"size:50" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"size:255" json:"description"`
	Date        time.Time `gorm:"index" json:"date"`

	ServiceRequestID *uint `gorm:"index" json:"service_request_id"`
	AppointmentID    *uint `json:"appointment_id"`
	CreatedBy        *uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
