package models

import "time"

// ServiceRequest is the customer-submitted unit of work. It is never hard-deleted.
type ServiceRequest struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user_id"`

	ServiceType  string `gorm:"size:20;not null" json:"service_type"`
	IssueType    string `gorm:"size:100;not null" json:"issue_type"`
	Urgency      string `gorm:"size:20;not null" json:"urgency"`
	PropertyType string `gorm:"size:50" json:"property_type"`
	Description  string `gorm:"type:text" json:"description"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	PreferredDate string `gorm:"size:32" json:"preferred_date"`
	PreferredTime string `gorm:"size:32" json:"preferred_time"`

	Status string `gorm:"size:20;default:'new';index" json:"status"`

	TechnicianID   *uint  `gorm:"index" json:"technician_id"`
	TechnicianName string `gorm:"size:100" json:"technician_name"`
	ScheduledDate  string `gorm:"size:10" json:"scheduled_date"`

	Cost              *float64   `json:"cost"`
	QuotedAmount      *float64   `json:"quoted_amount"`
	QuoteDate         *time.Time `json:"quote_date"`
	QuoteExpiryDate   *time.Time `json:"quote_expiry_date"`
	QuoteToken        *string    `gorm:"size:64;uniqueIndex" json:"-"`
	QuoteAcceptedDate *time.Time `json:"quote_accepted_date"`

	Priority        int        `gorm:"default:0" json:"priority"`
	CompletionNotes string     `gorm:"type:text" json:"completion_notes"`
	MaterialUsed    string     `gorm:"type:text" json:"material_used"`
	CompletedDate   *time.Time `json:"completed_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
