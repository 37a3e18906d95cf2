package models

import "time"

// Lead is the staff-facing queue entry created 1:1 with a ServiceRequest.
type Lead struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint           `gorm:"uniqueIndex;not null" json:"service_request_id"`
	ServiceRequest   ServiceRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name    string `gorm:"size:100" json:"name"`
	Phone   string `gorm:"size:20" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:255" json:"address"`

	ServiceType   string `gorm:"size:20" json:"service_type"`
	IssueType     string `gorm:"size:100" json:"issue_type"`
	Urgency       string `gorm:"size:20" json:"urgency"`
	PropertyType  string `gorm:"size:50" json:"property_type"`
	Description   string `gorm:"type:text" json:"description"`
	PreferredDate string `gorm:"size:32" json:"preferred_date"`
	PreferredTime string `gorm:"size:32" json:"preferred_time"`

	EstimatedPrice float64 `json:"estimated_price"`
	Status         string  `gorm:"size:20;default:'new';index" json:"status"`
	Priority       int     `gorm:"index" json:"priority"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
