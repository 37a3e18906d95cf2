package models

import "time"

type Photo struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ServiceRequestID uint   `gorm:"index;not null" json:"service_request_id"`
	UploadedBy       *uint  `json:"uploaded_by"`
	ObjectKey        string `gorm:"size:255;not null" json:"object_key"`
	ContentType      string `gorm:"size:50" json:"content_type"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	SizeBytes        int64  `json:"size_bytes"`
	URL              string `gorm:"-" json:"url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
