package servicerequest

import (
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
)

type Status string

const (
	StatusNew         Status = "new"
	StatusQuoted      Status = "quoted"
	StatusAssigned    Status = "assigned"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusQuoted, StatusAssigned, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// IsClosed reports whether the request no longer accepts quotes or claims.
func (s Status) IsClosed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var (
	ErrNotFound             = httperr.ErrBusiness("service_request_not_found")
	ErrClosed               = httperr.ErrBusiness("service_request_closed")
	ErrQuoteNotFound        = httperr.ErrBusiness("quote_not_found")
	ErrQuoteNotAccepted     = httperr.ErrBusiness("quote_not_accepted")
	ErrQuoteExpired         = httperr.ErrBusiness("quote_expired")
	ErrQuoteAlreadyAccepted = httperr.ErrBusiness("quote_already_accepted")
	ErrAlreadyAssigned      = httperr.ErrBusiness("already_assigned")
)
