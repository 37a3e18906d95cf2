package appointment

import "github.com/BruksfildServices01/field-service-api/internal/httperr"

var (
	ErrAppointmentNotFound    = httperr.ErrBusiness("appointment_not_found")
	ErrServiceRequestNotFound = httperr.ErrBusiness("service_request_not_found")
	ErrTechnicianNotFound     = httperr.ErrBusiness("technician_not_found")
	ErrPastDate               = httperr.ErrBusiness("past_date")
	ErrInvalidSlot            = httperr.ErrBusiness("invalid_time_slot")
	ErrNoTechnicianPhone      = httperr.ErrBusiness("technician_phone_missing")
)
