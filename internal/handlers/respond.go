package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/middleware"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
	"github.com/BruksfildServices01/field-service-api/internal/validators"
)

type failure struct {
	status  int
	field   string // set for failures reported as a validation issue
	message string
}

var failures = map[string]failure{
	"forbidden": {status: http.StatusForbidden, message: "Forbidden"},

	"appointment_not_found":     {status: http.StatusNotFound, message: "Appointment not found"},
	"service_request_not_found": {status: http.StatusNotFound, message: "Service request not found"},
	"technician_not_found":      {status: http.StatusNotFound, message: "Technician not found"},
	"lead_not_found":            {status: http.StatusNotFound, message: "Lead not found"},
	"quote_not_found":           {status: http.StatusNotFound, message: "Quote not found"},

	"past_date":          {status: http.StatusBadRequest, field: "scheduled_date", message: "Scheduled date must be in the future"},
	"invalid_date":       {status: http.StatusBadRequest, field: "scheduled_date", message: "Invalid date"},
	"invalid_time_slot":  {status: http.StatusBadRequest, field: "time_slot", message: "Invalid time slot"},
	"invalid_date_range": {status: http.StatusBadRequest, field: "startDate", message: "startDate and endDate must be valid dates, startDate first"},
	"invalid_period":     {status: http.StatusBadRequest, field: "period", message: "Period must be week, month, quarter or year"},
	"unsupported_image":  {status: http.StatusBadRequest, field: "photo", message: "Photo must be a JPEG, PNG or WebP image"},

	"no_technicians":           {status: http.StatusBadRequest, message: "No technicians available"},
	"technician_phone_missing": {status: http.StatusBadRequest, message: "Technician phone number not available"},
	"invalid_state":            {status: http.StatusBadRequest, message: "Appointment can no longer be changed"},
	"lead_already_assigned":    {status: http.StatusBadRequest, message: "Lead is already assigned"},
	"service_request_closed":   {status: http.StatusBadRequest, message: "Service request is closed"},
	"already_assigned":         {status: http.StatusBadRequest, message: "Service request already has a technician"},
	"quote_not_accepted":       {status: http.StatusBadRequest, message: "Quote must be accepted before claiming"},
	"quote_expired":            {status: http.StatusBadRequest, message: "Quote has expired"},
	"quote_already_accepted":   {status: http.StatusBadRequest, message: "Quote was already accepted"},

	"photo_storage_disabled": {status: http.StatusServiceUnavailable, message: "Photo storage is not configured"},
}

// respondError translates use case errors into the API's error bodies.
func respondError(c *gin.Context, err error) {
	var cerr *domain.ConflictError
	if errors.As(err, &cerr) {
		httperr.Conflict(c, "Technician is already booked for this date and time slot", cerr.Conflicts)
		return
	}

	code := httperr.BusinessCode(err)
	if errors.Is(err, timezone.ErrInvalidDate) {
		code = "invalid_date"
	}

	f, ok := failures[code]
	if !ok {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		httperr.Internal(c, "internal_error", "Something went wrong")
		return
	}

	switch {
	case f.status == http.StatusForbidden:
		httperr.Forbidden(c, f.message)
	case f.status == http.StatusNotFound:
		httperr.NotFound(c, f.message)
	case f.field != "":
		httperr.Validation(c, []httperr.Issue{{Code: code, Path: []string{f.field}, Message: f.message}})
	default:
		httperr.Write(c, f.status, code, f.message)
	}
}

// bindJSON binds the body and answers 400 with every violated field.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Validation(c, validators.Issues(err))
		return false
	}
	return true
}

func principal(c *gin.Context) access.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.Validation(c, []httperr.Issue{{Code: "invalid_type", Path: []string{name}, Message: "Expected a positive integer id"}})
		return 0, false
	}
	return uint(id), true
}

// deliver hands requested SMS to the dispatcher; it never blocks the response.
func deliver(n notify.Dispatcher, msgs []notify.Message) {
	if n == nil || len(msgs) == 0 {
		return
	}
	n.Dispatch(msgs...)
}
