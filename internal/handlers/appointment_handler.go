package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/field-service-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	cancelUC       *ucAppointment.CancelAppointment
	completeUC     *ucAppointment.CompleteAppointment
	contactUC      *ucAppointment.ContactTechnician
	listRangeUC    *ucAppointment.ListAppointmentsInRange
	remindersUC    *ucAppointment.ProcessReminders
	availabilityUC *ucAppointment.GetAvailability
	notifier       notify.Dispatcher
}

func NewAppointmentHandler(d ucAppointment.Deps, notifier notify.Dispatcher) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       ucAppointment.NewCreateAppointment(d),
		rescheduleUC:   ucAppointment.NewRescheduleAppointment(d),
		cancelUC:       ucAppointment.NewCancelAppointment(d),
		completeUC:     ucAppointment.NewCompleteAppointment(d),
		contactUC:      ucAppointment.NewContactTechnician(d),
		listRangeUC:    ucAppointment.NewListAppointmentsInRange(d),
		remindersUC:    ucAppointment.NewProcessReminders(d),
		availabilityUC: ucAppointment.NewGetAvailability(d),
		notifier:       notifier,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceRequestID uint   `json:"service_request_id" binding:"required,gt=0"`
	ScheduledDate    string `json:"scheduled_date" binding:"required,day"`
	TimeSlot         string `json:"time_slot" binding:"required,oneof=morning afternoon evening anytime"`
	StartTime        string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime          string `json:"end_time" binding:"omitempty,hhmm"`
	Duration         *int   `json:"duration" binding:"omitempty,gt=0"`
	TechnicianID     *uint  `json:"technician_id" binding:"omitempty,gt=0"`
	Notes            string `json:"notes" binding:"max=2000"`
	ServiceType      string `json:"service_type" binding:"omitempty,oneof=electrical plumbing both"`
	IssueType        string `json:"issue_type" binding:"max=100"`
}

type RescheduleAppointmentRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required,day"`
	TimeSlot      string `json:"time_slot" binding:"required,oneof=morning afternoon evening anytime"`
	StartTime     string `json:"start_time" binding:"omitempty,hhmm"`
	EndTime       string `json:"end_time" binding:"omitempty,hhmm"`
	Duration      *int   `json:"duration" binding:"omitempty,gt=0"`
	TechnicianID  *uint  `json:"technician_id" binding:"omitempty,gt=0"`
	Reason        string `json:"reason" binding:"max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type CompleteAppointmentRequest struct {
	Notes        string   `json:"notes" binding:"max=2000"`
	MaterialUsed string   `json:"material_used" binding:"max=2000"`
	Cost         *float64 `json:"cost" binding:"omitempty,gt=0"`
}

type ContactTechnicianRequest struct {
	Message string `json:"message" binding:"max=500"`
}

// bindOptionalJSON accepts an empty body for endpoints whose fields are all optional.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, req)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Principal:        principal(c),
		ServiceRequestID: req.ServiceRequestID,
		ScheduledDate:    req.ScheduledDate,
		TimeSlot:         domain.TimeSlot(req.TimeSlot),
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Duration:         req.Duration,
		TechnicianID:     req.TechnicianID,
		Notes:            req.Notes,
		ServiceType:      req.ServiceType,
		IssueType:        req.IssueType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusCreated, res.Appointment)
}

// ======================================================
// RANGE
// ======================================================

func (h *AppointmentHandler) ListRange(c *gin.Context) {
	aps, err := h.listRangeUC.Execute(
		c.Request.Context(),
		principal(c),
		c.Query("startDate"),
		c.Query("endDate"),
	)
	if errors.Is(err, timezone.ErrInvalidDate) {
		err = ucAppointment.ErrInvalidRange
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		Principal:     principal(c),
		AppointmentID: id,
		ScheduledDate: req.ScheduledDate,
		TimeSlot:      domain.TimeSlot(req.TimeSlot),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      req.Duration,
		TechnicianID:  req.TechnicianID,
		Reason:        req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, res.Appointment)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.cancelUC.Execute(c.Request.Context(), principal(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, res.Appointment)
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.completeUC.Execute(c.Request.Context(), ucAppointment.CompleteAppointmentInput{
		Principal:     principal(c),
		AppointmentID: id,
		Notes:         req.Notes,
		MaterialUsed:  req.MaterialUsed,
		Cost:          req.Cost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, res.Appointment)
}

// ======================================================
// CONTACT TECHNICIAN
// ======================================================

func (h *AppointmentHandler) ContactTechnician(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ContactTechnicianRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	res, err := h.contactUC.Execute(c.Request.Context(), principal(c), id, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Technician has been asked to contact you",
		"appointment": res.Appointment,
	})
}

// ======================================================
// REMINDERS
// ======================================================

func (h *AppointmentHandler) ProcessReminders(c *gin.Context) {
	sweep, err := h.remindersUC.Execute(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, sweep.Notifications)
	c.JSON(http.StatusOK, sweep)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	slots, err := h.availabilityUC.Execute(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"technician_id": id,
		"date":          date,
		"slots":         slots,
	})
}
