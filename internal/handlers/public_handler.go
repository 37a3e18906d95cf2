package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/middleware"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	ucLead "github.com/BruksfildServices01/field-service-api/internal/usecase/lead"
	ucQuote "github.com/BruksfildServices01/field-service-api/internal/usecase/quote"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the endpoints reachable without a session.
type PublicHandler struct {
	intakeUC *ucLead.SubmitServiceRequest
	acceptUC *ucQuote.AcceptQuote
	notifier notify.Dispatcher
}

func NewPublicHandler(
	intakeUC *ucLead.SubmitServiceRequest,
	acceptUC *ucQuote.AcceptQuote,
	notifier notify.Dispatcher,
) *PublicHandler {
	return &PublicHandler{
		intakeUC: intakeUC,
		acceptUC: acceptUC,
		notifier: notifier,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ServiceRequestIntake struct {
	ServiceType   string `json:"service_type" binding:"required,oneof=electrical plumbing both"`
	IssueType     string `json:"issue_type" binding:"required,max=100"`
	Urgency       string `json:"urgency" binding:"required,oneof=emergency urgent standard flexible"`
	PropertyType  string `json:"property_type" binding:"required,max=50"`
	Description   string `json:"description" binding:"max=2000"`
	Name          string `json:"name" binding:"required,min=2,max=100"`
	Phone         string `json:"phone" binding:"required,min=7,max=20"`
	Email         string `json:"email" binding:"omitempty,email,max=100"`
	Address       string `json:"address" binding:"required,max=255"`
	PreferredDate string `json:"preferred_date" binding:"omitempty,day"`
	PreferredTime string `json:"preferred_time" binding:"max=32"`
}

////////////////////////////////////////////////////////
// INTAKE
////////////////////////////////////////////////////////

func (h *PublicHandler) SubmitServiceRequest(c *gin.Context) {
	var req ServiceRequestIntake
	if !bindJSON(c, &req) {
		return
	}

	in := ucLead.IntakeInput{
		ServiceType:   lead.ServiceType(req.ServiceType),
		IssueType:     strings.TrimSpace(req.IssueType),
		Urgency:       lead.Urgency(req.Urgency),
		PropertyType:  strings.TrimSpace(req.PropertyType),
		Description:   req.Description,
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Address:       req.Address,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
	}
	if p, ok := middleware.PrincipalFrom(c); ok {
		in.Principal = &p
	}

	res, err := h.intakeUC.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusCreated, res.ServiceRequest)
}

////////////////////////////////////////////////////////
// QUOTE ACCEPTANCE
////////////////////////////////////////////////////////

func (h *PublicHandler) AcceptQuote(c *gin.Context) {
	res, err := h.acceptUC.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Quote accepted",
		"service_request": res.ServiceRequest,
	})
}
