package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/field-service-api/internal/notify"
	ucLead "github.com/BruksfildServices01/field-service-api/internal/usecase/lead"
)

type LeadHandler struct {
	listUC   *ucLead.ListLeads
	assignUC *ucLead.AssignLead
	notifier notify.Dispatcher
}

func NewLeadHandler(d ucLead.Deps, notifier notify.Dispatcher) *LeadHandler {
	return &LeadHandler{
		listUC:   ucLead.NewListLeads(d),
		assignUC: ucLead.NewAssignLead(d),
		notifier: notifier,
	}
}

// List returns the queue, highest priority first and oldest first within a tier.
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.listUC.Execute(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) Assign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.assignUC.Execute(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, gin.H{
		"lead":        res.Lead,
		"appointment": res.Appointment,
	})
}
