package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ucDashboard "github.com/BruksfildServices01/field-service-api/internal/usecase/dashboard"
)

type DashboardHandler struct {
	statsUC *ucDashboard.GetStats
}

func NewDashboardHandler(statsUC *ucDashboard.GetStats) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	period := ucDashboard.Period(c.DefaultQuery("period", string(ucDashboard.PeriodMonth)))

	stats, err := h.statsUC.Execute(c.Request.Context(), principal(c), period)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
