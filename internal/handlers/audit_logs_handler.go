package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	clock *timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock *timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if !access.CanManageLeads(principal(c)) {
		respondError(c, access.ErrForbidden)
		return
	}

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		from, err := h.clock.StartOfDay(fromStr)
		if err != nil {
			invalidDay(c, "from")
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}

	if toStr != "" {
		to, err := h.clock.StartOfDay(toStr)
		if err != nil {
			invalidDay(c, "to")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

func invalidDay(c *gin.Context, field string) {
	httperr.Validation(c, []httperr.Issue{{
		Code:    "invalid_date",
		Path:    []string{field},
		Message: "Expected a YYYY-MM-DD date",
	}})
}
