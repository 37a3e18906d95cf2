package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/httpresp"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

// TransactionHandler exposes the accounting ledger to staff.
type TransactionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	clock *timezone.Clock
}

func NewTransactionHandler(db *gorm.DB, dispatcher *audit.Dispatcher, clock *timezone.Clock) *TransactionHandler {
	return &TransactionHandler{db: db, audit: dispatcher, clock: clock}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	Type             string  `json:"type" binding:"required,oneof=income expense"`
	Category         string  `json:"category" binding:"required,max=50"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Description      string  `json:"description" binding:"max=255"`
	Date             string  `json:"date" binding:"omitempty,day"`
	ServiceRequestID *uint   `json:"service_request_id" binding:"omitempty,gt=0"`
}

// --------- Handlers ---------

func (h *TransactionHandler) List(c *gin.Context) {
	if !access.CanManageLeads(principal(c)) {
		respondError(c, access.ErrForbidden)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.Transaction{})

	if txType := strings.TrimSpace(c.Query("type")); txType != "" {
		if txType != "income" && txType != "expense" {
			httperr.Validation(c, []httperr.Issue{{
				Code:    "invalid_enum_value",
				Path:    []string{"type"},
				Message: "Type must be income or expense",
			}})
			return
		}
		q = q.Where("type = ?", txType)
	}

	if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC").Order("id DESC").Find(&txs).Error; err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, txs)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	p := principal(c)
	if !access.CanManageLeads(p) {
		respondError(c, access.ErrForbidden)
		return
	}

	var req CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	date := h.clock.Now()
	if req.Date != "" {
		at, err := h.clock.ParseInstant(req.Date)
		if err != nil {
			respondError(c, err)
			return
		}
		date = at
	}

	tx := models.Transaction{
		Type:             req.Type,
		Category:         strings.ToLower(strings.TrimSpace(req.Category)),
		Amount:           req.Amount,
		Description:      req.Description,
		Date:             date.UTC(),
		ServiceRequestID: req.ServiceRequestID,
		CreatedBy:        &p.ID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&tx).Error; err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "transaction_created",
		Entity:   "transaction",
		EntityID: &tx.ID,
		Metadata: map[string]any{"type": tx.Type, "amount": tx.Amount},
	})

	c.JSON(http.StatusCreated, tx)
}
