package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p := principal(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, p.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "Account no longer exists")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
