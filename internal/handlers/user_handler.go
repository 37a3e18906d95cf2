package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

// UserHandler lets staff manage accounts, technicians in particular.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
	Role     string `json:"role" binding:"required,oneof=client owner admin technician"`
}

func (h *UserHandler) Create(c *gin.Context) {
	if !access.CanManageLeads(principal(c)) {
		respondError(c, access.ErrForbidden)
		return
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := createUser(h.db.WithContext(c.Request.Context()), req.Name, email, req.Password, req.Phone, access.Role(req.Role))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ListTechnicians(c *gin.Context) {
	if !access.CanManageLeads(principal(c)) {
		respondError(c, access.ErrForbidden)
		return
	}

	var techs []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("role = ?", string(access.RoleTechnician)).
		Order("id ASC").
		Find(&techs).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, techs)
}
