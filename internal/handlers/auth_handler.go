package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/auth"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/middleware"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/validators"
)

type AuthHandler struct {
	db         *gorm.DB
	issuer     *auth.Issuer
	emailCheck func(string) bool
	secure     bool
}

// NewAuthHandler uses the DNS-backed domain check when emailCheck is nil.
func NewAuthHandler(db *gorm.DB, issuer *auth.Issuer, emailCheck func(string) bool, secureCookies bool) *AuthHandler {
	if emailCheck == nil {
		emailCheck = validators.IsEmailDomainValid
	}
	return &AuthHandler{db: db, issuer: issuer, emailCheck: emailCheck, secure: secureCookies}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.emailCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to accept mail")
		return
	}

	user, err := createUser(h.db, req.Name, email, req.Password, req.Phone, access.RoleClient)
	if err != nil {
		respondUserError(c, err)
		return
	}

	h.session(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "Invalid email or password")
			return
		}
		respondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "Invalid email or password")
		return
	}

	h.session(c, http.StatusOK, &user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	c.Status(http.StatusNoContent)
}

// session issues a token and hands it out both as a cookie and in the body.
func (h *AuthHandler) session(c *gin.Context, status int, user *models.User) {
	token, err := h.issuer.NewToken(user)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to sign token")
		httperr.Internal(c, "failed_to_generate_token", "Could not start a session")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.issuer.TTL().Seconds()), "/", "", h.secure, true)

	c.JSON(status, gin.H{
		"user":  user,
		"token": token,
	})
}

// --------- Users ---------

var errEmailTaken = httperr.ErrBusiness("email_already_registered")

func createUser(db *gorm.DB, name, email, password, phone string, role access.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(phone),
		Role:         string(role),
	}
	if err := db.Create(&user).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, errEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func respondUserError(c *gin.Context, err error) {
	if errors.Is(err, errEmailTaken) {
		httperr.Validation(c, []httperr.Issue{{
			Code:    "custom",
			Path:    []string{"email"},
			Message: "Email is already registered",
		}})
		return
	}
	respondError(c, err)
}
