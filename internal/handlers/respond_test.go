package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	ucPhoto "github.com/BruksfildServices01/field-service-api/internal/usecase/photo"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"forbidden is plain text", access.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found is plain text", domain.ErrAppointmentNotFound, http.StatusNotFound, "Appointment not found"},
		{"wrapped not found", fmt.Errorf("load: %w", lead.ErrLeadNotFound), http.StatusNotFound, "Lead not found"},
		{"past date is a field issue", domain.ErrPastDate, http.StatusBadRequest, `"path":["scheduled_date"]`},
		{"business rule", servicerequest.ErrQuoteNotAccepted, http.StatusBadRequest, `"error_code":"quote_not_accepted"`},
		{"no technicians", lead.ErrNoTechnicians, http.StatusBadRequest, "No technicians available"},
		{"storage disabled", ucPhoto.ErrStorageDisabled, http.StatusServiceUnavailable, "photo_storage_disabled"},
		{"conflict", &domain.ConflictError{Conflicts: []models.Appointment{{ID: 7}}}, http.StatusConflict, `"conflicts":[{"id":7`},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}
