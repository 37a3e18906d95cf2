package lead

import (
	"context"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

// Repository is what intake and assignment need from the store.
type Repository interface {
	lead.Repository
	GetServiceRequest(ctx context.Context, id uint) (*models.ServiceRequest, error)
	ListTechnicians(ctx context.Context) ([]models.User, error)
	ListTechnicianDay(ctx context.Context, technicianID uint, day string) ([]models.Appointment, error)
}

type Deps struct {
	Repo     Repository
	Audit    *audit.Dispatcher
	Clock    *timezone.Clock
	Messages *notify.Composer
}
