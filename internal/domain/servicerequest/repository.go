package servicerequest

import (
	"context"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

// Filter narrows a listing. Nil owner fields do not filter.
type Filter struct {
	UserID       *uint
	TechnicianID *uint
	Status       string
}

type Repository interface {
	GetServiceRequest(ctx context.Context, id uint) (*models.ServiceRequest, error)
	GetServiceRequestByQuoteToken(ctx context.Context, token string) (*models.ServiceRequest, error)
	UpdateServiceRequest(ctx context.Context, sr *models.ServiceRequest) error
	ListServiceRequests(ctx context.Context, f Filter) ([]models.ServiceRequest, error)
}
