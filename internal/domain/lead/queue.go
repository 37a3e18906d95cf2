package lead

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusAssigned Status = "assigned"
)

var (
	ErrLeadNotFound  = httperr.ErrBusiness("lead_not_found")
	ErrNoTechnicians = httperr.ErrBusiness("no_technicians")
)

// SortQueue orders leads by priority, highest first, then oldest first.
func SortQueue(leads []models.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		if leads[i].Priority != leads[j].Priority {
			return leads[i].Priority > leads[j].Priority
		}
		if !leads[i].CreatedAt.Equal(leads[j].CreatedAt) {
			return leads[i].CreatedAt.Before(leads[j].CreatedAt)
		}
		return leads[i].ID < leads[j].ID
	})
}

// PickTechnician returns the first technician in list order. There is no
// skill or availability matching.
func PickTechnician(users []models.User) (*models.User, error) {
	for i := range users {
		if users[i].Role == "technician" {
			return &users[i], nil
		}
	}
	return nil, ErrNoTechnicians
}

type Repository interface {
	// CreateIntake persists a request and its lead together.
	CreateIntake(ctx context.Context, sr *models.ServiceRequest, l *models.Lead) error
	ListLeads(ctx context.Context) ([]models.Lead, error)
	GetLead(ctx context.Context, id uint) (*models.Lead, error)
	// SaveAssignment writes the lead, request and new appointment atomically.
	SaveAssignment(ctx context.Context, l *models.Lead, sr *models.ServiceRequest, ap *models.Appointment) error
}
