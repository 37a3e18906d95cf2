package lead

import (
	"context"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

type ListLeads struct {
	Deps
}

func NewListLeads(d Deps) *ListLeads {
	return &ListLeads{Deps: d}
}

// Execute returns the queue highest priority first, oldest first within a tier.
func (uc *ListLeads) Execute(ctx context.Context, p access.Principal) ([]models.Lead, error) {
	if !access.CanManageLeads(p) {
		return nil, access.ErrForbidden
	}

	leads, err := uc.Repo.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []models.Lead{}
	}

	lead.SortQueue(leads)
	return leads, nil
}
