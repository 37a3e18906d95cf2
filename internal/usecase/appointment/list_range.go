package appointment

import (
	"context"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

var ErrInvalidRange = httperr.ErrBusiness("invalid_date_range")

type ListAppointmentsInRange struct {
	Deps
}

func NewListAppointmentsInRange(d Deps) *ListAppointmentsInRange {
	return &ListAppointmentsInRange{Deps: d}
}

// Execute lists appointments between two days inclusive. Clients see their
// own, technicians their assigned ones, staff everything.
func (uc *ListAppointmentsInRange) Execute(
	ctx context.Context,
	p access.Principal,
	startDate, endDate string,
) ([]models.Appointment, error) {

	if startDate == "" || endDate == "" {
		return nil, ErrInvalidRange
	}
	from, err := uc.Clock.ParseDay(startDate)
	if err != nil {
		return nil, err
	}
	to, err := uc.Clock.ParseDay(endDate)
	if err != nil {
		return nil, err
	}
	if to < from {
		return nil, ErrInvalidRange
	}

	var scope domain.Scope
	switch {
	case p.IsStaff():
	case p.IsTechnician():
		scope.TechnicianID = &p.ID
	default:
		scope.UserID = &p.ID
	}

	aps, err := uc.Repo.ListAppointmentsInRange(ctx, from, to, scope)
	if err != nil {
		return nil, err
	}
	if aps == nil {
		aps = []models.Appointment{}
	}
	return aps, nil
}
