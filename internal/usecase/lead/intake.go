package lead

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
)

type IntakeInput struct {
	// Principal is nil for anonymous submissions.
	Principal *access.Principal

	ServiceType   lead.ServiceType
	IssueType     string
	Urgency       lead.Urgency
	PropertyType  string
	Description   string
	Name          string
	Phone         string
	Email         string
	Address       string
	PreferredDate string
	PreferredTime string
}

type IntakeResult struct {
	ServiceRequest *models.ServiceRequest
	Lead           *models.Lead
	Notifications  []notify.Message
}

type SubmitServiceRequest struct {
	Deps
}

func NewSubmitServiceRequest(d Deps) *SubmitServiceRequest {
	return &SubmitServiceRequest{Deps: d}
}

// Execute stores the request and its priced lead, then asks for a
// confirmation SMS to the submitter.
func (uc *SubmitServiceRequest) Execute(
	ctx context.Context,
	in IntakeInput,
) (*IntakeResult, error) {

	price := lead.EstimatePrice(in.ServiceType, in.Urgency, in.PropertyType)
	priority := lead.Priority(in.Urgency, price)

	sr := &models.ServiceRequest{
		ServiceType:   string(in.ServiceType),
		IssueType:     strings.TrimSpace(in.IssueType),
		Urgency:       string(in.Urgency),
		PropertyType:  strings.TrimSpace(in.PropertyType),
		Description:   in.Description,
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Address:       in.Address,
		PreferredDate: in.PreferredDate,
		PreferredTime: in.PreferredTime,
		Status:        string(servicerequest.StatusNew),
		Priority:      priority,
	}
	if in.Principal != nil && in.Principal.Role == access.RoleClient {
		sr.UserID = &in.Principal.ID
	}

	l := &models.Lead{
		Name:           sr.Name,
		Phone:          sr.Phone,
		Email:          sr.Email,
		Address:        sr.Address,
		ServiceType:    sr.ServiceType,
		IssueType:      sr.IssueType,
		Urgency:        sr.Urgency,
		PropertyType:   sr.PropertyType,
		Description:    sr.Description,
		PreferredDate:  sr.PreferredDate,
		PreferredTime:  sr.PreferredTime,
		EstimatedPrice: price,
		Status:         string(lead.StatusNew),
		Priority:       priority,
	}

	if err := uc.Repo.CreateIntake(ctx, sr, l); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   sr.UserID,
		Action:   "service_request_created",
		Entity:   "service_request",
		EntityID: &sr.ID,
		Metadata: map[string]any{
			"lead_id":         l.ID,
			"estimated_price": price,
			"priority":        priority,
		},
	})

	return &IntakeResult{
		ServiceRequest: sr,
		Lead:           l,
		Notifications:  []notify.Message{uc.Messages.IntakeConfirmation(sr)},
	}, nil
}
