package lead

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	appointmentuc "github.com/BruksfildServices01/field-service-api/internal/usecase/appointment"
)

var ErrAlreadyAssigned = httperr.ErrBusiness("lead_already_assigned")

type AssignResult struct {
	Lead          *models.Lead
	Appointment   *models.Appointment
	Notifications []notify.Message
}

type AssignLead struct {
	Deps
}

func NewAssignLead(d Deps) *AssignLead {
	return &AssignLead{Deps: d}
}

// Execute gives the lead to the first technician on file and books a visit
// on the preferred day (else tomorrow) and slot (else morning).
func (uc *AssignLead) Execute(
	ctx context.Context,
	p access.Principal,
	leadID uint,
) (*AssignResult, error) {

	if !access.CanManageLeads(p) {
		return nil, access.ErrForbidden
	}

	l, err := uc.Repo.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status(l.Status) == lead.StatusAssigned {
		return nil, ErrAlreadyAssigned
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, l.ServiceRequestID)
	if err != nil {
		return nil, err
	}
	if !unassigned(sr) {
		return nil, ErrAlreadyAssigned
	}

	techs, err := uc.Repo.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}
	tech, err := lead.PickTechnician(techs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Placement
	// --------------------------------------------------
	day := uc.visitDay(l.PreferredDate)
	visit, err := uc.Clock.StartOfDay(day)
	if err != nil {
		return nil, err
	}
	slot := domain.SlotOrDefault(l.PreferredTime)

	booking := domain.Booking{
		TechnicianID:  tech.ID,
		ScheduledDate: day,
		TimeSlot:      slot,
	}
	if err := appointmentuc.CheckConflicts(ctx, uc.Repo, booking, "assign"); err != nil {
		uc.Audit.Dispatch(appointmentuc.ConflictEvent(p.ID, booking, "assign"))
		return nil, err
	}

	ap := &models.Appointment{
		ServiceRequestID:  sr.ID,
		UserID:            sr.UserID,
		ScheduledDate:     day,
		TimeSlot:          string(slot),
		ServiceType:       sr.ServiceType,
		IssueType:         sr.IssueType,
		Status:            string(domain.InitialStatus()),
		ReminderScheduled: appointmentuc.ReminderFor(visit),
	}
	domain.Assign(ap, domain.Technician{ID: tech.ID, Name: tech.Name, Phone: tech.Phone})

	l.Status = string(lead.StatusAssigned)
	sr.Status = string(servicerequest.StatusAssigned)
	sr.TechnicianID = ap.TechnicianID
	sr.TechnicianName = tech.Name
	sr.ScheduledDate = day

	if err := uc.Repo.SaveAssignment(ctx, l, sr, ap); err != nil {
		err = appointmentuc.TranslateWriteError(ctx, uc.Repo, booking, "assign", err)
		var cerr *domain.ConflictError
		if errors.As(err, &cerr) {
			uc.Audit.Dispatch(appointmentuc.ConflictEvent(p.ID, booking, "assign"))
		}
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &p.ID,
		Action:   "lead_assigned",
		Entity:   "lead",
		EntityID: &l.ID,
		Metadata: map[string]any{
			"technician_id":  tech.ID,
			"appointment_id": ap.ID,
		},
	})

	return &AssignResult{
		Lead:          l,
		Appointment:   ap,
		Notifications: []notify.Message{uc.Messages.LeadAssigned(sr, ap)},
	}, nil
}

// visitDay uses the customer's preferred date when it parses and lies in the
// future, otherwise tomorrow.
func (uc *AssignLead) visitDay(preferred string) string {
	if preferred != "" {
		if day, err := uc.Clock.ParseDay(preferred); err == nil && day > uc.Clock.Today() {
			return day
		}
	}
	return uc.Clock.Tomorrow()
}

// unassigned reports whether no technician holds the request yet. A claim or
// a direct booking takes it out of staff assignment.
func unassigned(sr *models.ServiceRequest) bool {
	if sr.TechnicianID != nil {
		return false
	}
	switch servicerequest.Status(sr.Status) {
	case servicerequest.StatusNew, servicerequest.StatusQuoted:
		return true
	}
	return false
}
