// Package access holds the authorization rules for every operation. Handlers
// resolve a Principal from the request and ask these functions; no handler
// compares role strings itself.
package access

import (
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
)

var ErrForbidden = httperr.ErrBusiness("forbidden")

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleOwner, RoleAdmin, RoleTechnician:
		return true
	}
	return false
}

// Principal is the authenticated caller of a single request.
type Principal struct {
	ID   uint
	Role Role
}

func (p Principal) IsStaff() bool {
	return p.Role == RoleOwner || p.Role == RoleAdmin
}

func (p Principal) IsTechnician() bool {
	return p.Role == RoleTechnician
}

func (p Principal) owns(userID *uint) bool {
	return userID != nil && *userID == p.ID
}

func (p Principal) assigned(technicianID *uint) bool {
	return p.IsTechnician() && technicianID != nil && *technicianID == p.ID
}

// CanManageLeads covers the lead queue, assignment, quoting, manual
// transactions, the dashboard and the reminder sweep.
func CanManageLeads(p Principal) bool {
	return p.IsStaff()
}

func CanViewServiceRequest(p Principal, sr *models.ServiceRequest) bool {
	return p.IsStaff() || p.owns(sr.UserID) || p.assigned(sr.TechnicianID)
}

func CanCreateAppointment(p Principal, sr *models.ServiceRequest) bool {
	return p.IsStaff() || p.owns(sr.UserID)
}

// CanManageAppointment gates reschedule and cancel.
func CanManageAppointment(p Principal, ap *models.Appointment) bool {
	return p.IsStaff() || p.assigned(ap.TechnicianID) || p.owns(ap.UserID)
}

func CanCompleteAppointment(p Principal, ap *models.Appointment) bool {
	return p.IsStaff() || p.assigned(ap.TechnicianID)
}

func CanContactTechnician(p Principal, ap *models.Appointment) bool {
	return p.owns(ap.UserID)
}

func CanViewAppointment(p Principal, ap *models.Appointment) bool {
	return CanManageAppointment(p, ap)
}

func CanClaimServiceRequest(p Principal) bool {
	return p.IsTechnician()
}

func CanAttachPhoto(p Principal, sr *models.ServiceRequest) bool {
	return CanViewServiceRequest(p, sr)
}
