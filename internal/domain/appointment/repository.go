package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

// Scope narrows listings to what a caller may see. Nil fields do not filter.
type Scope struct {
	UserID       *uint
	TechnicianID *uint
}

type Repository interface {
	// -------- Users --------
	// GetTechnician returns ErrTechnicianNotFound unless id is a technician.
	GetTechnician(ctx context.Context, id uint) (*models.User, error)
	ListTechnicians(ctx context.Context) ([]models.User, error)

	// -------- Service requests --------
	GetServiceRequest(ctx context.Context, id uint) (*models.ServiceRequest, error)
	UpdateServiceRequest(ctx context.Context, sr *models.ServiceRequest) error

	// -------- Appointments --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// ListTechnicianDay returns every appointment of the technician on day.
	ListTechnicianDay(ctx context.Context, technicianID uint, day string) ([]models.Appointment, error)

	// SaveSchedule inserts (ID == 0) or updates ap and updates sr atomically.
	SaveSchedule(ctx context.Context, ap *models.Appointment, sr *models.ServiceRequest) error

	// SaveCompletion persists a completed visit and its optional income entry atomically.
	SaveCompletion(ctx context.Context, ap *models.Appointment, sr *models.ServiceRequest, income *models.Transaction) error

	ListAppointmentsInRange(ctx context.Context, from, to string, scope Scope) ([]models.Appointment, error)

	// -------- Reminders --------
	ListDueReminders(ctx context.Context, now time.Time) ([]models.Appointment, error)

	// ClaimReminder sets reminder_sent and stores ap.Notes only if the flag
	// was still false. It reports whether this caller won the claim.
	ClaimReminder(ctx context.Context, ap *models.Appointment) (bool, error)
}
