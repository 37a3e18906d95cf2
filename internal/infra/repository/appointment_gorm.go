package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

var (
	_ domain.Repository         = (*GormRepository)(nil)
	_ lead.Repository           = (*GormRepository)(nil)
	_ servicerequest.Repository = (*GormRepository)(nil)
)

// GormRepository is the relational store behind every use case.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *GormRepository) GetTechnician(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, "technician").
		First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrTechnicianNotFound)
	}
	return &user, nil
}

func (r *GormRepository) ListTechnicians(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("role = ?", "technician").
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *GormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *GormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *GormRepository) ListTechnicianDay(
	ctx context.Context,
	technicianID uint,
	day string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("technician_id = ? AND scheduled_date = ?", technicianID, day).
		Order("id ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// saveAppointment inserts new rows and updates existing ones.
func saveAppointment(tx *gorm.DB, ap *models.Appointment) error {
	if ap.ID == 0 {
		return tx.Omit(clause.Associations).Create(ap).Error
	}
	return tx.Omit(clause.Associations).Save(ap).Error
}

func (r *GormRepository) SaveSchedule(
	ctx context.Context,
	ap *models.Appointment,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAppointment(tx, ap); err != nil {
			return err
		}
		if sr == nil {
			return nil
		}
		if err := tx.Omit(clause.Associations).Save(sr).Error; err != nil {
			return err
		}
		if sr.TechnicianID == nil {
			return nil
		}
		return markLeadAssigned(tx, sr.ID)
	})
}

// markLeadAssigned takes the request's lead off the queue once a technician
// holds the job.
func markLeadAssigned(tx *gorm.DB, serviceRequestID uint) error {
	return tx.Model(&models.Lead{}).
		Where("service_request_id = ? AND status <> ?", serviceRequestID, string(lead.StatusAssigned)).
		Update("status", string(lead.StatusAssigned)).Error
}

func (r *GormRepository) SaveCompletion(
	ctx context.Context,
	ap *models.Appointment,
	sr *models.ServiceRequest,
	income *models.Transaction,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}
		if sr != nil {
			if err := tx.Omit(clause.Associations).Save(sr).Error; err != nil {
				return err
			}
		}
		if income != nil {
			return tx.Create(income).Error
		}
		return nil
	})
}

func (r *GormRepository) ListAppointmentsInRange(
	ctx context.Context,
	from, to string,
	scope domain.Scope,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("scheduled_date >= ? AND scheduled_date <= ?", from, to)

	if scope.UserID != nil {
		q = q.Where("user_id = ?", *scope.UserID)
	}
	if scope.TechnicianID != nil {
		q = q.Where("technician_id = ?", *scope.TechnicianID)
	}

	var aps []models.Appointment
	if err := q.
		Order("scheduled_date ASC").
		Order("id ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *GormRepository) ListDueReminders(
	ctx context.Context,
	now time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(domain.StatusScheduled), string(domain.StatusRescheduled)}).
		Where("reminder_sent = ?", false).
		Where("reminder_scheduled IS NOT NULL AND reminder_scheduled <= ?", now.UTC()).
		Order("reminder_scheduled ASC").
		Order("id ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *GormRepository) ClaimReminder(
	ctx context.Context,
	ap *models.Appointment,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND reminder_sent = ?", ap.ID, false).
		Updates(map[string]any{
			"reminder_sent": true,
			"notes":         ap.Notes,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	ap.ReminderSent = true
	return true, nil
}
