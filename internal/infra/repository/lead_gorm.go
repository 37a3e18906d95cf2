package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/field-service-api/internal/domain/lead"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

func (r *GormRepository) CreateIntake(
	ctx context.Context,
	sr *models.ServiceRequest,
	l *models.Lead,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(sr).Error; err != nil {
			return err
		}
		l.ServiceRequestID = sr.ID
		return tx.Omit(clause.Associations).Create(l).Error
	})
}

func (r *GormRepository) ListLeads(ctx context.Context) ([]models.Lead, error) {
	var leads []models.Lead
	if err := r.db.WithContext(ctx).
		Order("priority DESC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *GormRepository) GetLead(ctx context.Context, id uint) (*models.Lead, error) {
	var l models.Lead
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, notFound(err, lead.ErrLeadNotFound)
	}
	return &l, nil
}

func (r *GormRepository) SaveAssignment(
	ctx context.Context,
	l *models.Lead,
	sr *models.ServiceRequest,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(l).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(sr).Error; err != nil {
			return err
		}
		return saveAppointment(tx, ap)
	})
}
