package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

func (r *GormRepository) CountServiceRequestsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

// CountLeadsSince counts leads created since the given time; an empty status
// counts every lead.
func (r *GormRepository) CountLeadsSince(ctx context.Context, since time.Time, status string) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("created_at >= ?", since)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *GormRepository) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("status = ? AND completed_date >= ?", "completed", since).
		Count(&n).Error
	return n, err
}

func (r *GormRepository) SumTransactionsSince(ctx context.Context, txType string, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND date >= ?", txType, since).
		Scan(&total).Error
	return total, err
}

// NextAppointment returns the earliest active appointment on or after today,
// with its service request loaded, or nil when the calendar is empty.
func (r *GormRepository) NextAppointment(ctx context.Context, today string) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("ServiceRequest").
		Where("status IN ? AND scheduled_date >= ?",
			[]string{string(domain.StatusScheduled), string(domain.StatusRescheduled)}, today).
		Order("scheduled_date ASC").
		Order("id ASC").
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}
