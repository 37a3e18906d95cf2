package repository

import (
	"context"

	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

func (r *GormRepository) GetServiceRequest(
	ctx context.Context,
	id uint,
) (*models.ServiceRequest, error) {

	var sr models.ServiceRequest
	if err := r.db.WithContext(ctx).First(&sr, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceRequestNotFound)
	}
	return &sr, nil
}

func (r *GormRepository) GetServiceRequestByQuoteToken(
	ctx context.Context,
	token string,
) (*models.ServiceRequest, error) {

	var sr models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where("quote_token = ?", token).
		First(&sr).Error; err != nil {
		return nil, notFound(err, servicerequest.ErrQuoteNotFound)
	}
	return &sr, nil
}

func (r *GormRepository) UpdateServiceRequest(
	ctx context.Context,
	sr *models.ServiceRequest,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(sr).Error
}

func (r *GormRepository) ListServiceRequests(
	ctx context.Context,
	f servicerequest.Filter,
) ([]models.ServiceRequest, error) {

	q := r.db.WithContext(ctx).Model(&models.ServiceRequest{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.TechnicianID != nil {
		q = q.Where("technician_id = ?", *f.TechnicianID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []models.ServiceRequest
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Photos
// --------------------------------------------------

func (r *GormRepository) CreatePhoto(ctx context.Context, p *models.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) ListPhotos(
	ctx context.Context,
	serviceRequestID uint,
) ([]models.Photo, error) {

	var photos []models.Photo
	if err := r.db.WithContext(ctx).
		Where("service_request_id = ?", serviceRequestID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

