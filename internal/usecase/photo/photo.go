package photo

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/models"
	"github.com/BruksfildServices01/field-service-api/internal/storage"
)

var ErrStorageDisabled = httperr.ErrBusiness("photo_storage_disabled")

type Repository interface {
	GetServiceRequest(ctx context.Context, id uint) (*models.ServiceRequest, error)
	CreatePhoto(ctx context.Context, p *models.Photo) error
	ListPhotos(ctx context.Context, serviceRequestID uint) ([]models.Photo, error)
}

type Deps struct {
	Repo     Repository
	Store    storage.ObjectStore // nil when S3 is not configured
	Audit    *audit.Dispatcher
	MaxWidth int
}

func objectKey(serviceRequestID uint) string {
	return fmt.Sprintf("service-requests/%d/%s.webp", serviceRequestID, uuid.NewString())
}

// ======================================================
// UPLOAD
// ======================================================

type UploadPhoto struct {
	Deps
}

func NewUploadPhoto(d Deps) *UploadPhoto {
	return &UploadPhoto{Deps: d}
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	p access.Principal,
	serviceRequestID uint,
	body io.Reader,
) (*models.Photo, error) {

	if uc.Store == nil {
		return nil, ErrStorageDisabled
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if !access.CanAttachPhoto(p, sr) {
		return nil, access.ErrForbidden
	}

	img, err := storage.Normalize(body, uc.MaxWidth)
	if err != nil {
		return nil, err
	}

	key := objectKey(sr.ID)
	if err := uc.Store.Put(ctx, key, storage.WebPContentType, img.Data); err != nil {
		return nil, err
	}

	uploader := p.ID
	photo := &models.Photo{
		ServiceRequestID: sr.ID,
		UploadedBy:       &uploader,
		ObjectKey:        key,
		ContentType:      storage.WebPContentType,
		Width:            img.Width,
		Height:           img.Height,
		SizeBytes:        int64(len(img.Data)),
	}
	if err := uc.Repo.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}

	if url, err := uc.Store.PresignGet(ctx, key); err == nil {
		photo.URL = url
	}

	uc.Audit.Dispatch(audit.Event{
		UserID:   &uploader,
		Action:   "photo_uploaded",
		Entity:   "service_request",
		EntityID: &sr.ID,
		Metadata: map[string]any{"object_key": key},
	})

	return photo, nil
}

// ======================================================
// LIST
// ======================================================

type ListPhotos struct {
	Deps
}

func NewListPhotos(d Deps) *ListPhotos {
	return &ListPhotos{Deps: d}
}

func (uc *ListPhotos) Execute(
	ctx context.Context,
	p access.Principal,
	serviceRequestID uint,
) ([]models.Photo, error) {

	if uc.Store == nil {
		return nil, ErrStorageDisabled
	}

	sr, err := uc.Repo.GetServiceRequest(ctx, serviceRequestID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewServiceRequest(p, sr) {
		return nil, access.ErrForbidden
	}

	photos, err := uc.Repo.ListPhotos(ctx, sr.ID)
	if err != nil {
		return nil, err
	}

	for i := range photos {
		url, err := uc.Store.PresignGet(ctx, photos[i].ObjectKey)
		if err != nil {
			log.Warn().Err(err).Str("key", photos[i].ObjectKey).Msg("presign failed")
			continue
		}
		photos[i].URL = url
	}
	return photos, nil
}
