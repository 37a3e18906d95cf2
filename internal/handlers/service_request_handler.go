package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/domain/access"
	domain "github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/domain/servicerequest"
	"github.com/BruksfildServices01/field-service-api/internal/httperr"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	ucPhoto "github.com/BruksfildServices01/field-service-api/internal/usecase/photo"
	ucQuote "github.com/BruksfildServices01/field-service-api/internal/usecase/quote"
)

const maxPhotoBytes = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type ServiceRequestHandler struct {
	repo         servicerequest.Repository
	issueQuoteUC *ucQuote.IssueQuote
	claimUC      *ucQuote.ClaimServiceRequest
	uploadUC     *ucPhoto.UploadPhoto
	listPhotosUC *ucPhoto.ListPhotos
	notifier     notify.Dispatcher
}

func NewServiceRequestHandler(
	repo servicerequest.Repository,
	quotes ucQuote.Deps,
	photos ucPhoto.Deps,
	notifier notify.Dispatcher,
) *ServiceRequestHandler {
	return &ServiceRequestHandler{
		repo:         repo,
		issueQuoteUC: ucQuote.NewIssueQuote(quotes),
		claimUC:      ucQuote.NewClaimServiceRequest(quotes),
		uploadUC:     ucPhoto.NewUploadPhoto(photos),
		listPhotosUC: ucPhoto.NewListPhotos(photos),
		notifier:     notifier,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type IssueQuoteRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	ValidDays int     `json:"valid_days" binding:"omitempty,gte=1,lte=90"`
}

type ClaimRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required,day"`
	TimeSlot      string `json:"time_slot" binding:"required,oneof=morning afternoon evening anytime"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *ServiceRequestHandler) List(c *gin.Context) {
	p := principal(c)

	var f servicerequest.Filter
	switch {
	case p.IsStaff():
	case p.IsTechnician():
		f.TechnicianID = &p.ID
	default:
		f.UserID = &p.ID
	}

	if status := c.Query("status"); status != "" {
		if !servicerequest.Status(status).Valid() {
			httperr.Validation(c, []httperr.Issue{{
				Code:    "invalid_enum_value",
				Path:    []string{"status"},
				Message: "Unknown service request status",
			}})
			return
		}
		f.Status = status
	}

	list, err := h.repo.ListServiceRequests(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ServiceRequestHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	sr, err := h.repo.GetServiceRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !access.CanViewServiceRequest(principal(c), sr) {
		respondError(c, access.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, sr)
}

// ======================================================
// QUOTE / CLAIM
// ======================================================

func (h *ServiceRequestHandler) IssueQuote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req IssueQuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.issueQuoteUC.Execute(c.Request.Context(), principal(c), id, req.Amount, req.ValidDays)
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, gin.H{
		"service_request": res.ServiceRequest,
		"quote_token":     res.ServiceRequest.QuoteToken,
	})
}

func (h *ServiceRequestHandler) Claim(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.claimUC.Execute(c.Request.Context(), ucQuote.ClaimInput{
		Principal:        principal(c),
		ServiceRequestID: id,
		ScheduledDate:    req.ScheduledDate,
		TimeSlot:         domain.TimeSlot(req.TimeSlot),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	deliver(h.notifier, res.Notifications)
	c.JSON(http.StatusOK, gin.H{
		"service_request": res.ServiceRequest,
		"appointment":     res.Appointment,
	})
}

// ======================================================
// PHOTOS
// ======================================================

func (h *ServiceRequestHandler) UploadPhoto(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes+(1<<20))
	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.Validation(c, []httperr.Issue{{
			Code:    "invalid_type",
			Path:    []string{"photo"},
			Message: "Multipart field photo is required",
		}})
		return
	}
	if fh.Size > maxPhotoBytes {
		httperr.Validation(c, []httperr.Issue{{
			Code:    "too_big",
			Path:    []string{"photo"},
			Message: "Photo must be at most 10MB",
		}})
		return
	}

	file, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close upload")
		}
	}()

	photo, err := h.uploadUC.Execute(c.Request.Context(), principal(c), id, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *ServiceRequestHandler) ListPhotos(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	photos, err := h.listPhotosUC.Execute(c.Request.Context(), principal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, photos)
}
