package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/auth"
	"github.com/BruksfildServices01/field-service-api/internal/config"
	"github.com/BruksfildServices01/field-service-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/field-service-api/internal/infra/repository"
	"github.com/BruksfildServices01/field-service-api/internal/middleware"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/storage"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/field-service-api/internal/usecase/appointment"
	ucDashboard "github.com/BruksfildServices01/field-service-api/internal/usecase/dashboard"
	ucLead "github.com/BruksfildServices01/field-service-api/internal/usecase/lead"
	ucPhoto "github.com/BruksfildServices01/field-service-api/internal/usecase/photo"
	ucQuote "github.com/BruksfildServices01/field-service-api/internal/usecase/quote"
	"github.com/BruksfildServices01/field-service-api/internal/validators"
)

// Deps are the process-wide singletons the API is built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Issuer   *auth.Issuer
	Notifier notify.Dispatcher
	Audit    *audit.Dispatcher // nil disables auditing
	Clock    *timezone.Clock
	Store    storage.ObjectStore // nil when S3 is not configured

	// EmailCheck overrides the DNS lookup done on registration.
	EmailCheck func(string) bool
}

// NewRouter builds the engine with the global middleware chain and every route.
func NewRouter(d Deps) *gin.Engine {
	validators.Setup()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		gin.Recovery(),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewGormRepository(d.DB)
	messages := notify.NewComposer(d.Config.BusinessName)

	intakeLimiter := middleware.NewRateLimiter(d.Config.IntakeRatePerMin)
	quoteLimiter := middleware.NewRateLimiter(d.Config.IntakeRatePerMin)

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentDeps := ucAppointment.Deps{
		Repo:     repo,
		Audit:    d.Audit,
		Clock:    d.Clock,
		Messages: messages,
	}
	leadDeps := ucLead.Deps{
		Repo:     repo,
		Audit:    d.Audit,
		Clock:    d.Clock,
		Messages: messages,
	}
	quoteDeps := ucQuote.Deps{
		Repo:     repo,
		Audit:    d.Audit,
		Clock:    d.Clock,
		Messages: messages,
	}
	photoDeps := ucPhoto.Deps{
		Repo:     repo,
		Store:    d.Store,
		Audit:    d.Audit,
		MaxWidth: d.Config.PhotoMaxWidth,
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Issuer, d.EmailCheck, d.Config.IsProduction())
	meHandler := handlers.NewMeHandler(d.DB)
	userHandler := handlers.NewUserHandler(d.DB)

	publicHandler := handlers.NewPublicHandler(
		ucLead.NewSubmitServiceRequest(leadDeps),
		ucQuote.NewAcceptQuote(quoteDeps),
		d.Notifier,
	)
	serviceRequestHandler := handlers.NewServiceRequestHandler(repo, quoteDeps, photoDeps, d.Notifier)
	leadHandler := handlers.NewLeadHandler(leadDeps, d.Notifier)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentDeps, d.Notifier)

	transactionHandler := handlers.NewTransactionHandler(d.DB, d.Audit, d.Clock)
	dashboardHandler := handlers.NewDashboardHandler(ucDashboard.NewGetStats(repo, d.Clock))
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Clock)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		api.POST("/service-requests",
			intakeLimiter.RateLimit(),
			middleware.OptionalAuth(d.Issuer),
			publicHandler.SubmitServiceRequest,
		)
		api.POST("/quotes/:token/accept", quoteLimiter.RateLimit(), publicHandler.AcceptQuote)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Issuer))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/users", userHandler.Create)
			secured.GET("/users/technicians", userHandler.ListTechnicians)
			secured.GET("/technicians/:id/availability", appointmentHandler.Availability)

			// ------------------------------
			// SERVICE REQUESTS
			// ------------------------------
			secured.GET("/service-requests", serviceRequestHandler.List)
			secured.GET("/service-requests/:id", serviceRequestHandler.Get)
			secured.POST("/service-requests/:id/quote", serviceRequestHandler.IssueQuote)
			secured.POST("/service-requests/:id/claim", serviceRequestHandler.Claim)
			secured.POST("/service-requests/:id/photos", serviceRequestHandler.UploadPhoto)
			secured.GET("/service-requests/:id/photos", serviceRequestHandler.ListPhotos)

			// ------------------------------
			// LEADS
			// ------------------------------
			secured.GET("/leads", leadHandler.List)
			secured.POST("/leads/:id/assign", leadHandler.Assign)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/range", appointmentHandler.ListRange)
			secured.POST("/appointments/process-reminders", appointmentHandler.ProcessReminders)
			secured.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/contact-technician", appointmentHandler.ContactTechnician)

			// ------------------------------
			// ACCOUNTING / REPORTING
			// ------------------------------
			secured.GET("/transactions", transactionHandler.List)
			secured.POST("/transactions", transactionHandler.Create)
			secured.GET("/dashboard", dashboardHandler.Stats)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
