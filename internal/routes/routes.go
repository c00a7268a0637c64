package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/salonkit/salon-scheduler/internal/audit"
	"github.com/salonkit/salon-scheduler/internal/cache"
	"github.com/salonkit/salon-scheduler/internal/config"
	"github.com/salonkit/salon-scheduler/internal/handlers"
	infraRepo "github.com/salonkit/salon-scheduler/internal/infra/repository"
	"github.com/salonkit/salon-scheduler/internal/media"
	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/notify"
	"github.com/salonkit/salon-scheduler/internal/payments"
	ucBooking "github.com/salonkit/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailabilityCache(cfg)

	var sender notify.Sender = notify.NewNoopSender()
	if cfg.SMSWebhookURL != "" {
		sender = notify.NewWebhookSender(cfg.SMSWebhookURL, cfg.SMSWebhookToken)
	}
	notifier := notify.NewNotifier(sender)

	var paymentLinks payments.LinkGenerator
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Printf("mercadopago desabilitado: %v", err)
		} else {
			paymentLinks = mp
		}
	}

	var storage media.Storage
	if cfg.S3Bucket != "" {
		storage = media.NewS3Storage(cfg)
	}

	// ======================================================
	// USE CASES (BOOKING)
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		schedulingRepo,
		notifier,
		auditDispatcher,
		availabilityCache,
		nil, // sorteio padrão
	)

	availabilityUC := ucBooking.NewComputeAvailability(
		schedulingRepo,
		availabilityCache,
	)

	listAppointmentsUC := ucBooking.NewListGroupedAppointments(
		schedulingRepo,
	)

	transitionStatusUC := ucBooking.NewTransitionStatus(
		schedulingRepo,
		auditDispatcher,
		availabilityCache,
	)

	recordPaymentUC := ucBooking.NewRecordPayment(
		schedulingRepo,
		auditDispatcher,
		paymentLinks,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		availabilityUC,
		listAppointmentsUC,
		transitionStatusUC,
		recordPaymentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createBookingUC)

	var mediaHandler *handlers.MediaHandler
	if storage != nil {
		mediaHandler = handlers.NewMediaHandler(db, storage)
	}

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/staff", staffHandler.List)
			secured.POST("/me/staff", staffHandler.Create)
			secured.PATCH("/me/staff/:id", staffHandler.Update)

			secured.GET("/me/customers", customerHandler.List)
			secured.PATCH("/me/customers/:id", customerHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/groups/:groupId/status", appointmentHandler.Transition)
			secured.POST("/me/appointments/groups/:groupId/payments", appointmentHandler.RecordPayment)

			// ------------------------------
			// MEDIA (requer S3 configurado)
			// ------------------------------
			if mediaHandler != nil {
				secured.POST("/me/business/logo", mediaHandler.UploadLogo)
				secured.POST("/me/staff/:id/photo", mediaHandler.UploadStaffPhoto)
			}

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
