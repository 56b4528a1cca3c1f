package main

import (
	"consulat-service/cmd/migration"
	"consulat-service/internal/app/config"
	"consulat-service/internal/app/delivery/http/controllers"
	"consulat-service/internal/app/delivery/http/middlewares"
	"consulat-service/internal/app/delivery/http/routers"
	"consulat-service/internal/app/drivers/database"
	"consulat-service/internal/app/drivers/logger"
	"consulat-service/internal/app/drivers/messaging"
	"consulat-service/internal/app/drivers/storage"
	"consulat-service/internal/app/services/core/appointments"
	"consulat-service/internal/app/services/core/auth"
	"consulat-service/internal/app/services/core/calls"
	"consulat-service/internal/app/services/core/documents"
	"consulat-service/internal/app/services/core/organizations"
	"consulat-service/internal/app/services/core/payments"
	"consulat-service/internal/app/services/core/places"
	servicerequests "consulat-service/internal/app/services/core/service_requests"
	"consulat-service/internal/app/services/core/statistics"
	"consulat-service/internal/app/services/core/territoriality"
	"consulat-service/internal/app/services/core/tickets"
	"consulat-service/internal/app/services/core/workflow"
	"consulat-service/internal/app/services/shared/aircall"
	"consulat-service/internal/app/services/shared/clerk"
	"consulat-service/internal/app/services/shared/gemini"
	"consulat-service/internal/app/services/shared/locker"
	"consulat-service/internal/app/services/shared/notifier"
	"consulat-service/internal/app/services/shared/paymentgateway"
	placesClient "consulat-service/internal/app/services/shared/places"
	"consulat-service/internal/app/services/shared/ratelimiter"
	"consulat-service/internal/app/services/shared/rbac"
	"consulat-service/internal/app/services/shared/redis"
	objectStorage "consulat-service/internal/app/services/shared/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, log)
	postgresDB := database.NewPostgresDB(driverConfig, log)
	redisClient := database.NewRedisClient(driverConfig, log)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, log)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName, log)

	if err := migration.Run(postgresDB, log); err != nil {
		log.Fatal("Error running migrations", zap.Error(err))
	}

	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		PostgresDB:     postgresDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(bootstrap, location)

	server := &http.Server{
		Addr:    listenAddr(internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Error releasing resources", zap.Error(err))
	}
}

// listenAddr accepts APP_PORT either as a bare port ("8080") or as an address (":8080", "0.0.0.0:8080").
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, location *time.Location) {
	cfg := bootstrap.InternalConfig
	log := bootstrap.Logger
	mongoDBName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	notificationPublisher, err := notifier.NewRabbitMQPublisher(bootstrap.RabbitMQ, cfg.RabbitMQ.NotificationQueue, log)
	if err != nil {
		log.Fatal("Error opening notification channel", zap.Error(err))
	}
	minioStorage := objectStorage.NewMinioStorage(bootstrap.Minio)
	stripeGateway := paymentgateway.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	googlePlaces := placesClient.NewGooglePlacesClient(cfg.Google.PlacesBaseUrl, cfg.Google.MapsAPIKey, cfg.Google.DefaultLanguage)
	geminiClient := gemini.NewGeminiClient(
		cfg.Gemini.BaseUrl,
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		time.Duration(cfg.Gemini.RequestTimeoutInSeconds)*time.Second,
	)
	aircallClient := aircall.NewAircallClient(cfg.Aircall.BaseUrl, cfg.Aircall.APIID, cfg.Aircall.APIToken)
	clerkBackend := clerk.NewBackendClient(cfg.Clerk.BackendAPIURL, cfg.Clerk.SecretKey)
	analysisLimiter := ratelimiter.NewKeyedLimiter(cfg.Gemini.AnalysisRatePerMinute, cfg.Gemini.AnalysisBurst)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)

	sessionVerifier, err := clerk.NewSessionVerifier(cfg.Clerk.JWTPublicKey, cfg.Clerk.AuthorizedParties)
	if err != nil {
		log.Fatal("Error loading session verification key", zap.Error(err))
	}
	rbacEnforcer, err := rbac.NewRBACEnforcer(routers.BasePath(cfg))
	if err != nil {
		log.Fatal("Error building RBAC enforcer", zap.Error(err))
	}

	// Repositories
	profileRepository := territoriality.NewProfileMongoRepository(bootstrap.MongoDB, mongoDBName)
	organizationRepository := organizations.NewOrganizationMongoRepository(bootstrap.MongoDB, mongoDBName)
	orgServiceRepository := organizations.NewOrgServiceMongoRepository(bootstrap.MongoDB, mongoDBName)
	serviceRequestRepository := servicerequests.NewServiceRequestMongoRepository(bootstrap.MongoDB, mongoDBName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, mongoDBName)
	agentScheduleRepository := appointments.NewAgentScheduleMongoRepository(bootstrap.MongoDB, mongoDBName)
	documentRepository := documents.NewDocumentMongoRepository(bootstrap.MongoDB, mongoDBName)
	paymentRepository := payments.NewPaymentPostgresRepository(bootstrap.PostgresDB, log)
	ticketRepository := tickets.NewTicketPostgresRepository(bootstrap.PostgresDB, log)

	// Usecases
	territorialityUsecase := territoriality.NewTerritorialityUsecase(profileRepository, organizationRepository, notificationPublisher, log)
	workflowUsecase := workflow.NewWorkflowUsecase(serviceRequestRepository, orgServiceRepository, log)
	serviceRequestUsecase := servicerequests.NewServiceRequestUsecase(serviceRequestRepository, orgServiceRepository, profileRepository, notificationPublisher, log)
	organizationUsecase := organizations.NewOrganizationUsecase(organizationRepository, orgServiceRepository, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		agentScheduleRepository,
		organizationRepository,
		orgServiceRepository,
		lockService,
		notificationPublisher,
		log,
	)
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		serviceRequestRepository,
		orgServiceRepository,
		organizationRepository,
		stripeGateway,
		notificationPublisher,
		log,
	)
	documentUsecase := documents.NewDocumentUsecase(
		documentRepository,
		serviceRequestRepository,
		minioStorage,
		geminiClient,
		analysisLimiter,
		cfg,
		log,
	)
	placesUsecase := places.NewPlacesUsecase(googlePlaces, redisRepository, cfg, log)
	authUsecase := auth.NewAuthUsecase(clerkBackend, cfg, log)
	ticketUsecase := tickets.NewTicketUsecase(ticketRepository, notificationPublisher, log)
	callUsecase := calls.NewCallUsecase(organizationRepository, aircallClient, log)
	statisticsUsecase := statistics.NewStatisticsUsecase(serviceRequestRepository, appointmentRepository, paymentRepository, log)

	// Workers
	reminderWorker := appointments.NewReminderWorker(log, cfg.Workers.ReminderCronSpec, location, lockService, appointmentUsecase)
	reminderWorker.Start(context.Background())
	bootstrap.ReminderWorkerStop = reminderWorker.Stop

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, cfg, sessionVerifier, rbacEnforcer, resourceLimiter)
	routers.SetupRoutes(bootstrap.Router, cfg, log, middlewares, &routers.Controllers{
		Territoriality: controllers.NewTerritorialityController(log, territorialityUsecase),
		Workflow:       controllers.NewWorkflowController(log, workflowUsecase),
		ServiceRequest: controllers.NewServiceRequestController(log, serviceRequestUsecase),
		Organization:   controllers.NewOrganizationController(log, organizationUsecase),
		Appointment:    controllers.NewAppointmentController(log, appointmentUsecase),
		Payment:        controllers.NewPaymentController(log, paymentUsecase),
		Document:       controllers.NewDocumentController(log, documentUsecase, cfg),
		Places:         controllers.NewPlacesController(log, placesUsecase),
		Auth:           controllers.NewAuthController(log, authUsecase),
		Ticket:         controllers.NewTicketController(log, ticketUsecase),
		Call:           controllers.NewCallController(log, callUsecase),
		Statistics:     controllers.NewStatisticsController(log, statisticsUsecase),
		Ops:            controllers.NewOpsController(log, reminderWorker),
	})
}
