package config

import (
	"consulat-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "consulat"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		PostgresDB: PostgresDB{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "consulat"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Africa/Libreville"),
			FrontendDomain:             utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:3000"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 10),
			SuperadminAPIKey:           utils.GetEnvString("APP_SUPERADMIN_API_KEY", ""),
			SuperadminAPIKeyRateLimit:  utils.GetEnvInt("APP_SUPERADMIN_API_KEY_RATE_LIMIT", 1000),
			PublicRequestsPerMinute:    utils.GetEnvInt("APP_PUBLIC_REQUESTS_PER_MINUTE", 30),
		},
		Minio: AppMinio{
			BucketName:                               utils.GetEnvString("APP_MINIO_BUCKET_NAME", "consulat-documents"),
			DocumentMaxUploadSizeInMB:                utils.GetEnvInt64("APP_MINIO_DOCUMENT_MAX_UPLOAD_SIZE_IN_MB", 10),
			MinioPreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 1),
		},
		RabbitMQ: AppRabbit{
			NotificationQueue: utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "consulat.notifications"),
		},
		Clerk: AppClerk{
			JWTPublicKey:      utils.GetEnvString("CLERK_JWT_PUBLIC_KEY", ""),
			AuthorizedParties: utils.GetEnvString("CLERK_AUTHORIZED_PARTIES", ""),
			SecretKey:         utils.GetEnvString("CLERK_SECRET_KEY", ""),
			BackendAPIURL:     utils.GetEnvString("CLERK_BACKEND_API_URL", "https://api.clerk.com"),
			DevTestAccounts:   utils.GetEnvString("CLERK_DEV_TEST_ACCOUNTS", ""),
		},
		Stripe: AppStripe{
			SecretKey:     utils.GetEnvString("STRIPE_SECRET_KEY", ""),
			WebhookSecret: utils.GetEnvString("STRIPE_WEBHOOK_SECRET", ""),
		},
		Google: AppGoogle{
			MapsAPIKey:      utils.GetEnvString("GOOGLE_MAPS_API_KEY", ""),
			PlacesBaseUrl:   utils.GetEnvString("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			DefaultLanguage: utils.GetEnvString("GOOGLE_PLACES_DEFAULT_LANGUAGE", "fr"),
		},
		Gemini: AppGemini{
			APIKey:                  utils.GetEnvString("GEMINI_API_KEY", ""),
			BaseUrl:                 utils.GetEnvString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Model:                   utils.GetEnvString("GEMINI_MODEL", "gemini-2.0-flash"),
			AnalysisRatePerMinute:   utils.GetEnvInt("GEMINI_ANALYSIS_RATE_PER_MINUTE", 10),
			AnalysisBurst:           utils.GetEnvInt("GEMINI_ANALYSIS_BURST", 3),
			RequestTimeoutInSeconds: utils.GetEnvInt("GEMINI_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		Aircall: AppAircall{
			BaseUrl:  utils.GetEnvString("AIRCALL_BASE_URL", "https://api.aircall.io/v1"),
			APIID:    utils.GetEnvString("AIRCALL_API_ID", ""),
			APIToken: utils.GetEnvString("AIRCALL_API_TOKEN", ""),
		},
		Workers: AppWorkers{
			ReminderCronSpec: utils.GetEnvString("WORKERS_REMINDER_CRON_SPEC", "0 18 * * *"),
		},
	}
}
