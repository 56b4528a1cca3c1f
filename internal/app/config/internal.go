package config

type InternalConfig struct {
	App      App        `mapstructure:"app"`
	Minio    AppMinio   `mapstructure:"minio"`
	RabbitMQ AppRabbit  `mapstructure:"rabbitmq"`
	Clerk    AppClerk   `mapstructure:"clerk"`
	Stripe   AppStripe  `mapstructure:"stripe"`
	Google   AppGoogle  `mapstructure:"google"`
	Gemini   AppGemini  `mapstructure:"gemini"`
	Aircall  AppAircall `mapstructure:"aircall"`
	Workers  AppWorkers `mapstructure:"workers"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	FrontendDomain             string `mapstructure:"frontend_domain"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	SuperadminAPIKey           string `mapstructure:"superadmin_api_key"`
	SuperadminAPIKeyRateLimit  int    `mapstructure:"superadmin_api_key_rate_limit"`
	PublicRequestsPerMinute    int    `mapstructure:"public_requests_per_minute"`
}

type AppMinio struct {
	BucketName                               string `mapstructure:"bucket_name"`
	DocumentMaxUploadSizeInMB                int64  `mapstructure:"document_max_upload_size_in_mb"`
	MinioPreSignedUrlObjectExpiryTimeInHours int    `mapstructure:"pre_signed_url_object_expiry_time_in_hours"`
}

type AppRabbit struct {
	NotificationQueue string `mapstructure:"notification_queue"`
}

// AppClerk holds the Clerk instance settings used to verify session tokens.
type AppClerk struct {
	JWTPublicKey      string `mapstructure:"jwt_public_key"`
	AuthorizedParties string `mapstructure:"authorized_parties"`
	SecretKey         string `mapstructure:"secret_key"`
	BackendAPIURL     string `mapstructure:"backend_api_url"`
	// DevTestAccounts is a CSV of "label:userID" pairs offered by the dev account switcher.
	DevTestAccounts string `mapstructure:"dev_test_accounts"`
}

type AppStripe struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type AppGoogle struct {
	MapsAPIKey      string `mapstructure:"maps_api_key"`
	PlacesBaseUrl   string `mapstructure:"places_base_url"`
	DefaultLanguage string `mapstructure:"default_language"`
}

type AppGemini struct {
	APIKey                  string `mapstructure:"api_key"`
	BaseUrl                 string `mapstructure:"base_url"`
	Model                   string `mapstructure:"model"`
	AnalysisRatePerMinute   int    `mapstructure:"analysis_rate_per_minute"`
	AnalysisBurst           int    `mapstructure:"analysis_burst"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
}

type AppAircall struct {
	BaseUrl  string `mapstructure:"base_url"`
	APIID    string `mapstructure:"api_id"`
	APIToken string `mapstructure:"api_token"`
}

type AppWorkers struct {
	// ReminderCronSpec is the cron expression for the appointment reminder job.
	ReminderCronSpec string `mapstructure:"reminder_cron_spec"`
}
