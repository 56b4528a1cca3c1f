package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email",
	"alphanum":         "must contain only alphanumeric characters",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"numeric":          "must be a number",
	"len":              "must be %s characters long",
	"oneof":            "must be one of [%s]",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"lt":               "must be less than %s",
	"lte":              "must be less than or equal to %s",
	"url":              "must be a valid URL",
	"base64":           "must be a valid base64 string",
	"required_with":    "is required when %s is present",
	"iso3166_1_alpha2": "must be a valid ISO 3166-1 alpha-2 country code",
	"date_only":        "must be a date formatted as YYYY-MM-DD",
	"clock_time":       "must be a time formatted as HH:MM",
	"phone_number":     "phone number must be in international format, e.g. +24106000000",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":           true,
	"max":           true,
	"len":           true,
	"gt":            true,
	"gte":           true,
	"lt":            true,
	"lte":           true,
	"oneof":         true,
	"required_with": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientInvalidStatusTransition       = "this status change is not allowed"
	ErrClientRequestAlreadyPaid            = "this request has already been paid"
	ErrClientServiceHasNoPrice             = "this service has no price to pay"
	ErrClientSlotUnavailable               = "the selected time slot is no longer available"
	ErrClientSlotOutsideOpeningHours       = "the selected time is outside the opening hours"
	ErrClientAppointmentAlreadyBooked      = "you already have an appointment at this time"
	ErrClientAppointmentNotModifiable      = "this appointment can no longer be modified"
	ErrClientSlotBeingBooked               = "this time slot is being booked, please retry"
	ErrClientExternalServiceFailed         = "an external service failed to respond"
	ErrClientDocumentTooLarge              = "the document exceeds the maximum upload size"
	ErrClientUnsupportedDocumentType       = "this document format is not supported"
	ErrClientNoOrganizationForCountry      = "no consulate covers this country"
	ErrClientFeatureDisabled               = "this feature is not available"
	ErrClientInvalidWebhookSignature       = "invalid webhook signature"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotReadBody             = "cannot read request body"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm   = "cannot parse multipart form"
	ErrDevCannotParseDate            = "cannot parse date"
	ErrDevURLParamValidationFailed   = "URL param '%s' validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMissingRequestID           = "missing request ID in context"
	ErrDevMissingSessionData         = "missing session data in context"
	ErrDevAuthTokenMissing           = "authorization token missing"
	ErrDevAuthTokenInvalidOrExpired  = "authorization token invalid or expired"
	ErrDevAuthUnauthorizedParty      = "authorization token issued for an unauthorized party"
	ErrDevAuthPublicKeyInvalid       = "session verification public key invalid"
	ErrDevRoleNotAllowed             = "role is not allowed to access resource"
	ErrDevNotResourceOwner           = "session user does not own resource"
	ErrDevInvalidAPIKey              = "invalid API key"
	ErrDevAPIKeyRequired             = "API key required"
	ErrDevRBACEnforce                = "failed to evaluate RBAC policy"
	ErrDevResourceNotFound           = "%s not found"
	ErrDevInvalidStatusTransition    = "invalid transition from %q to %q, valid options: %s"
	ErrDevRequestAlreadyPaid         = "service request already paid"
	ErrDevServiceHasNoPrice          = "org service pricing amount must be greater than zero"
	ErrDevSlotUnavailable            = "no agent has remaining capacity for the slot"
	ErrDevSlotOutsideOpeningHours    = "slot outside organization opening hours"
	ErrDevAppointmentAlreadyBooked   = "user already booked this slot"
	ErrDevAppointmentNotModifiable   = "appointment status %q cannot move to %q"
	ErrDevSlotLocked                 = "slot lock held by another booking"
	ErrDevNoOrganizationForCountry   = "no organization has jurisdiction over country %s"
	ErrDevFeatureDisabled            = "feature disabled in environment %s"
	ErrDevDocumentTooLarge           = "document size exceeds limit"
	ErrDevUnsupportedDocumentType    = "unsupported document mime type %s"
	ErrDevRateLimited                = "rate limit exceeded for %s"
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToCountDocuments   = "failed to count documents"
	ErrDevDBFailedToFindData         = "failed to find data"
	ErrDevDBFailedToInsertData       = "failed to insert data"
	ErrDevDBFailedToUpdateData       = "failed to update data"
	ErrDevDBFailedToIterateDataset   = "failed to iterate dataset"
	ErrDevRedisSet                   = "failed to set redis key"
	ErrDevRedisGet                   = "failed to get redis key"
	ErrDevRedisDelete                = "failed to delete redis key"
	ErrDevRedisIncrement             = "failed to increment redis key"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket %s"
	ErrDevMinioFailedToGetObject     = "failed to get object from bucket %s"
	ErrDevMinioFailedToPresignObject = "failed to presign object in bucket %s"
	ErrDevRabbitMQPublish            = "failed to publish message to queue %s"
	ErrDevCreateHTTPRequest          = "failed to create HTTP request"
	ErrDevSendHTTPRequest            = "failed to send HTTP request"
	ErrDevExternalServiceStatus      = "%s responded with status %s"
	ErrDevStripeCreatePaymentIntent  = "failed to create stripe payment intent"
	ErrDevStripeWebhookSignature     = "failed to verify stripe webhook signature"
	ErrDevGeminiParseResponse        = "failed to parse gemini response"
)
