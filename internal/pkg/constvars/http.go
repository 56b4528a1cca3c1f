package constvars

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
	MIMEOctetStream     = "application/octet-stream"
	MIMEMultipartForm   = "multipart/form-data"
	MIMEImageJPEG       = "image/jpeg"
	MIMEImagePNG        = "image/png"
	MIMEImageWEBP       = "image/webp"
	MIMEApplicationPDF  = "application/pdf"
)

const (
	HeaderAccept          = "Accept"
	HeaderAuthorization   = "Authorization"
	HeaderContentType     = "Content-Type"
	HeaderContentLength   = "Content-Length"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXAPIKey         = "X-API-Key"
	HeaderStripeSignature = "Stripe-Signature"
)

const (
	StatusOK                    = 200
	StatusCreated               = 201
	StatusNoContent             = 204
	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusPaymentRequired       = 402
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusConflict              = 409
	StatusGone                  = 410
	StatusRequestEntityTooLarge = 413
	StatusUnprocessableEntity   = 422
	StatusTooManyRequests       = 429
	StatusInternalServerError   = 500
	StatusBadGateway            = 502
	StatusServiceUnavailable    = 503
	StatusGatewayTimeout        = 504
)

const (
	URLParamRequestID     = "requestID"
	URLParamServiceID     = "serviceID"
	URLParamOrgID         = "orgID"
	URLParamSlug          = "slug"
	URLParamAppointmentID = "appointmentID"
	URLParamDocumentID    = "documentID"
	URLParamPlaceID       = "placeID"
	URLParamTicketID      = "ticketID"
)
