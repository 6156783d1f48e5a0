package httputil

// Machine-readable error codes returned in the "error" field.
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeTokenMissing       = "TOKEN_MISSING"
	CodeTokenInvalidFormat = "TOKEN_INVALID_FORMAT"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeListingNotFound    = "LISTING_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodePermissionDenied   = "PERMISSION_DENIED"
	CodeInternalError      = "INTERNAL_SERVER_ERROR"
)
