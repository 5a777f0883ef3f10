package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrMissingParameters ErrCode = "MISSING_PARAMETERS"
	ErrInvalidParameters ErrCode = "INVALID_PARAMETER_TYPES"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrSubjectNotFound ErrCode = "SUBJECT_NOT_FOUND"

	// ─── Store ─────────────────────────────────────────────────────────
	ErrStoreRead  ErrCode = "STORE_READ_FAILED"
	ErrStoreWrite ErrCode = "STORE_WRITE_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "No token, access denied."
	case ErrTokenInvalid:
		return "Invalid token."
	case ErrForbidden:
		return "Tried to reach another user's data, access denied."
	case ErrMissingParameters:
		return "Missing parameters."
	case ErrInvalidParameters:
		return "Invalid parameter types."
	case ErrNotFound:
		return "Could not find the requested resource."
	case ErrSubjectNotFound:
		return "Subject does not exist."
	case ErrStoreRead:
		return "Error while trying to fetch the requested data."
	case ErrStoreWrite:
		return "Error while processing your request."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
