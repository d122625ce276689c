package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral          ErrorCode = "VALIDATION_001"
	ValidationRequiredField    ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat    ErrorCode = "VALIDATION_003"
	ValidationOutOfRange       ErrorCode = "VALIDATION_004"
	ValidationInvalidYear      ErrorCode = "VALIDATION_005"
	ValidationInvalidDimension ErrorCode = "VALIDATION_006"
)

// Snapshot error codes (SNAPSHOT_*)
const (
	SnapshotNotFound        ErrorCode = "SNAPSHOT_001"
	SnapshotRecordsNotFound ErrorCode = "SNAPSHOT_002"
	SnapshotReloadFailed    ErrorCode = "SNAPSHOT_003"
)

// Drill-down session error codes (SESSION_*)
const (
	SessionNotFound             ErrorCode = "SESSION_001"
	SessionInvalidID            ErrorCode = "SESSION_002"
	SessionBreadcrumbOutOfRange ErrorCode = "SESSION_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_002"
	SystemConfigurationError ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_004"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:          "Validation failed",
	ValidationRequiredField:    "Required field is missing",
	ValidationInvalidFormat:    "Invalid field format",
	ValidationOutOfRange:       "Field value is out of allowed range",
	ValidationInvalidYear:      "Invalid or unavailable budget year",
	ValidationInvalidDimension: "Unknown breakdown dimension",

	// Snapshot errors
	SnapshotNotFound:        "No budget snapshot available for this year",
	SnapshotRecordsNotFound: "No itemized records available for this year",
	SnapshotReloadFailed:    "Snapshot reload failed",

	// Session errors
	SessionNotFound:             "Drill-down session not found or already closed",
	SessionInvalidID:            "Invalid drill-down session ID",
	SessionBreadcrumbOutOfRange: "Breadcrumb level is out of range",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
