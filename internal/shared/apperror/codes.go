package apperror

// Stable machine-readable codes carried in every error envelope. Clients
// branch on these, so additions are fine but renames are breaking.
const (
	CodeInvalidInput = "INVALID_INPUT" // binding/validation failures, bad ids, empty ranges
	CodeUnauthorized = "UNAUTHORIZED"  // missing or bad credentials/token
	CodeForbidden    = "FORBIDDEN"     // authenticated but not allowed
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT" // duplicate username, department or role name

	CodeInternalError = "INTERNAL_ERROR"
)
