// Package errors provides custom error types for the haybank API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so that errors.Is
// matches a derived error against its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidAuthHeader  = &AppError{Code: "INVALID_AUTH_HEADER", Message: "Invalid authorization header format", StatusCode: http.StatusUnauthorized}
	ErrTokenExpired       = &AppError{Code: "TOKEN_EXPIRED", Message: "Token has expired", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid login or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
	ErrInvalidAPIKey      = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrAdminNotConfigured = &AppError{Code: "ADMIN_NOT_CONFIGURED", Message: "Admin endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
)

// Format negotiation errors.
var (
	ErrUnsupportedMediaType = &AppError{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Unsupported format, please use JSON", StatusCode: http.StatusUnsupportedMediaType}
	ErrNotAcceptable        = &AppError{Code: "NOT_ACCEPTABLE", Message: "Unacceptable format, please accept JSON", StatusCode: http.StatusNotAcceptable}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConflict       = &AppError{Code: "CONFLICT", Message: "Resource conflicts with existing data", StatusCode: http.StatusConflict}
	ErrNotModified    = &AppError{Code: "NOT_MODIFIED", Message: "No modification detected", StatusCode: http.StatusNotModified}
	ErrStorage        = &AppError{Code: "STORAGE_ERROR", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Posting validation errors.
var (
	ErrMissingFields       = &AppError{Code: "MISSING_FIELDS", Message: "Required fields are missing", StatusCode: http.StatusBadRequest}
	ErrInvalidType         = &AppError{Code: "INVALID_TYPE", Message: "Movement type must be D or C", StatusCode: http.StatusConflict}
	ErrInvalidAmount       = &AppError{Code: "INVALID_AMOUNT", Message: "Invalid amount", StatusCode: http.StatusBadRequest}
	ErrInvalidDate         = &AppError{Code: "INVALID_DATE", Message: "Date must use the YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
	ErrSameAccountConflict = &AppError{Code: "SAME_ACCOUNT_CONFLICT", Message: "Debit and credit accounts must differ", StatusCode: http.StatusConflict}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateLogin = &AppError{Code: "DUPLICATE_LOGIN", Message: "A user with this login already exists", StatusCode: http.StatusConflict}
)

// Account errors.
var (
	ErrAccountNotFound  = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAccount = &AppError{Code: "DUPLICATE_ACCOUNT", Message: "An account with this description and bank already exists", StatusCode: http.StatusConflict}
	ErrAccountInUse     = &AppError{Code: "ACCOUNT_IN_USE", Message: "Account is referenced by movements or transfers", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory   = &AppError{Code: "DUPLICATE_CATEGORY", Message: "Category name already in use", StatusCode: http.StatusConflict}
	ErrCategoryInUse       = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing movements or transfers", StatusCode: http.StatusConflict}
	ErrCategoryHasChildren = &AppError{Code: "CATEGORY_HAS_CHILDREN", Message: "Category has sub-categories", StatusCode: http.StatusConflict}
)

// Sub-category errors.
var (
	ErrSubCategoryNotFound  = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Sub-category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSubCategory = &AppError{Code: "DUPLICATE_SUBCATEGORY", Message: "Sub-category already exists", StatusCode: http.StatusConflict}
	ErrSubCategoryMismatch  = &AppError{Code: "SUBCATEGORY_MISMATCH", Message: "Sub-category does not belong to the category", StatusCode: http.StatusBadRequest}
	ErrSubCategoryInUse     = &AppError{Code: "SUBCATEGORY_IN_USE", Message: "Sub-category is used by existing movements", StatusCode: http.StatusConflict}
)

// Counterparty errors.
var (
	ErrCounterpartyNotFound  = &AppError{Code: "COUNTERPARTY_NOT_FOUND", Message: "Counterparty not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCounterparty = &AppError{Code: "DUPLICATE_COUNTERPARTY", Message: "A counterparty with this name already exists", StatusCode: http.StatusConflict}
	ErrCounterpartyInUse     = &AppError{Code: "COUNTERPARTY_IN_USE", Message: "Counterparty is referenced by existing movements", StatusCode: http.StatusConflict}
)

// Movement errors.
var (
	ErrMovementNotFound = &AppError{Code: "MOVEMENT_NOT_FOUND", Message: "Movement not found", StatusCode: http.StatusNotFound}
)

// Transfer errors.
var (
	ErrTransferNotFound = &AppError{Code: "TRANSFER_NOT_FOUND", Message: "Transfer not found", StatusCode: http.StatusNotFound}
	ErrTransferInUse    = &AppError{Code: "TRANSFER_IN_USE", Message: "Transfer is referenced by existing movements", StatusCode: http.StatusConflict}
)
