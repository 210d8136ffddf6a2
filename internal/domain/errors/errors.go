package errors

import (
	"net/http"

	"nuovo/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"Email already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrIncorrectPassword = NewBaseError(
		http.StatusBadRequest,
		"INCORRECT_PASSWORD",
		"Incorrect old password",
		"",
	)

	// Authorization-related errors
	ErrAdminOnly = NewBaseError(
		http.StatusForbidden,
		"ADMIN_ONLY",
		"Only admins can perform this action",
		"",
	)

	ErrCustomerOnly = NewBaseError(
		http.StatusForbidden,
		"CUSTOMER_ONLY",
		"Admins do not have wishlists, follows or notifications",
		"",
	)

	// Brand-related errors
	ErrBrandNotFound = NewBaseError(
		http.StatusNotFound,
		"BRAND_NOT_FOUND",
		"Brand not found",
		"",
	)

	ErrBrandHasProducts = NewBaseError(
		http.StatusConflict,
		"BRAND_HAS_PRODUCTS",
		"Cannot delete brand; it is associated with existing products",
		"",
	)

	ErrAlreadyFollowing = NewBaseError(
		http.StatusConflict,
		"ALREADY_FOLLOWING",
		"Brand is already followed",
		"",
	)

	ErrNotFollowing = NewBaseError(
		http.StatusBadRequest,
		"NOT_FOLLOWING",
		"Brand is not followed",
		"",
	)

	ErrSubcategoryNotFollowed = NewBaseError(
		http.StatusBadRequest,
		"SUBCATEGORY_NOT_FOLLOWED",
		"Subcategory not followed",
		"",
	)

	ErrInvalidLogo = NewBaseError(
		http.StatusBadRequest,
		"INVALID_LOGO",
		"Invalid logo format. Expected base64 encoded image data",
		"",
	)

	// Product-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrAlreadyWishlisted = NewBaseError(
		http.StatusConflict,
		"ALREADY_WISHLISTED",
		"Product is already in your wish list",
		"",
	)

	ErrNotWishlisted = NewBaseError(
		http.StatusBadRequest,
		"NOT_WISHLISTED",
		"Product is not in your wish list",
		"",
	)

	// Notification-related errors
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// PersistenceError represents a failed snapshot flush, implementing the
// AppError interface. The in-memory mutation it follows is not rolled back;
// memory and disk stay divergent until the next successful flush.
type PersistenceError struct {
	err     error
	details string
}

// NewPersistenceError creates a persistence-related error
func NewPersistenceError(err error, details string) AppError {
	return &PersistenceError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return errors.Wrap(e.err, "persistence flush failed").Error()
}

// Unwrap exposes the underlying flush error.
func (e *PersistenceError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *PersistenceError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *PersistenceError) ErrorCode() string {
	return "PERSISTENCE_FAILED"
}

// Message returns the user-friendly error message
func (e *PersistenceError) Message() string {
	return "Failed to persist changes"
}

// Details returns detailed error information
func (e *PersistenceError) Details() string {
	return e.details
}
