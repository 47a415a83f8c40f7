package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned for nonexistent rows and, deliberately, for
	// top-level resources owned by another user (anti-enumeration policy).
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned for nested image resources whose parent exists
	// but belongs to someone else.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrImageTooLarge is returned when an upload exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the maximum allowed size")
	// ErrInvalidImage is returned when an upload is not a well-formed image.
	ErrInvalidImage = errors.New("upload a valid image")
)

// ErrorResponse carries a human readable detail message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors maps field names to validation messages and renders as the
// body of a 400 response. It satisfies error so services can return it.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return strings.Join(parts, ", ")
}

// NewFieldError builds a single-field FieldErrors.
func NewFieldError(field, message string) FieldErrors {
	return FieldErrors{field: {message}}
}

// HTTPError pairs a status code with a response body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

// MapErrorToHTTP maps domain errors to HTTP status and body.
func MapErrorToHTTP(err error) *HTTPError {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: fieldErrs}
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Body: ErrorResponse{Detail: err.Error()}}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{StatusCode: http.StatusForbidden, Body: ErrorResponse{Detail: err.Error()}}
	case errors.Is(err, ErrInvalidCredentials):
		// The token endpoint reports bad credentials as a validation failure.
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: FieldErrors{"non_field_errors": {err.Error()}}}
	case errors.Is(err, ErrEmailTaken):
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: NewFieldError("email", err.Error())}
	case errors.Is(err, ErrImageTooLarge), errors.Is(err, ErrInvalidImage):
		return &HTTPError{StatusCode: http.StatusBadRequest, Body: NewFieldError("image", err.Error())}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Body: ErrorResponse{Detail: "internal server error"}}
	}
}

// IsDuplicateEntry reports whether err is a MySQL unique constraint
// violation (error 1062). Concurrent get-or-create of the same (user, name)
// loses the race here rather than creating a duplicate row.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// FromValidation converts validator.v10 errors into per-field messages.
// Field names come from json tags (registered in the router).
func FromValidation(err error) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewFieldError("non_field_errors", err.Error())
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
