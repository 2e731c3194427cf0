package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed request body")
	InternalServerError = NewSimple(500, "Internal server error")

	// NotFoundError covers both "does not exist" and "exists but is not
	// yours". The two cases must stay indistinguishable so note ids cannot
	// be enumerated.
	NotFoundError = NewSimple(404, "Resource not found")

	UnauthorizedError        = NewSimple(401, "Authentication required")
	InvalidAuthTokenError    = NewSimple(401, "Invalid or expired session token")
	CredentialsMismatchError = NewSimple(400, "Credentials mismatch")
	MissingImageFileError    = NewSimple(400, "Missing image file in form data")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return NewStructured(http.StatusBadRequest)
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "eqfield":
			problems[field] = append(problems[field], "Passwords do not match")
		case "nospaces":
			problems[field] = append(problems[field], "Value cannot contain whitespace")
		case "hexcolor":
			problems[field] = append(problems[field], "Value must be a hex color, e.g. #ffffff")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// NewUsernameTakenError mirrors the field-error shape of validation failures,
// so signup forms render it the same way.
func NewUsernameTakenError() *StructuredError {
	serr := NewStructured(http.StatusBadRequest)
	serr.Add("username", "Username already taken")
	return serr
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewImageTooLargeError(maxBytes int64) *APIError {
	return NewSimple(http.StatusBadRequest, "Image exceeds the maximum allowed size of %d bytes", maxBytes)
}

func NewInvalidFileExtError(ext string) *APIError {
	return NewSimple(http.StatusBadRequest, "Unsupported image file extension: %s", ext)
}
