// Package common defines shared constants and sentinel errors used across
// client and server layers of filekeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Upload validation errors. The messages are part of the public API
	// contract and are returned verbatim in error responses.
	ErrMissingEmail    = errors.New("Missing email")
	ErrMissingPassword = errors.New("Missing password")
	ErrMissingName     = errors.New("Missing name")
	ErrMissingType     = errors.New("Missing type")
	ErrMissingData     = errors.New("Missing data")
	ErrInvalidData     = errors.New("Invalid data")
	ErrParentNotFound  = errors.New("Parent not found")
	ErrParentNotFolder = errors.New("Parent is not a folder")
	ErrIsFolder        = errors.New("A folder doesn't have content")
)

// IsBadRequest reports whether err belongs to the request-validation family
// that transports surface as a 400 response.
func IsBadRequest(err error) bool {
	for _, e := range []error{
		ErrMissingEmail, ErrMissingPassword, ErrMissingName, ErrMissingType,
		ErrMissingData, ErrInvalidData, ErrParentNotFound, ErrParentNotFolder,
		ErrIsFolder, ErrorAlreadyExists,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
