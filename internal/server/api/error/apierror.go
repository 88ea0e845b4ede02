// Package apierror builds the problem+json errors returned by the API.
package apierror

import (
	"errors"

	"github.com/Alia5/inputtrack/apitypes"
)

func ErrBadRequest(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: detail}
}
func ErrUnauthorized(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 401, Title: "Unauthorized", Detail: detail}
}
func ErrNotFound(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 404, Title: "Not Found", Detail: detail}
}
func ErrInternal(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 500, Title: "Internal Server Error", Detail: detail}
}

// WrapError normalizes any error into *apitypes.ApiError. Errors that are
// not already API errors become 500s.
func WrapError(err error) *apitypes.ApiError {
	if err == nil {
		return nil
	}
	var ae *apitypes.ApiError
	if errors.As(err, &ae) {
		return ae
	}
	var v apitypes.ApiError
	if errors.As(err, &v) {
		return &v
	}
	return ErrInternal(err.Error())
}
