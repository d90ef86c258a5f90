package types

import (
	"errors"

	appErr "github.com/craftfolio/engine/pkg/errors"
)

// FromAppError converts an error into the wire representation. The wrapped
// cause is only exposed when includeDetail is set (non-production).
func FromAppError(err error, includeDetail bool) *APIError {
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		out := &APIError{Code: string(appErr.CodeInternal), Message: "internal error"}
		if includeDetail {
			out.Detail = err.Error()
		}
		return out
	}
	out := &APIError{Code: string(ae.Code), Message: ae.Message}
	if includeDetail && ae.Err != nil {
		out.Detail = ae.Err.Error()
	}
	return out
}
