package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/craftfolio/engine/internal/api/middleware"
	"github.com/craftfolio/engine/internal/api/types"
	appErr "github.com/craftfolio/engine/pkg/errors"
	"github.com/craftfolio/engine/pkg/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body *types.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L().Error("encode response failed", zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	writeJSON(w, status, &types.APIResponse{
		Success: true,
		Data:    data,
		Meta:    &types.Meta{RequestID: middleware.GetRequestID(r.Context())},
	})
}

// writeError maps the error to an HTTP status and envelope. verbose controls
// whether the wrapped cause is exposed; it is off in production.
func writeError(w http.ResponseWriter, r *http.Request, err error, verbose bool) {
	status := appErr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, status, &types.APIResponse{
		Success: false,
		Error:   types.FromAppError(err, verbose),
		Meta:    &types.Meta{RequestID: middleware.GetRequestID(r.Context())},
	})
}

func decodeBody(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "malformed request body")
	}
	return nil
}
