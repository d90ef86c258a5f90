package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/craftfolio/engine/internal/api/types"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live answers as long as the process is up.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready additionally checks database connectivity.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, &types.APIResponse{
			Success: false,
			Error:   &types.APIError{Code: "unavailable", Message: "database unreachable"},
		})
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
