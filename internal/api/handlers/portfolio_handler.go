package handlers

import (
	"net/http"

	"github.com/craftfolio/engine/internal/services"
)

// PortfolioHandler serves the one public endpoint: anyone with a user id can
// fetch that account's portfolio page.
type PortfolioHandler struct {
	portfolio services.PortfolioService
	verbose   bool
}

func NewPortfolioHandler(portfolio services.PortfolioService, verbose bool) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, verbose: verbose}
}

func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	payload, err := h.portfolio.GetPublicPortfolio(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, payload)
}
