package handlers

import (
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/craftfolio/engine/internal/api/middleware"
	"github.com/craftfolio/engine/internal/api/types"
	"github.com/craftfolio/engine/internal/models"
	"github.com/craftfolio/engine/internal/repository"
	"github.com/craftfolio/engine/internal/services"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

type AuthHandler struct {
	auth     services.AuthService
	accounts repository.AccountRepository
	limiter  *middleware.LoginLimiter
	validate *validator.Validate
	verbose  bool
}

func NewAuthHandler(auth services.AuthService, accounts repository.AccountRepository, limiter *middleware.LoginLimiter, verbose bool) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		accounts: accounts,
		limiter:  limiter,
		validate: validator.New(),
		verbose:  verbose,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "invalid registration payload"), h.verbose)
		return
	}
	if msg := passwordComplexity(req.Password); msg != "" {
		writeError(w, r, appErr.New(appErr.CodeInvalid, msg), h.verbose)
		return
	}

	acc, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}

	// Log the new account straight in.
	token, _, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusCreated, types.AuthResponse{Token: token, User: accountView(acc)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "invalid login payload"), h.verbose)
		return
	}
	if !h.limiter.Allowed(req.Email) {
		writeJSON(w, http.StatusTooManyRequests, &types.APIResponse{
			Success: false,
			Error:   &types.APIError{Code: "rate_limited", Message: "too many login attempts, try again later"},
		})
		return
	}

	token, acc, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.limiter.RecordFailure(req.Email)
		writeError(w, r, err, h.verbose)
		return
	}
	h.limiter.RecordSuccess(req.Email)
	writeData(w, r, http.StatusOK, types.AuthResponse{Token: token, User: accountView(acc)})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	var acc models.Account
	if err := h.accounts.GetByID(r.Context(), accountID, &acc); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, accountView(&acc))
}

func (h *AuthHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	var req types.ProfilePictureRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if err := h.accounts.UpdateProfilePicture(r.Context(), accountID, req.ProfilePicture, req.ProfilePicturePublicID); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"message": "profile picture updated"})
}

func accountView(acc *models.Account) types.AccountView {
	return types.AccountView{
		ID:             acc.ID,
		Name:           acc.Name,
		Email:          acc.Email,
		ProfilePicture: acc.ProfilePicture,
	}
}

// passwordComplexity enforces the same rules registration has always had:
// at least one uppercase, lowercase, digit, and special character.
func passwordComplexity(pw string) string {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	switch {
	case !upper:
		return "password must contain an uppercase letter"
	case !lower:
		return "password must contain a lowercase letter"
	case !digit:
		return "password must contain a digit"
	case !special:
		return "password must contain a special character"
	}
	return ""
}
