package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/craftfolio/engine/internal/api/middleware"
	"github.com/craftfolio/engine/internal/api/types"
	"github.com/craftfolio/engine/internal/services"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

type ResumeHandler struct {
	resumes services.ResumeService
	verbose bool
}

func NewResumeHandler(resumes services.ResumeService, verbose bool) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, verbose: verbose}
}

func (h *ResumeHandler) Save(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	var req types.SaveResumeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if req.ResumeData == nil {
		writeError(w, r, appErr.New(appErr.CodeInvalid, "resumeData is required"), h.verbose)
		return
	}

	id, err := h.resumes.Save(r.Context(), accountID, req.ResumeData)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusCreated, map[string]uint{"resumeId": id})
}

func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	records, err := h.resumes.List(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, records)
}

func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	rec, err := h.resumes.Get(r.Context(), id, accountID)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, rec)
}

func (h *ResumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	var req types.SaveResumeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if req.ResumeData == nil {
		writeError(w, r, appErr.New(appErr.CodeInvalid, "resumeData is required"), h.verbose)
		return
	}
	if err := h.resumes.Update(r.Context(), id, accountID, req.ResumeData); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"message": "resume updated"})
}

func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if err := h.resumes.Delete(r.Context(), id, accountID); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"message": "resume deleted"})
}

func (h *ResumeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	stats, err := h.resumes.Stats(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, stats)
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, appErr.New(appErr.CodeInvalid, "invalid id")
	}
	return uint(id), nil
}
