package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/craftfolio/engine/internal/services"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

// maxUploadBytes caps profile images at 5 MiB.
const maxUploadBytes = 5 << 20

type UploadHandler struct {
	uploads services.UploadService
	verbose bool
}

func NewUploadHandler(uploads services.UploadService, verbose bool) *UploadHandler {
	return &UploadHandler{uploads: uploads, verbose: verbose}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "image exceeds the 5MB limit or is malformed"), h.verbose)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "image file is required"), h.verbose)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, r, appErr.New(appErr.CodeInvalid, "only image uploads are allowed"), h.verbose)
		return
	}

	result, err := h.uploads.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusCreated, result)
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	// Object keys contain slashes, so the route uses a wildcard.
	publicID := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if dec, err := url.PathUnescape(publicID); err == nil {
		publicID = dec
	}
	if publicID == "" {
		writeError(w, r, appErr.New(appErr.CodeInvalid, "publicId is required"), h.verbose)
		return
	}
	if err := h.uploads.Delete(r.Context(), publicID); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"message": "image deleted"})
}
