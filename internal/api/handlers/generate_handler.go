package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/craftfolio/engine/internal/services"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

type GenerateHandler struct {
	generator services.GeneratorService
	validate  *validator.Validate
	verbose   bool
}

func NewGenerateHandler(generator services.GeneratorService, verbose bool) *GenerateHandler {
	return &GenerateHandler{generator: generator, validate: validator.New(), verbose: verbose}
}

func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var in services.GenerateInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	if err := h.validate.Struct(&in); err != nil {
		writeError(w, r, appErr.Wrap(err, appErr.CodeInvalid, "name and at least one skill are required"), h.verbose)
		return
	}
	out, err := h.generator.Generate(r.Context(), &in)
	if err != nil {
		writeError(w, r, err, h.verbose)
		return
	}
	writeData(w, r, http.StatusOK, out)
}
