package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/craftfolio/engine/internal/api/middleware"
	"github.com/craftfolio/engine/internal/api/types"
	"github.com/craftfolio/engine/internal/models"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

// asAccount stamps the authenticated account id the way the auth middleware
// does, so handlers can be exercised without real tokens.
func asAccount(req *http.Request, id uint) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.AccountIDKey, id)
	return req.WithContext(ctx)
}

func resumeRouter(h *ResumeHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/portfolio/save", h.Save)
	r.Get("/api/portfolio/user", h.List)
	r.Put("/api/portfolio/update/{id}", h.Update)
	r.Delete("/api/portfolio/delete/{id}", h.Delete)
	return r
}

func TestResumeHandlerSave(t *testing.T) {
	t.Run("creates and returns the new id", func(t *testing.T) {
		svc := &mockResumeService{}
		h := NewResumeHandler(svc, true)

		svc.On("Save", mock.Anything, uint(7), mock.MatchedBy(func(d *models.ResumeDraft) bool {
			return d.Name == "Ada" && len(d.Skills) == 2
		})).Return(uint(99), nil).Once()

		body := `{"resumeData":{"name":"Ada","skills":["Go","SQL"]}}`
		req := asAccount(httptest.NewRequest(http.MethodPost, "/api/portfolio/save", strings.NewReader(body)), 7)
		rr := httptest.NewRecorder()
		resumeRouter(h).ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp struct {
			Data map[string]uint `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Equal(t, uint(99), resp.Data["resumeId"])

		mock.AssertExpectationsForObjects(t, svc)
	})

	t.Run("missing resumeData is 400", func(t *testing.T) {
		svc := &mockResumeService{}
		h := NewResumeHandler(svc, true)

		req := asAccount(httptest.NewRequest(http.MethodPost, "/api/portfolio/save", strings.NewReader(`{}`)), 7)
		rr := httptest.NewRecorder()
		resumeRouter(h).ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		svc := &mockResumeService{}
		h := NewResumeHandler(svc, true)

		req := asAccount(httptest.NewRequest(http.MethodPost, "/api/portfolio/save", strings.NewReader(`{nope`)), 7)
		rr := httptest.NewRecorder()
		resumeRouter(h).ServeHTTP(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unwritable schema is surfaced as a server fault", func(t *testing.T) {
		svc := &mockResumeService{}
		h := NewResumeHandler(svc, true)

		svc.On("Save", mock.Anything, uint(7), mock.Anything).
			Return(uint(0), appErr.New(appErr.CodeSchemaInvalid, "resumes table structure is invalid")).Once()

		body := `{"resumeData":{"name":"Ada"}}`
		req := asAccount(httptest.NewRequest(http.MethodPost, "/api/portfolio/save", strings.NewReader(body)), 7)
		rr := httptest.NewRecorder()
		resumeRouter(h).ServeHTTP(rr, req)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		var resp types.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Equal(t, "schema_invalid", resp.Error.Code)
	})
}

func TestResumeHandlerOwnership(t *testing.T) {
	t.Run("another account's resume reads as 404", func(t *testing.T) {
		svc := &mockResumeService{}
		h := NewResumeHandler(svc, true)

		svc.On("Update", mock.Anything, uint(11), uint(7), mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "resume not found")).Once()

		body := `{"resumeData":{"name":"Ada"}}`
		req := asAccount(httptest.NewRequest(http.MethodPut, "/api/portfolio/update/11", strings.NewReader(body)), 7)
		rr := httptest.NewRecorder()
		resumeRouter(h).ServeHTTP(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		mock.AssertExpectationsForObjects(t, svc)
	})

	t.Run("delete passes both ids through", func(t *testing.T) {
		svc := &mockResumeService{}
		h := NewResumeHandler(svc, true)

		svc.On("Delete", mock.Anything, uint(11), uint(7)).Return(nil).Once()

		req := asAccount(httptest.NewRequest(http.MethodDelete, "/api/portfolio/delete/11", nil), 7)
		rr := httptest.NewRecorder()
		resumeRouter(h).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		mock.AssertExpectationsForObjects(t, svc)
	})
}

func TestPasswordComplexity(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Sup3r$ecret", true},
		{"alllowercase1$", false},
		{"ALLUPPERCASE1$", false},
		{"NoDigitsHere$", false},
		{"NoSpecial123", false},
	}
	for _, tt := range tests {
		msg := passwordComplexity(tt.password)
		if tt.ok && msg != "" {
			t.Fatalf("%q should pass, got %q", tt.password, msg)
		}
		if !tt.ok && msg == "" {
			t.Fatalf("%q should fail", tt.password)
		}
	}
}
