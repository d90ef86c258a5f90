package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/craftfolio/engine/internal/api/handlers"
	"github.com/craftfolio/engine/internal/api/middleware"
)

// Dependencies carries everything the router mounts. Limiters are injected
// so tests can construct routers with tight or disabled limits.
type Dependencies struct {
	Auth      *handlers.AuthHandler
	Resume    *handlers.ResumeHandler
	Portfolio *handlers.PortfolioHandler
	Generate  *handlers.GenerateHandler
	Upload    *handlers.UploadHandler
	Health    *handlers.HealthHandler

	JWTSecret   []byte
	RateLimiter *middleware.IPRateLimiter
}

// NewRouter wires the HTTP surface.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware)
	}
	r.Use(chimw.Compress(5))

	r.Get("/healthz", deps.Health.Live)
	r.Get("/readyz", deps.Health.Ready)

	authn := middleware.Auth(deps.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Get("/profile", deps.Auth.Profile)
				r.Put("/profile-picture", deps.Auth.UpdateProfilePicture)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/ai/generate", deps.Generate.Generate)
			r.Post("/upload/upload", deps.Upload.Upload)
			// Wildcard because object keys contain slashes.
			r.Delete("/upload/delete/*", deps.Upload.Delete)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Post("/save", deps.Resume.Save)
				r.Get("/user", deps.Resume.List)
				r.Get("/resume/{id}", deps.Resume.Get)
				r.Put("/update/{id}", deps.Resume.Update)
				r.Delete("/delete/{id}", deps.Resume.Delete)
				r.Get("/stats", deps.Resume.Stats)
			})
			// Public page by account id; stays last so named routes above win.
			r.Get("/{userId}", deps.Portfolio.Get)
		})
	})

	return r
}
