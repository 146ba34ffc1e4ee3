package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/travelviet/places-admin/pkg/config"
	"github.com/travelviet/places-admin/pkg/metrics"
	"github.com/travelviet/places-admin/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, log *zap.Logger, placeService ports.PlaceService, labelService ports.LabelService) http.Handler {
	// Initialize Handlers
	ph := NewHTTPHandler(placeService, log)
	lh := NewLabelHandler(labelService, log)

	// Initialize Middleware
	mw := NewMiddleware(cfg)

	// Initialize Auth Handler
	authHandler := NewAuthHandler(cfg, log)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /login", mw.RedirectIfAuthenticated(http.HandlerFunc(serveLogin)))
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/login", authHandler.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleCallback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Protected Routes (API & Dashboard)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/places", ph.List)
	protectedMux.HandleFunc("POST /api/v1/places", ph.Create)
	protectedMux.HandleFunc("GET /api/v1/places/{id}", ph.Get)
	protectedMux.HandleFunc("PUT /api/v1/places/{id}", ph.Update)

	protectedMux.HandleFunc("GET /api/v1/labels", lh.List)
	protectedMux.HandleFunc("POST /api/v1/labels", lh.Create)
	protectedMux.HandleFunc("PUT /api/v1/labels/{id}", lh.Rename)
	protectedMux.HandleFunc("PUT /api/v1/labels/{id}/active", lh.Toggle)

	// The dashboard bundle is served as static files behind the session gate.
	protectedMux.Handle("GET /dashboard/", http.StripPrefix("/dashboard/", http.FileServer(http.Dir("./web"))))
	protectedMux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./web/index.html")
	})

	// Apply Middleware to Protected Routes
	mux.Handle("/api/v1/", metrics.Instrument(mw.RequireAuth(protectedMux)))
	mux.Handle("/dashboard", mw.RequireAuth(protectedMux))
	mux.Handle("/dashboard/", mw.RequireAuth(protectedMux))

	return mux
}

func serveLogin(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "./web/login.html")
}
