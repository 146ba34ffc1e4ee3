package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/travelviet/places-admin/pkg/config"
)

type contextKey string

const userEmailKey contextKey = "user_email"

type Middleware struct {
	jwtSecret    []byte
	dashboardURL string
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		jwtSecret:    []byte(cfg.JWTSecret),
		dashboardURL: cfg.DashboardURL,
	}
}

// RequireAuth verifies the JWT session token from the cookie. API requests
// get 401, browser navigation is redirected to the login boundary.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := m.sessionEmail(r)
		if !ok {
			if isAPIRequest(r) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			}
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RedirectIfAuthenticated sends an already signed-in user from the login
// boundary to the dashboard.
func (m *Middleware) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.sessionEmail(r); ok {
			http.Redirect(w, r, m.dashboardURL, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) sessionEmail(r *http.Request) (string, bool) {
	cookie, err := r.Cookie("auth_token")
	if err != nil {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return m.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	return claims.Subject, true
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
