package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/travelviet/places-admin/pkg/config"
)

// sessionTTL matches the 7-day cookie lifetime of the admin session.
const sessionTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	oauthConfig       *oauth2.Config
	jwtSecret         []byte
	adminEmail        string
	adminPasswordHash string
	dashboardURL      string
	allowedEmails     []string
	isProduction      bool
	log               *zap.Logger
}

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		jwtSecret:         []byte(cfg.JWTSecret),
		adminEmail:        cfg.AdminEmail,
		adminPasswordHash: cfg.AdminPasswordHash,
		dashboardURL:      cfg.DashboardURL,
		allowedEmails:     cfg.AllowedEmails,
		isProduction:      cfg.AppEnv == "production",
		log:               log,
	}
}

// Login verifies the configured admin credential and opens a session.
// Credentials are checked against ADMIN_EMAIL and a bcrypt hash; a blank
// email or password never reaches the comparison.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if req.Email != h.adminEmail ||
		bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.Password)) != nil {
		h.log.Warn("login rejected", zap.String("email", req.Email))
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := h.issueSession(w, req.Email); err != nil {
		h.log.Error("failed signing session token", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("login successful", zap.String("email", req.Email))
	json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := h.generateStateOauthCookie(w)
	url := h.oauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	oauthState, err := r.Cookie("oauthstate")
	if err != nil {
		h.log.Warn("callback missing oauthstate cookie", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
		return
	}

	if r.FormValue("state") != oauthState.Value {
		h.log.Warn("invalid oauth state",
			zap.String("expected", oauthState.Value), zap.String("got", r.FormValue("state")))
		http.Error(w, "invalid oauth google state", http.StatusBadRequest)
		return
	}

	code := r.FormValue("code")
	token, err := h.oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		h.log.Error("code exchange failed", zap.Error(err))
		http.Error(w, "code exchange failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	response, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		h.log.Error("failed getting user info", zap.Error(err))
		http.Error(w, "failed getting user info: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer response.Body.Close()

	var googleUser GoogleUser
	if err := json.NewDecoder(response.Body).Decode(&googleUser); err != nil {
		h.log.Error("failed decoding user info", zap.Error(err))
		http.Error(w, "failed decoding user info: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !h.emailAllowed(googleUser.Email) {
		h.log.Warn("email not in allowlist", zap.String("email", googleUser.Email))
		http.Error(w, "Access denied: your email is not in the allowlist", http.StatusForbidden)
		return
	}

	if err := h.issueSession(w, googleUser.Email); err != nil {
		h.log.Error("failed signing session token", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Info("login successful", zap.String("email", googleUser.Email))
	http.Redirect(w, r, h.dashboardURL, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
}

func (h *AuthHandler) emailAllowed(email string) bool {
	if len(h.allowedEmails) == 0 {
		return email == h.adminEmail
	}
	for _, allowed := range h.allowedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, email string) error {
	expirationTime := time.Now().Add(sessionTTL)
	claims := &jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(expirationTime),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := jwtToken.SignedString(h.jwtSecret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    tokenString,
		Expires:  expirationTime,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) generateStateOauthCookie(w http.ResponseWriter) string {
	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)
	cookie := http.Cookie{
		Name:     "oauthstate",
		Value:    state,
		Expires:  time.Now().Add(20 * time.Minute),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, &cookie)
	return state
}
