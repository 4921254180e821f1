package handlers

import (
	"log/slog"
	"net/http"

	"splitledger/internal/auth"
	"splitledger/internal/metrics"
	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authenticator auth.Authenticator, tokens *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		tokens:        tokens,
	}
}

// userView is the read-only projection of a user exposed to clients.
type userView struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

func viewUser(u *models.User) userView {
	return userView{ID: u.ID, Login: u.Login, Email: u.Email}
}

type sessionResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

// setSessionCookie issues the session cookie alongside the token response so
// both browser-form and API clients can authenticate follow-up requests.
func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /register with form fields login, email, password.
// Every failing field is reported in one response; no user is created unless
// the whole form is valid.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	login := r.FormValue("login")
	slog.Info("Register request", "login", login)

	user, err := h.authenticator.Register(r.Context(), login, r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeErrors(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.RegistrationsTotal.Inc()
	setSessionCookie(w, token, 0)
	slog.Info("User registered", "user_id", user.ID, "login", user.Login)
	writeJSON(w, http.StatusCreated, sessionResponse{User: viewUser(user), Token: token})
}

// Login handles POST /login with form fields login, password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	login := r.FormValue("login")
	slog.Info("Login request", "login", login)

	user, err := h.authenticator.Authenticate(r.Context(), login, r.FormValue("password"))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		slog.Warn("Login failed", "login", login, "error", err)
		writeServiceErr(w, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeErrors(w, http.StatusInternalServerError, "internal error")
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	setSessionCookie(w, token, 0)
	slog.Info("User logged in", "user_id", user.ID, "login", user.Login)
	writeJSON(w, http.StatusOK, sessionResponse{User: viewUser(user), Token: token})
}

// Logout handles POST /logout. Tokens are stateless, so logout clears the
// session cookie; API clients discard the token. Requires an active session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	slog.Info("Logout request", "user_id", middleware.GetUserID(r.Context()))
	setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, struct{}{})
}
