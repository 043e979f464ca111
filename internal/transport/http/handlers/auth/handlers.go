package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Handler struct {
	Store     *auth.Store
	JWTSecret string
	TokenTTL  time.Duration
}

func NewHandler(store *auth.Store, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Get("/profile", h.handleProfile)
		r.Post("/forgot-password", h.handleForgotPassword)
	})
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    auth.User `json:"user"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))
	payload.Role = strings.TrimSpace(payload.Role)
	if payload.Role == "" {
		payload.Role = auth.RoleUser
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "username is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Email != "" {
		if _, err := mail.ParseAddress(payload.Email); err != nil {
			v.Add("email", "email must be a valid address")
		}
	}
	if len(payload.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if !auth.ValidRole(payload.Role) {
		v.Add("role", "role must be user or admin")
	}
	if v.Reject(w, reqID) {
		return
	}

	taken, err := h.Store.UsernameOrEmailTaken(r.Context(), payload.Email, payload.Username)
	if err != nil {
		slog.Error("register lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", reqID)
		return
	}
	if taken {
		api.Fail(w, http.StatusBadRequest, "user_exists", "user with this email or username already exists", reqID)
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		slog.Error("password hash failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", reqID)
		return
	}

	id, err := h.Store.CreateUser(r.Context(), payload.Username, payload.Email, hash, payload.Role)
	if err != nil {
		// Two racing registrations can both pass the pre-check; the unique
		// constraint decides, and the loser gets the same conflict answer.
		if isUniqueViolation(err) {
			api.Fail(w, http.StatusBadRequest, "user_exists", "user with this email or username already exists", reqID)
			return
		}
		slog.Error("create user failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", reqID)
		return
	}

	user, err := h.Store.GetUser(r.Context(), id)
	if err != nil {
		slog.Error("load created user failed", "err", err, "id", id)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", reqID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, h.TokenTTL)
	if err != nil {
		slog.Error("token generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", reqID)
		return
	}

	api.Created(w, authResponse{Message: "user registered successfully", Token: token, User: user}, reqID)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	v.Required("password", payload.Password, "password is required")
	if v.Reject(w, reqID) {
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		// Same response whether the user is missing or the password is wrong.
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}
	if err != nil {
		slog.Error("login lookup failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", reqID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, h.TokenTTL)
	if err != nil {
		slog.Error("token generation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", reqID)
		return
	}

	user.PasswordHash = ""
	api.Success(w, authResponse{Message: "login successful", Token: token, User: user}, reqID)
}

// handleProfile verifies the token itself instead of sitting behind
// RequireAuth, so any token problem answers 401 rather than 403.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	token, ok := middleware.BearerToken(r)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "access token required", reqID)
		return
	}
	claims, err := auth.ParseToken(h.JWTSecret, token)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", reqID)
		return
	}

	user, err := h.Store.GetUser(r.Context(), claims.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusNotFound, "user_not_found", "user not found", reqID)
		return
	}
	if err != nil {
		slog.Error("profile lookup failed", "err", err, "userId", claims.UserID)
		api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", reqID)
		return
	}

	api.Success(w, map[string]any{"user": user}, reqID)
}

// handleForgotPassword always answers the same way so the endpoint cannot
// be used to probe which emails are registered.
func (h *Handler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, reqID) {
		return
	}

	if _, err := h.Store.FindUserByEmail(r.Context(), payload.Email); err == nil {
		slog.Info("password reset requested", "email", payload.Email)
	}

	api.Success(w, map[string]string{
		"message": "if the email is registered, password reset instructions have been sent",
	}, reqID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
