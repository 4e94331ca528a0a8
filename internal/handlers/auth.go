package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/awessel/todo-api/internal/auth"
	"github.com/awessel/todo-api/internal/metrics"
	"github.com/awessel/todo-api/internal/repo"
)

// errInvalidCredentials is deliberately the same whether the email is
// unknown or the password is wrong, so the endpoint cannot be used to
// enumerate accounts.
const errInvalidCredentials = "invalid email or password"

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.TokenService
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@x.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@x.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account and return a bearer token for it
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		RegisterRequest	true	"Registration data"
//	@Success		200		{object}	AuthResponse	"Account created, token issued"
//	@Failure		400		{object}	AuthResponse	"Invalid payload or email already in use"
//	@Failure		500		{object}	AuthResponse	"Internal server error"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authFailure(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		authFailure(w, http.StatusBadRequest, validationMessages(err)...)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("register: hash password", "error", err)
		authFailure(w, http.StatusInternalServerError, ErrMessageInternal)
		return
	}

	user, err := h.Users.Create(r.Context(), req.Username, req.Email, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			authFailure(w, http.StatusBadRequest, "email already in use")
			return
		}
		slog.Error("register: create user", "error", err)
		authFailure(w, http.StatusInternalServerError, ErrMessageInternal)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		slog.Error("register: issue token", "error", err)
		authFailure(w, http.StatusInternalServerError, ErrMessageInternal)
		return
	}

	metrics.TokensIssued.WithLabelValues("register").Inc()
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: token})
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Verify credentials and return a fresh bearer token. Every login issues an independent token; no session state is kept.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		LoginRequest	true	"Login credentials"
//	@Success		200			{object}	AuthResponse	"Token issued"
//	@Failure		400			{object}	AuthResponse	"Invalid payload or credentials"
//	@Failure		500			{object}	AuthResponse	"Internal server error"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authFailure(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		authFailure(w, http.StatusBadRequest, validationMessages(err)...)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.LoginFailures.Inc()
			authFailure(w, http.StatusBadRequest, errInvalidCredentials)
			return
		}
		slog.Error("login: get user", "error", err)
		authFailure(w, http.StatusInternalServerError, ErrMessageInternal)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginFailures.Inc()
		authFailure(w, http.StatusBadRequest, errInvalidCredentials)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		slog.Error("login: issue token", "error", err)
		authFailure(w, http.StatusInternalServerError, ErrMessageInternal)
		return
	}

	metrics.TokensIssued.WithLabelValues("login").Inc()
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Token: token})
}

// validationMessages turns validator errors into client-facing strings.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid payload"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return msgs
}
