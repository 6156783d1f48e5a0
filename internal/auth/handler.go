package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ulavalmarket/marketplace-api/internal/httputil"
	"github.com/ulavalmarket/marketplace-api/internal/logging"
	"github.com/ulavalmarket/marketplace-api/internal/user"
)

// Handler contains the HTTP handlers for the /auth endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IDUL     string `json:"idul"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HealthResponse is the module health payload.
type HealthResponse struct {
	Status    string   `json:"status"`
	Module    string   `json:"module"`
	Endpoints []string `json:"endpoints"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create an account and immediately receive an auth token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondError(w, httputil.CodeInvalidRequest, "request body must be valid JSON", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := ValidateRegister(req); err != nil {
		logger.Warn("registration validation failed", "error", err.Error())
		httputil.RespondError(w, httputil.CodeValidationError, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), req.Email, req.Password, req.IDUL)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondError(w, httputil.CodeEmailAlreadyExists, "a user already exists with this email", http.StatusConflict)
			return
		}
		logger.Error("registration failed", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	logger.Info("user registered", "user_id", resp.UserID)
	httputil.RespondJSON(w, resp, http.StatusCreated)
}

// Login handles user login
// @Summary      Authenticate a user
// @Description  Exchange email and password for an auth token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondError(w, httputil.CodeInvalidRequest, "request body must be valid JSON", http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := ValidateLogin(req); err != nil {
		logger.Warn("login validation failed", "error", err.Error())
		httputil.RespondError(w, httputil.CodeValidationError, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	logger.Info("user logged in", "user_id", resp.UserID)
	httputil.RespondJSON(w, resp, http.StatusOK)
}

// Me returns the current user
// @Summary      Get the current user
// @Description  Resolve the account behind the bearer token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing, malformed, invalid or expired token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token, ok := bearerToken(w, r, logger)
	if !ok {
		return
	}

	resp, err := h.service.CurrentUser(r.Context(), token)
	if err != nil {
		logger.Warn("current user lookup failed", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	httputil.RespondJSON(w, resp, http.StatusOK)
}

// Logout invalidates the current session
// @Summary      Log out
// @Description  Mark the session behind the bearer token as used; unknown tokens succeed silently
// @Tags         auth
// @Security     BearerAuth
// @Success      204 "No content"
// @Failure      401 {object} httputil.ErrorResponse "Missing or malformed Authorization header"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	token, ok := bearerToken(w, r, logger)
	if !ok {
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		logger.Error("logout failed", "error", err.Error())
		httputil.RespondDomainError(w, err)
		return
	}

	logger.Info("user logged out")
	httputil.RespondNoContent(w)
}

// Health reports module status
// @Summary      Auth module health
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /auth/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, HealthResponse{
		Status: "healthy",
		Module: "auth",
		Endpoints: []string{
			"POST /auth/register",
			"POST /auth/login",
			"GET /auth/me",
			"POST /auth/logout",
		},
	}, http.StatusOK)
}
