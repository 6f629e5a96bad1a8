package authhandler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"staffrecords/internal/domain/access"
	"staffrecords/internal/domain/auth"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
	"staffrecords/internal/transport/http/shared"
)

type Service interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
	ChangePassword(ctx context.Context, accountID int64, current, next string) error
	Profile(ctx context.Context, accountID int64) (auth.Profile, error)
}

type Handler struct {
	Service Service
	Audit   shared.AuditRecorder
	Now     func() time.Time
}

func NewHandler(service Service, audit shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Audit: audit, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Get("/navigation", h.handleNavigation)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/logout", h.handleLogout)
			r.Post("/change-password", h.handleChangePassword)
			r.Get("/profile", h.handleProfile)
		})
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, requestID) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrCredentialsRequired):
		api.Fail(w, http.StatusBadRequest, "validation_error", "email and password are required", requestID)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	default:
		shared.WriteError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.Envelope{
		Success:   true,
		Data:      result,
		Message:   "login successful",
		RequestID: requestID,
	})
}

// Tokens are stateless, so logout only tells the client to drop its copy.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	api.Message(w, "logged out", middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	var payload changePasswordRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.WriteError(w, r, err)
		return
	}
	v := shared.NewValidator()
	v.Required("currentPassword", payload.CurrentPassword, "is required")
	v.Required("newPassword", payload.NewPassword, "is required")
	if v.Reject(w, requestID) {
		return
	}

	err := h.Service.ChangePassword(r.Context(), user.AccountID, payload.CurrentPassword, payload.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrIncorrectPassword):
		api.Fail(w, http.StatusBadRequest, "incorrect_password", "current password is incorrect", requestID)
		return
	case errors.Is(err, auth.ErrPasswordsRequired):
		api.Fail(w, http.StatusBadRequest, "validation_error", "current and new password are required", requestID)
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	default:
		shared.WriteError(w, r, err)
		return
	}

	shared.RecordAudit(r, h.Audit, "password.change", "account", user.AccountID, nil, nil)
	api.Message(w, "password changed", requestID)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.RequireUser(w, r)
	if !ok {
		return
	}
	profile, err := h.Service.Profile(r.Context(), user.AccountID)
	if errors.Is(err, auth.ErrAccountNotFound) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		shared.WriteError(w, r, err)
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

// handleNavigation answers the browser's route guard. It is public so an
// anonymous or expired session gets the login redirect rather than a 401.
func (h *Handler) handleNavigation(w http.ResponseWriter, r *http.Request) {
	route := strings.TrimSpace(r.URL.Query().Get("route"))
	if route == "" {
		route = access.RouteDashboard
	}

	var session *access.Session
	role := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		session = &access.Session{Role: user.Role, ExpiresAt: user.ExpiresAt}
		role = user.Role
	}

	nav := access.Navigation{Decision: access.Guard(session, route, h.Now())}
	if session != nil && nav.Decision.Redirect != access.RouteLogin {
		nav.Dashboard = access.DashboardFor(role)
		nav.Menu = access.MenuFor(role)
	}
	api.Success(w, nav, middleware.GetRequestID(r.Context()))
}
