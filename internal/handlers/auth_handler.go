package handlers

import (
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/httputil"
	"github.com/rockymountnc/licensetracker/internal/logging"
	"github.com/rockymountnc/licensetracker/internal/middleware"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/service"
	"github.com/rockymountnc/licensetracker/pkg/tokens"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *logging.Logger
}

func NewAuthHandler(service *service.AuthService, logger *logging.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User registered",
		logging.UserID(resp.User.ID),
		logging.Username(resp.User.Username),
		logging.IP(httputil.GetClientIP(r)),
	)
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Login failed",
			logging.IP(httputil.GetClientIP(r)),
			logging.Error(err),
		)
		writeServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User logged in",
		logging.UserID(resp.User.ID),
		logging.Username(resp.User.Username),
		logging.IP(httputil.GetClientIP(r)),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Logout revokes the presented bearer token. The endpoint reports success
// whether or not the token was live; only a storage failure is an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenString, _ := tokens.BearerToken(r.Header.Get("Authorization"))

	if err := h.service.Logout(r.Context(), tokenString); err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.LogoutResponse{Message: "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		httputil.WriteError(w, http.StatusUnauthorized, service.CodeUnauthorized, "authentication required", nil)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user.ToResponse())
}

func (h *AuthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
