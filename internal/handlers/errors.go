package handlers

import (
	"errors"
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/httputil"
	"github.com/rockymountnc/licensetracker/internal/repository"
	"github.com/rockymountnc/licensetracker/internal/service"
)

// writeServiceError maps service and repository errors onto the uniform
// error schema. Validation errors carry their own code; everything else
// falls back to a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if verr, ok := service.AsValidationError(err); ok {
		httputil.WriteError(w, statusForCode(verr.Code), verr.Code, verr.Message, verr.Details)
		return
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrUserNotFound) {
		httputil.WriteError(w, http.StatusNotFound, service.CodeNotFound, "record not found", nil)
		return
	}
	httputil.WriteError(w, http.StatusInternalServerError, service.CodeInternalError, "internal server error", nil)
}

func statusForCode(code string) int {
	switch code {
	case service.CodeUsernameTaken, service.CodeEmailTaken:
		return http.StatusConflict
	case service.CodeLoginNotFound:
		return http.StatusNotFound
	case service.CodeIncorrectPassword:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func writeBadBody(w http.ResponseWriter) {
	httputil.WriteError(w, http.StatusBadRequest, service.CodeValidationFailed, "invalid request body", nil)
}

func writeBadID(w http.ResponseWriter) {
	httputil.WriteError(w, http.StatusBadRequest, service.CodeValidationFailed, "invalid id in path", nil)
}
