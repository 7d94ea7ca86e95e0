package handlers

import (
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/httputil"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/service"
)

type SoftwareHandler struct {
	service *service.SoftwareService
}

func NewSoftwareHandler(service *service.SoftwareService) *SoftwareHandler {
	return &SoftwareHandler{service: service}
}

func (h *SoftwareHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []*models.Software{}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *SoftwareHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	sw, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sw)
}

func (h *SoftwareHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SoftwareRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	sw, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sw)
}

func (h *SoftwareHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	var req models.SoftwareRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	sw, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sw)
}

func (h *SoftwareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
