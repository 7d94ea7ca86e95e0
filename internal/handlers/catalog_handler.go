package handlers

import (
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/httputil"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/service"
)

// CatalogHandler serves the reference tables linked from software records.
type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func writeList[T any](w http.ResponseWriter, list []T, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []T{}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *CatalogHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDepartments(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var d models.Department
	if err := httputil.DecodeJSON(r, &d); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.service.CreateDepartment(r.Context(), &d); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

func (h *CatalogHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListVendors(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var v models.Vendor
	if err := httputil.DecodeJSON(r, &v); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.service.CreateVendor(r.Context(), &v); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, v)
}

func (h *CatalogHandler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDivisions(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var d models.Division
	if err := httputil.DecodeJSON(r, &d); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.service.CreateDivision(r.Context(), &d); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

func (h *CatalogHandler) ListGlAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListGlAccounts(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) CreateGlAccount(w http.ResponseWriter, r *http.Request) {
	var a models.GlAccount
	if err := httputil.DecodeJSON(r, &a); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.service.CreateGlAccount(r.Context(), &a); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *CatalogHandler) ListSoftwareToOperate(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListSoftwareToOperate(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) CreateSoftwareToOperate(w http.ResponseWriter, r *http.Request) {
	var s models.SoftwareToOperate
	if err := httputil.DecodeJSON(r, &s); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.service.CreateSoftwareToOperate(r.Context(), &s); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, s)
}

func (h *CatalogHandler) ListHardwareToOperate(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListHardwareToOperate(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) CreateHardwareToOperate(w http.ResponseWriter, r *http.Request) {
	var hw models.HardwareToOperate
	if err := httputil.DecodeJSON(r, &hw); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.service.CreateHardwareToOperate(r.Context(), &hw); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, hw)
}

func (h *CatalogHandler) ListContactPeople(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListContactPeople(r.Context())
	writeList(w, list, err)
}

func (h *CatalogHandler) GetContactPerson(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	contact, err := h.service.GetContactPerson(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contact)
}

func (h *CatalogHandler) CreateContactPerson(w http.ResponseWriter, r *http.Request) {
	var req models.ContactPersonRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	contact, err := h.service.CreateContactPerson(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, contact)
}
