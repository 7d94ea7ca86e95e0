package handlers

import (
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/httputil"
	"github.com/rockymountnc/licensetracker/internal/middleware"
	"github.com/rockymountnc/licensetracker/internal/models"
	"github.com/rockymountnc/licensetracker/internal/service"
)

type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// List returns all comments, or the comments for one software record when
// the software_id query parameter is present.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []*models.Comment
		err  error
	)

	if raw := r.URL.Query().Get("software_id"); raw != "" {
		var softwareID int64
		softwareID, err = httputil.ParseID(raw)
		if err != nil {
			writeBadID(w)
			return
		}
		list, err = h.service.ListBySoftware(r.Context(), softwareID)
	} else {
		list, err = h.service.List(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []*models.Comment{}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

// ListForSoftware returns the comments attached to one software record,
// addressed by path.
func (h *CommentHandler) ListForSoftware(w http.ResponseWriter, r *http.Request) {
	softwareID, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	list, err := h.service.ListBySoftware(r.Context(), softwareID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []*models.Comment{}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	comment, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		httputil.WriteError(w, http.StatusUnauthorized, service.CodeUnauthorized, "authentication required", nil)
		return
	}

	var req models.CommentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	comment, err := h.service.Create(r.Context(), user, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	var req models.CommentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	comment, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		writeBadID(w)
		return
	}

	var req models.CommentPatchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		writeBadBody(w)
		return
	}

	comment, err := h.service.Patch(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
