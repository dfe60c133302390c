package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
)

// PracticeAreaHandler serves the firm's service offerings. The route and
// payload naming stays "services" for compatibility with existing clients.
type PracticeAreaHandler struct {
	areas *service.PracticeAreaService
}

func NewPracticeAreaHandler(areas *service.PracticeAreaService) *PracticeAreaHandler {
	return &PracticeAreaHandler{areas: areas}
}

func (h *PracticeAreaHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.areas.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, items)
}

func (h *PracticeAreaHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	area, err := h.areas.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, area)
}

func (h *PracticeAreaHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	area, err := h.areas.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, area)
}

func (h *PracticeAreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.PracticeAreaInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	area, err := h.areas.Create(r.Context(), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, area)
}

func (h *PracticeAreaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.PracticeAreaInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	area, err := h.areas.Update(r.Context(), chi.URLParam(r, "id"), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, area)
}

func (h *PracticeAreaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.areas.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "service deleted"})
}
