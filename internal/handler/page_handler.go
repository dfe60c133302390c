package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
)

type PageHandler struct {
	pages *service.PageService
}

func NewPageHandler(pages *service.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page)
}

func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.PageInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	page, err := h.pages.Update(r.Context(), chi.URLParam(r, "key"), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, page)
}
