package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
)

type SubscriberHandler struct {
	subscribers *service.SubscriberService
}

func NewSubscriberHandler(subscribers *service.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{subscribers: subscribers}
}

func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req model.SubscribeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	sub, err := h.subscribers.Subscribe(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, sub)
}

func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	items, total, err := h.subscribers.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, items, page, limit, total)
}

func (h *SubscriberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.subscribers.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "subscriber removed"})
}
