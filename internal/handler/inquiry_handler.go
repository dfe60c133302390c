package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
)

type InquiryHandler struct {
	inquiries *service.InquiryService
}

func NewInquiryHandler(inquiries *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// Create is the public contact form endpoint.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.InquiryInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	inquiry, err := h.inquiries.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, inquiry)
}

func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	status := r.URL.Query().Get("status")

	items, total, err := h.inquiries.List(r.Context(), status, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, items, page, limit, total)
}

func (h *InquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	inquiry, err := h.inquiries.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, inquiry)
}

func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input model.InquiryStatusInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	inquiry, err := h.inquiries.UpdateStatus(r.Context(), chi.URLParam(r, "id"), input.Status, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, inquiry)
}

func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.inquiries.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "inquiry deleted"})
}
