package handler

import (
	"net/http"

	"lawfirm-cms/internal/service"
)

type AuditHandler struct {
	audit *service.AuditService
}

func NewAuditHandler(audit *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	entries, total, err := h.audit.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writePage(w, entries, page, limit, total)
}
