package handler

import (
	"net/http"
	"strings"

	"lawfirm-cms/internal/service"
	"lawfirm-cms/pkg/apierror"
)

type UploadHandler struct {
	uploads *service.UploadService
	maxSize int64
}

func NewUploadHandler(uploads *service.UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxSize: maxSize}
}

// Upload accepts a multipart form with a single "file" part. The declared
// content type is taken from the part header; the service re-checks size
// against the configured limit.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "multipart form with a 'file' part is required", "", http.StatusBadRequest))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	result, err := h.uploads.Save(r.Context(), file, header.Size, contentType, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result)
}

func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		writeError(w, apierror.New("BAD_REQUEST", "path query parameter is required", "", http.StatusBadRequest))
		return
	}

	if err := h.uploads.Remove(r.Context(), path, actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "file removed"})
}
