package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.APIResponse{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, page int, limit int, total int) {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	writeJSON(w, http.StatusOK, model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    &model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages},
	})
}

// writeError maps service errors onto the response envelope. Classified
// errors carry their own code and status; anything unclassified is reported
// and hidden behind a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.HTTPStatus, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details},
		})
		return
	}

	if code, msg, ok := notFoundFor(err); ok {
		writeJSON(w, http.StatusNotFound, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: code, Message: msg},
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrSlugTaken):
		writeJSON(w, http.StatusConflict, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: "CONFLICT", Message: "slug is already in use"},
		})
	case errors.Is(err, model.ErrStoreUnavailable):
		slog.Error("store unavailable", "error", err)
		sentry.CaptureException(err)
		writeJSON(w, http.StatusServiceUnavailable, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: "STORE_UNAVAILABLE", Message: "persistent store is unavailable"},
		})
	default:
		slog.Error("unhandled error", "error", err)
		sentry.CaptureException(err)
		writeJSON(w, http.StatusInternalServerError, model.APIResponse{
			Success: false,
			Error:   &model.APIError{Code: "INTERNAL_ERROR", Message: "Unexpected server error"},
		})
	}
}

func notFoundFor(err error) (code string, message string, ok bool) {
	switch {
	case errors.Is(err, model.ErrBlogNotFound):
		return "NOT_FOUND", "blog post not found", true
	case errors.Is(err, model.ErrServiceNotFound):
		return "NOT_FOUND", "service not found", true
	case errors.Is(err, model.ErrMemberNotFound):
		return "NOT_FOUND", "team member not found", true
	case errors.Is(err, model.ErrPageNotFound):
		return "NOT_FOUND", "page not found", true
	case errors.Is(err, model.ErrInquiryNotFound):
		return "NOT_FOUND", "inquiry not found", true
	case errors.Is(err, model.ErrSubscriberNotFound):
		return "NOT_FOUND", "subscriber not found", true
	case errors.Is(err, model.ErrUserNotFound):
		return "NOT_FOUND", "user not found", true
	}
	return "", "", false
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierror.New("BAD_REQUEST", "request body is required", "", http.StatusBadRequest)
		}
		return apierror.New("BAD_REQUEST", "request body is not valid JSON", strings.TrimSpace(err.Error()), http.StatusBadRequest)
	}

	return nil
}
