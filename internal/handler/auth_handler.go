package handler

import (
	"net/http"
	"strings"

	"lawfirm-cms/internal/middleware"
	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
	"lawfirm-cms/pkg/apierror"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest))
		return
	}

	result, err := h.auth.Authenticate(r.Context(), req.Username, req.Password, middleware.ExtractClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

// Refresh rotates the presented bearer token. The old token stops working
// immediately; clients swap in the returned one.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("TOKEN_INVALID", "authentication required", "", http.StatusUnauthorized))
		return
	}

	result, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("TOKEN_INVALID", "authentication required", "", http.StatusUnauthorized))
		return
	}

	if err := h.auth.Logout(token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("TOKEN_INVALID", "authentication required", "", http.StatusUnauthorized))
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, user)
}
