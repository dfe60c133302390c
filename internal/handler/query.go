package handler

import (
	"net/http"
	"strconv"

	"lawfirm-cms/internal/middleware"
)

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// actorFrom names the authenticated user for audit entries. Public routes
// have no claims and audit as "anonymous", which never happens in practice
// because only admin routes record mutations.
func actorFrom(r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.Username == "" {
		return "anonymous"
	}
	return claims.Username
}
