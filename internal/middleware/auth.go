package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type tokenVerifier interface {
	VerifyToken(tokenString string) (*model.AuthClaims, error)
	Authorize(claims *model.AuthClaims, allowedRoles ...string) error
}

type contextKey string

const (
	authClaimsContextKey  contextKey = "auth_claims"
	bearerTokenContextKey contextKey = "bearer_token"
)

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, apierror.New("TOKEN_INVALID", "missing or invalid authorization header", "", http.StatusUnauthorized))
			return
		}

		token := strings.TrimSpace(header[7:])
		claims, err := m.verifier.VerifyToken(token)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		ctx = context.WithValue(ctx, bearerTokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, apierror.New("TOKEN_INVALID", "authentication required", "", http.StatusUnauthorized))
				return
			}

			if err := m.verifier.Authorize(claims, allowedRoles...); err != nil {
				writeAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

// TokenFromContext returns the raw bearer token the request authenticated
// with; logout needs the exact value for the revocation marker.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenContextKey).(string)
	return token, ok
}

func writeAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	body := &model.APIError{Code: "TOKEN_INVALID", Message: "invalid token"}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{Success: false, Error: body})
}
