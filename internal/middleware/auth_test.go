package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

type fakeVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (v *fakeVerifier) VerifyToken(string) (*model.AuthClaims, error) {
	return v.claims, v.err
}

func (v *fakeVerifier) Authorize(claims *model.AuthClaims, allowedRoles ...string) error {
	for _, role := range allowedRoles {
		if claims.Role == role {
			return nil
		}
	}
	return apierror.New("FORBIDDEN", "insufficient permissions", "", http.StatusForbidden)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&fakeVerifier{})
	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestRequireAuthPropagatesVerifierError(t *testing.T) {
	mw := NewAuthMiddleware(&fakeVerifier{
		err: apierror.New("TOKEN_REVOKED", "token has been revoked", "", http.StatusUnauthorized),
	})
	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
}

func TestRequireAuthStoresClaimsAndToken(t *testing.T) {
	claims := &model.AuthClaims{UserID: "u-1", Username: "alice", Role: "admin"}
	mw := NewAuthMiddleware(&fakeVerifier{claims: claims})

	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u-1", got.UserID)

		token, ok := TokenFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "some-token", token)

		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	claims := &model.AuthClaims{UserID: "u-1", Username: "bob", Role: "editor"}
	mw := NewAuthMiddleware(&fakeVerifier{claims: claims})

	allowed := mw.RequireAuth(mw.RequireRoles("admin", "editor")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	allowed.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	denied := mw.RequireAuth(mw.RequireRoles("admin")(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		})))

	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}
