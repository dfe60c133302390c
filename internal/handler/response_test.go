package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/pkg/apierror"
)

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()

	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteErrorClassified(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, apierror.New("ACCOUNT_LOCKED", "account is locked, try again in 15 minutes", "", http.StatusLocked))

	assert.Equal(t, http.StatusLocked, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "ACCOUNT_LOCKED", body.Error.Code)
}

func TestWriteErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrBlogNotFound, http.StatusNotFound, "NOT_FOUND"},
		{model.ErrPageNotFound, http.StatusNotFound, "NOT_FOUND"},
		{model.ErrSlugTaken, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("list blogs: %w", model.ErrStoreUnavailable), http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{fmt.Errorf("something else entirely"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.code+"/"+tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeEnvelope(t, rec)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestWritePageMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	writePage(rec, []string{"a", "b"}, 2, 10, 25)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 25, body.Meta.Total)
	assert.Equal(t, 3, body.Meta.TotalPages)
}

func TestDecodeBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	var dst model.LoginRequest
	err := decodeBody(rec, req, &dst)
	require.Error(t, err)

	req = httptest.NewRequest(http.MethodPost, "/",
		jsonBody(`{"username":"a","password":"b","extra":true}`))
	err = decodeBody(rec, req, &dst)
	require.Error(t, err)

	req = httptest.NewRequest(http.MethodPost, "/",
		jsonBody(`{"username":"a","password":"b"}`))
	require.NoError(t, decodeBody(rec, req, &dst))
	assert.Equal(t, "a", dst.Username)
}
