package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"title":"Buy milk"}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "malformed", body: `{"title":`, wantErr: "badly-formed JSON"},
		{name: "wrong type", body: `{"title":5}`, wantErr: `incorrect JSON type for field "title"`},
		{name: "unknown field", body: `{"title":"x","owner_id":9}`, wantErr: `unknown key "owner_id"`},
		{name: "two values", body: `{"title":"a"}{"title":"b"}`, wantErr: "single JSON value"},
		{name: "too large", body: `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`, wantErr: "must not be larger than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			err := DecodeJSONBody(w, r, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Buy milk", dst.Title)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestErrorResponse_IncludesRequestID(t *testing.T) {
	var got map[string]interface{}
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, r, http.StatusBadRequest, "bad input")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "bad input", got["error"])
	assert.NotEmpty(t, got["request_id"])
}

func TestWriteJSONResponse_NoContent(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONResponse(w, httptest.NewRequest(http.MethodDelete, "/", nil), http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestVerifyAudience(t *testing.T) {
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"a", "b"}, "b"))
	assert.False(t, VerifyAudience(jwt.ClaimStrings{"a"}, "b"))
	assert.False(t, VerifyAudience(nil, "b"))
	assert.True(t, VerifyAudience(nil, ""))
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", types.ErrInvalidArgument), http.StatusBadRequest},
		{types.ErrDuplicateIdentity, http.StatusConflict},
		{types.ErrInvalidCredentials, http.StatusUnauthorized},
		{types.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("task 3: %w", types.ErrNotFound), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password authentication")
}

func TestWriteError_NotFoundIsUniform(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", nil), fmt.Errorf("task 12 owner 3: %w", types.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "owner 3")
}

func TestParseBoolQuery(t *testing.T) {
	for _, raw := range []string{"true", "TRUE", "1", "yes", "Yes"} {
		v, err := ParseBoolQuery(url.Values{"done": {raw}}, "done")
		require.NoError(t, err, raw)
		require.NotNil(t, v)
		assert.True(t, *v, raw)
	}
	for _, raw := range []string{"false", "0", "no", "NO"} {
		v, err := ParseBoolQuery(url.Values{"done": {raw}}, "done")
		require.NoError(t, err, raw)
		require.NotNil(t, v)
		assert.False(t, *v, raw)
	}

	v, err := ParseBoolQuery(url.Values{}, "done")
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseBoolQuery(url.Values{"done": {""}}, "done")
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseBoolQuery(url.Values{"done": {"maybe"}}, "done")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestParseStatusQuery(t *testing.T) {
	s, err := ParseStatusQuery(url.Values{"status": {"in_progress"}}, "status")
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusInProgress, *s)

	s, err = ParseStatusQuery(url.Values{}, "status")
	assert.NoError(t, err)
	assert.Nil(t, s)

	_, err = ParseStatusQuery(url.Values{"status": {"archived"}}, "status")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, types.ErrInvalidArgument, raw)
	}
}
