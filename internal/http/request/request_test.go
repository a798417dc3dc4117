package request_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/items-api/internal/http/request"
	"github.com/tuanvumaihuynh/items-api/pkg/ptr"
)

func TestPathParam(t *testing.T) {
	var (
		got    int64
		gotErr error
	)
	r := chi.NewRouter()
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = request.PathParam[int64](r, "id")
	})

	t.Run("Should bind integer", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))

		require.NoError(t, gotErr)
		assert.Equal(t, int64(42), got)
	})

	t.Run("Should reject non integer", func(t *testing.T) {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/abc", nil))

		var paramErr *request.InvalidParamFormatError
		require.True(t, errors.As(gotErr, &paramErr))
		assert.Equal(t, "id", paramErr.ParamName)
		assert.Contains(t, gotErr.Error(), "Invalid format for parameter id")
	})
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name *string `json:"name"`
	}

	t.Run("Should decode object", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"pen"}`))

		require.NoError(t, request.DecodeJSON(req, &b))
		require.NotNil(t, b.Name)
		assert.Equal(t, "pen", *b.Name)
	})

	t.Run("Should accept empty body and null", func(t *testing.T) {
		for _, payload := range []string{"", "  \n", "null"} {
			var b body
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

			require.NoError(t, request.DecodeJSON(req, &b))
			assert.Nil(t, b.Name)
		}
	})

	t.Run("Should reject malformed json", func(t *testing.T) {
		for _, payload := range []string{"{", `{"name":1}`, `[1]`} {
			var b body
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

			var bodyErr *request.InvalidBodyError
			assert.True(t, errors.As(request.DecodeJSON(req, &b), &bodyErr), payload)
		}
	})

	t.Run("Should reject oversized body", func(t *testing.T) {
		var b body
		payload := `{"name":"` + strings.Repeat("a", request.MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

		var bodyErr *request.InvalidBodyError
		assert.True(t, errors.As(request.DecodeJSON(req, &b), &bodyErr))
	})
}

func TestNullable(t *testing.T) {
	type body struct {
		Description request.Nullable[string] `json:"description"`
	}

	tests := map[string]struct {
		input    string
		wantPtr  *string
		wantNull bool
	}{
		"absent": {input: `{}`},
		"null":   {input: `{"description":null}`, wantNull: true},
		"value":  {input: `{"description":"Desk"}`, wantPtr: ptr.New("Desk")},
		"empty":  {input: `{"description":""}`, wantPtr: ptr.New("")},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tc.input), &b))

			assert.Equal(t, tc.wantPtr, b.Description.Ptr())
			assert.Equal(t, tc.wantNull, b.Description.IsNull())
		})
	}

	t.Run("Should reject wrong type", func(t *testing.T) {
		var b body
		assert.Error(t, json.Unmarshal([]byte(`{"description":1}`), &b))
	})
}
