package standards

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerEnv struct {
	router http.Handler
	repo   *mockRepository
}

func newHandlerEnv() *handlerEnv {
	repo := newMockRepository()
	r := chi.NewRouter()
	NewHandler(NewService(repo, nil)).RegisterRoutes(r)
	return &handlerEnv{router: r, repo: repo}
}

func (e *handlerEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *handlerEnv) create(t *testing.T) domain.Standard {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/standards", `{"title":"ISO 9001","category":"Quality","content":"Checklist"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var s domain.Standard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestHandler_CreateStandard(t *testing.T) {
	t.Run("created with defaults", func(t *testing.T) {
		env := newHandlerEnv()

		s := env.create(t)

		assert.NotEmpty(t, s.ID)
		assert.Equal(t, "ISO 9001", s.Title)
		assert.Equal(t, "1.0", s.Version)
		assert.False(t, s.LastUpdated.IsZero())
	})

	t.Run("server-owned fields ignored", func(t *testing.T) {
		env := newHandlerEnv()
		rec := env.do(t, http.MethodPost, "/standards", `{
			"id": "00000000-0000-0000-0000-000000000001",
			"title": "GMP",
			"category": "Pharma",
			"content": "Rules",
			"last_updated": "2001-01-01T00:00:00Z"
		}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var s domain.Standard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000001", s.ID)
		assert.NotEqual(t, 2001, s.LastUpdated.Year())
	})

	t.Run("response field names", func(t *testing.T) {
		env := newHandlerEnv()
		rec := env.do(t, http.MethodPost, "/standards", `{"title":"T","category":"C","content":"X","version":"3"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		for _, key := range []string{"id", "title", "category", "content", "version", "last_updated"} {
			assert.Contains(t, raw, key)
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{name: "missing title", body: `{"category":"C","content":"X"}`, field: "title"},
			{name: "title too long", body: `{"title":"` + strings.Repeat("a", 201) + `","category":"C","content":"X"}`, field: "title"},
			{name: "missing category", body: `{"title":"T","content":"X"}`, field: "category"},
			{name: "missing content", body: `{"title":"T","category":"C"}`, field: "content"},
			{name: "version too long", body: `{"title":"T","category":"C","content":"X","version":"` + strings.Repeat("1", 21) + `"}`, field: "version"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newHandlerEnv()
				rec := env.do(t, http.MethodPost, "/standards", tt.body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), `"field":"`+tt.field+`"`)
				assert.Empty(t, env.repo.standards)
			})
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		env := newHandlerEnv()
		rec := env.do(t, http.MethodPost, "/standards", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"invalid json"}}`, rec.Body.String())
	})
}

func TestHandler_GetStandard(t *testing.T) {
	env := newHandlerEnv()
	s := env.create(t)

	rec := env.do(t, http.MethodGet, "/standards/"+s.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Standard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, s.ID, got.ID)
	assert.True(t, s.LastUpdated.Equal(got.LastUpdated))

	rec = env.do(t, http.MethodGet, "/standards/"+domain.NewID(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"standard not found"}}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/standards/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ListStandards(t *testing.T) {
	env := newHandlerEnv()

	rec := env.do(t, http.MethodGet, "/standards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	env.create(t)
	env.create(t)

	rec = env.do(t, http.MethodGet, "/standards", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Standard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestHandler_ReplaceStandard(t *testing.T) {
	t.Run("full update keeps omitted version", func(t *testing.T) {
		env := newHandlerEnv()
		s := env.create(t)

		rec := env.do(t, http.MethodPut, "/standards/"+s.ID, `{"title":"New","category":"Safety","content":"Updated"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got domain.Standard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "Safety", got.Category)
		assert.Equal(t, "1.0", got.Version)
		assert.False(t, got.LastUpdated.Before(s.LastUpdated))
	})

	t.Run("missing required field", func(t *testing.T) {
		env := newHandlerEnv()
		s := env.create(t)

		rec := env.do(t, http.MethodPut, "/standards/"+s.ID, `{"title":"New"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		env := newHandlerEnv()
		rec := env.do(t, http.MethodPut, "/standards/"+domain.NewID(), `{"title":"T","category":"C","content":"X"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown id wins over invalid body", func(t *testing.T) {
		env := newHandlerEnv()
		longTitle := strings.Repeat("x", 201)

		rec := env.do(t, http.MethodPut, "/standards/"+domain.NewID(), `{"title":"`+longTitle+`","category":"C","content":"X"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"standard not found"}}`, rec.Body.String())

		rec = env.do(t, http.MethodPut, "/standards/"+domain.NewID(), `{not json`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_PatchStandard(t *testing.T) {
	env := newHandlerEnv()
	s := env.create(t)

	rec := env.do(t, http.MethodPatch, "/standards/"+s.ID, `{"version":"2.0"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got domain.Standard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2.0", got.Version)
	assert.Equal(t, s.Title, got.Title)

	rec = env.do(t, http.MethodPatch, "/standards/"+s.ID, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	t.Run("empty body keeps fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/standards/"+s.ID, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var unchanged domain.Standard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unchanged))
		assert.Equal(t, s.ID, unchanged.ID)
		assert.Equal(t, s.Title, unchanged.Title)
		assert.Equal(t, "2.0", unchanged.Version)
		assert.False(t, unchanged.LastUpdated.Before(got.LastUpdated))
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/standards/"+domain.NewID(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_DeleteStandard(t *testing.T) {
	env := newHandlerEnv()
	s := env.create(t)

	rec := env.do(t, http.MethodDelete, "/standards/"+s.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/standards/"+s.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
