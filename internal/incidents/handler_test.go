package incidents

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

func (e *handlerEnv) create(t *testing.T, body string) domain.Incident {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/incidents", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var i domain.Incident
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &i))
	return i
}

func TestHandler_CreateIncident(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		env := newHandlerEnv()

		i := env.create(t, `{"type":"Spill","description":"Oil on floor"}`)

		assert.Equal(t, domain.SeverityLow, i.Severity)
		assert.Equal(t, domain.IncidentStatusOpen, i.Status)
		assert.Equal(t, "Anonymous", i.ReportedBy)
	})

	t.Run("empty reporter becomes anonymous", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil","reported_by":""}`)
		assert.Equal(t, "Anonymous", i.ReportedBy)
	})

	t.Run("client reported_at ignored", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil","reported_at":"1999-12-31T00:00:00Z"}`)
		assert.NotEqual(t, 1999, i.ReportedAt.Year())
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{name: "missing type", body: `{"description":"x"}`, field: "type"},
			{name: "missing description", body: `{"type":"x"}`, field: "description"},
			{name: "bad severity", body: `{"type":"x","description":"y","severity":"URGENT"}`, field: "severity"},
			{name: "lower-case severity", body: `{"type":"x","description":"y","severity":"high"}`, field: "severity"},
			{name: "bad status", body: `{"type":"x","description":"y","status":"CLOSED"}`, field: "status"},
			{name: "reporter too long", body: `{"type":"x","description":"y","reported_by":"` + strings.Repeat("r", 101) + `"}`, field: "reported_by"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newHandlerEnv()
				rec := env.do(t, http.MethodPost, "/incidents", tt.body)

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), `"field":"`+tt.field+`"`)
				assert.Empty(t, env.repo.incidents)
			})
		}
	})
}

func TestHandler_ListIncidents(t *testing.T) {
	env := newHandlerEnv()
	env.create(t, `{"type":"A","description":"a","severity":"LOW"}`)
	env.create(t, `{"type":"B","description":"b","severity":"CRITICAL","status":"RESOLVED"}`)

	t.Run("all", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/incidents", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var list []domain.Incident
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 2)
	})

	t.Run("filtered", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/incidents?severity=CRITICAL", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var list []domain.Incident
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "B", list[0].Type)
	})

	t.Run("no match is empty array", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/incidents?status=INVESTIGATING", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("invalid filter", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/incidents?status=closed", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"status"`)
	})
}

func TestHandler_ListChoices(t *testing.T) {
	env := newHandlerEnv()

	rec := env.do(t, http.MethodGet, "/incidents/choices", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"severity": [
			{"value":"LOW","display_name":"Low"},
			{"value":"MEDIUM","display_name":"Medium"},
			{"value":"HIGH","display_name":"High"},
			{"value":"CRITICAL","display_name":"Critical"}
		],
		"status": [
			{"value":"OPEN","display_name":"Open"},
			{"value":"INVESTIGATING","display_name":"Investigating"},
			{"value":"RESOLVED","display_name":"Resolved"}
		]
	}`, rec.Body.String())
}

func TestHandler_UpdateIncident(t *testing.T) {
	t.Run("patch status keeps reported_at", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil"}`)

		rec := env.do(t, http.MethodPatch, "/incidents/"+i.ID, `{"status":"RESOLVED","reported_at":"2000-01-01T00:00:00Z"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got domain.Incident
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.IncidentStatusResolved, got.Status)
		assert.True(t, i.ReportedAt.Equal(got.ReportedAt))
	})

	t.Run("put requires type and description", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil"}`)

		rec := env.do(t, http.MethodPut, "/incidents/"+i.ID, `{"status":"RESOLVED"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("put replaces fields", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil","severity":"HIGH"}`)

		rec := env.do(t, http.MethodPut, "/incidents/"+i.ID, `{"type":"Fire","description":"Smoke","status":"INVESTIGATING"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got domain.Incident
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Fire", got.Type)
		assert.Equal(t, domain.IncidentStatusInvestigating, got.Status)
		assert.Equal(t, domain.SeverityHigh, got.Severity)
	})

	t.Run("invalid status", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil"}`)

		rec := env.do(t, http.MethodPatch, "/incidents/"+i.ID, `{"status":"DONE"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		env := newHandlerEnv()
		rec := env.do(t, http.MethodPatch, "/incidents/"+domain.NewID(), `{"status":"RESOLVED"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"incident not found"}}`, rec.Body.String())
	})

	t.Run("unknown id wins over invalid body", func(t *testing.T) {
		env := newHandlerEnv()
		longType := strings.Repeat("x", 101)

		rec := env.do(t, http.MethodPut, "/incidents/"+domain.NewID(), `{"type":"`+longType+`","description":"Oil"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.do(t, http.MethodPatch, "/incidents/"+domain.NewID(), `{not json`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty patch body returns the record", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil","severity":"HIGH"}`)

		rec := env.do(t, http.MethodPatch, "/incidents/"+i.ID, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got domain.Incident
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, i, got)
	})

	t.Run("empty put body is invalid", func(t *testing.T) {
		env := newHandlerEnv()
		i := env.create(t, `{"type":"Spill","description":"Oil"}`)

		rec := env.do(t, http.MethodPut, "/incidents/"+i.ID, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteIncident(t *testing.T) {
	env := newHandlerEnv()
	i := env.create(t, `{"type":"Spill","description":"Oil"}`)

	rec := env.do(t, http.MethodDelete, "/incidents/"+domain.NewID(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, env.repo.incidents, 1)

	rec = env.do(t, http.MethodDelete, "/incidents/"+i.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/incidents/"+i.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
