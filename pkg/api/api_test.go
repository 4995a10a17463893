package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/strategos/pkg/config"
	"github.com/matzehuels/strategos/pkg/errors"
	"github.com/matzehuels/strategos/pkg/render"
	"github.com/matzehuels/strategos/pkg/shape"
	"github.com/matzehuels/strategos/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	reg := shape.NewBuiltin()
	st := store.New(
		store.WithLogger(logger),
		store.WithCompositor(render.New(render.WithRegistry(reg), render.WithLogger(logger))),
	)
	srv := httptest.NewServer(New(st, WithRegistry(reg), WithLogger(logger)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const flowJSON = `{
	"id": "flow",
	"name": "Flow",
	"nodes": {"A": {}, "B": {"template_name": "rectangle"}, "C": {}},
	"edges": {"ab": {"source": "A", "target": "B"}}
}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	health := decodeBody[HealthResponse](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, health.Timestamp)
	assert.Equal(t, 0, health.Diagrams)
}

func TestInfoAndTemplates(t *testing.T) {
	srv := newTestServer(t)

	info := decodeBody[InfoResponse](t, do(t, http.MethodGet, srv.URL+"/", ""))
	assert.Equal(t, "strategos", info.Name)
	assert.Equal(t, []string{"svg", "json"}, info.Formats)

	tpl := decodeBody[map[string][]string](t, do(t, http.MethodGet, srv.URL+"/templates", ""))
	assert.Contains(t, tpl["templates"], "circle")
	assert.Contains(t, tpl["templates"], "line")
}

func TestDiagramLifecycle(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/diagrams"

	t.Run("create", func(t *testing.T) {
		resp := do(t, http.MethodPost, base, flowJSON)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/diagrams/flow", resp.Header.Get("Location"))

		snap := decodeBody[store.Snapshot](t, resp)
		assert.Equal(t, "flow", snap.ID)
		assert.Equal(t, 3, snap.NodeCount)
		assert.Equal(t, 1, snap.EdgeCount)
		assert.Len(t, snap.Diagram, 4)
	})

	t.Run("create conflict", func(t *testing.T) {
		resp := do(t, http.MethodPost, base, flowJSON)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("get", func(t *testing.T) {
		resp := do(t, http.MethodGet, base+"/flow", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		snap := decodeBody[store.Snapshot](t, resp)
		assert.Equal(t, "Flow", snap.Name)
	})

	t.Run("list", func(t *testing.T) {
		list := decodeBody[[]store.Snapshot](t, do(t, http.MethodGet, base, ""))
		require.Len(t, list, 1)
		assert.Equal(t, "flow", list[0].ID)
	})

	t.Run("render svg", func(t *testing.T) {
		resp := do(t, http.MethodGet, base+"/flow/render", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "<title>Flow</title>")
		assert.Contains(t, string(body), "<rect")
	})

	t.Run("render json", func(t *testing.T) {
		resp := do(t, http.MethodGet, base+"/flow/render?format=json", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		snap := decodeBody[store.Snapshot](t, resp)
		assert.Equal(t, "flow", snap.ID)
	})

	t.Run("render unsupported", func(t *testing.T) {
		resp := do(t, http.MethodGet, base+"/flow/render?format=pdf", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		e := decodeBody[errorResponse](t, resp)
		assert.Equal(t, errors.ErrCodeUnsupported, e.Code)
	})

	t.Run("add dangling edge", func(t *testing.T) {
		resp := do(t, http.MethodPost, base+"/flow/edges", `{"name": "cz", "source": "C", "target": "Z"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		snap := decodeBody[store.Snapshot](t, resp)
		assert.NotEmpty(t, snap.RenderError)

		rendered := do(t, http.MethodGet, base+"/flow/render", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rendered.StatusCode)
		e := decodeBody[errorResponse](t, rendered)
		assert.Equal(t, errors.ErrCodeIntegrity, e.Code)
	})

	t.Run("add missing node", func(t *testing.T) {
		resp := do(t, http.MethodPost, base+"/flow/nodes", `{"name": "Z", "template_name": "hexagon"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		snap := decodeBody[store.Snapshot](t, resp)
		assert.Empty(t, snap.RenderError)
		assert.Equal(t, 4, snap.NodeCount)
	})

	t.Run("update replaces", func(t *testing.T) {
		resp := do(t, http.MethodPut, base+"/flow", `{"name": "Solo", "nodes": {"only": {}}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		snap := decodeBody[store.Snapshot](t, resp)
		assert.Equal(t, "flow", snap.ID)
		assert.Equal(t, 1, snap.NodeCount)
		assert.Equal(t, 0, snap.EdgeCount)
	})

	t.Run("delete", func(t *testing.T) {
		resp := do(t, http.MethodDelete, base+"/flow", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, DeleteResponse{ID: "flow", Removed: true}, decodeBody[DeleteResponse](t, resp))

		assert.Equal(t, http.StatusNotFound, do(t, http.MethodGet, base+"/flow", "").StatusCode)
		assert.Equal(t, http.StatusNotFound, do(t, http.MethodDelete, base+"/flow", "").StatusCode)
	})
}

func TestNotFoundRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/diagrams/nope", ""},
		{http.MethodPut, "/diagrams/nope", `{"name": "x"}`},
		{http.MethodGet, "/diagrams/nope/render", ""},
		{http.MethodPost, "/diagrams/nope/nodes", `{"name": "A"}`},
		{http.MethodPost, "/diagrams/nope/edges", `{"name": "e", "source": "A", "target": "B"}`},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			e := decodeBody[errorResponse](t, resp)
			assert.Equal(t, errors.ErrCodeNotFound, e.Code)
		})
	}
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/diagrams", `{"nodes": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidFormat, decodeBody[errorResponse](t, resp).Code)

	resp = do(t, http.MethodPost, srv.URL+"/diagrams", `{"nodes": {"A": {"name": "B"}}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	do(t, http.MethodPost, srv.URL+"/diagrams", `{"id": "d"}`)
	resp = do(t, http.MethodPost, srv.URL+"/diagrams/d/edges", `{"name": "e", "source": "A"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeConflict, http.StatusConflict},
		{errors.ErrCodeIntegrity, http.StatusUnprocessableEntity},
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidName, http.StatusBadRequest},
		{errors.ErrCodeUnsupported, http.StatusBadRequest},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.code))
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := cors(config.Default().CORS)(next)

	t.Run("handles preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/diagrams", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("omits headers for other origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/diagrams", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		wild := cors(config.CORSConfig{Origins: []string{"*"}, Methods: []string{"GET"}})(next)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "https://any.example")
		rec := httptest.NewRecorder()

		wild.ServeHTTP(rec, req)

		assert.Equal(t, "https://any.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight through the router", func(t *testing.T) {
		srv := newTestServer(t)
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/diagrams/x/nodes", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://127.0.0.1:8000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}
