package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isomer/pkg/errors"
	"github.com/matzehuels/isomer/pkg/observability"
	"github.com/matzehuels/isomer/pkg/pipeline"
	"github.com/matzehuels/isomer/pkg/report"
	"github.com/matzehuels/isomer/pkg/store"
)

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

func newTestServer(t *testing.T, withStore bool) *httptest.Server {
	t.Helper()
	r := pipeline.NewRunner(nil, nil, quietLogger())
	if withStore {
		r.Store = store.NewMemory()
	}
	ts := httptest.NewServer(New(r, quietLogger()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, v any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, false)
	var body struct {
		Status string `json:"status"`
		Build  struct {
			Version string `json:"version"`
		} `json:"build"`
	}
	if status := get(t, ts, "/healthz", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestListSolids(t *testing.T) {
	ts := newTestServer(t, false)
	var solids []solidSummary
	if status := get(t, ts, "/solids", &solids); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	byName := make(map[string]solidSummary)
	for _, s := range solids {
		byName[s.Name] = s
	}
	for name, vertices := range map[string]int{"cube": 6, "rbc": 18, "prbc": 18} {
		s, ok := byName[name]
		if !ok {
			t.Errorf("missing solid %s", name)
			continue
		}
		if s.Vertices != vertices {
			t.Errorf("%s vertices = %d, want %d", name, s.Vertices, vertices)
		}
	}
}

func TestGroup(t *testing.T) {
	ts := newTestServer(t, false)
	tests := []struct {
		path  string
		order int
	}{
		{"/solids/cube/group", 24},
		{"/solids/cube/group?closure=bfs", 24},
		{"/solids/prbc/group", 8},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var resp groupResponse
			if status := get(t, ts, tt.path, &resp); status != http.StatusOK {
				t.Fatalf("status = %d", status)
			}
			if resp.Order != tt.order || len(resp.Elements) != tt.order {
				t.Errorf("order = %d with %d elements, want %d", resp.Order, len(resp.Elements), tt.order)
			}
		})
	}
}

func TestOrbits(t *testing.T) {
	ts := newTestServer(t, true)
	var resp struct {
		Run        string       `json:"run"`
		GroupOrder int          `json:"group_order"`
		Level      report.Level `json:"level"`
	}
	if status := get(t, ts, "/solids/cube/orbits/3?check=true", &resp); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(resp.Level.Entries) != 2 || resp.Level.Burnside != 2 {
		t.Errorf("level = %+v, want 2 entries", resp.Level)
	}

	var run report.Run
	if status := get(t, ts, "/runs/"+resp.Run, &run); status != http.StatusOK {
		t.Fatalf("GET run status = %d", status)
	}
	if run.Solid != "cube" {
		t.Errorf("stored run solid = %q", run.Solid)
	}

	var runs []report.Run
	if status := get(t, ts, "/runs?solid=cube", &runs); status != http.StatusOK || len(runs) != 1 {
		t.Errorf("GET runs = %d with %d runs, want 1", status, len(runs))
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, false)
	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/solids/dodecahedron/group", http.StatusNotFound, errors.ErrCodeNotFound},
		{"/solids/cube/group?closure=dfs", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/solids/cube/orbits/x", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/solids/cube/orbits/9", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/runs", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body errorBody
			if status := get(t, ts, tt.path, &body); status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s", body.Code, tt.code)
			}
		})
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _ string, route string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func TestObserveUsesRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, false)
	get(t, ts, "/solids/cube/group", nil)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.routes) != 1 || hooks.routes[0] != "/solids/{name}/group" {
		t.Errorf("routes = %v, want [/solids/{name}/group]", hooks.routes)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(pipeline.NewRunner(nil, nil, quietLogger()), quietLogger())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
