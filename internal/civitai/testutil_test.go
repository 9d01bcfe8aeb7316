package civitai

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeCivitai serves canned bodies by path and records every request.
type fakeCivitai struct {
	mu       sync.Mutex
	routes   map[string]fakeRoute
	requests []*http.Request
}

type fakeRoute struct {
	status int
	body   string
	delay  time.Duration
}

func newFakeCivitai(t *testing.T) (*fakeCivitai, *httptest.Server) {
	t.Helper()
	f := &fakeCivitai{routes: map[string]fakeRoute{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Clone(r.Context()))
		rt, ok := f.routes[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		if rt.delay > 0 {
			time.Sleep(rt.delay)
		}
		status := rt.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(rt.body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeCivitai) handle(path string, status int, body string) {
	f.mu.Lock()
	f.routes[path] = fakeRoute{status: status, body: body}
	f.mu.Unlock()
}

func (f *fakeCivitai) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.URL.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeCivitai) last() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, baseURL string, mutate ...func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		BaseModels: map[string]string{"SD 1.5": "SD1", "SDXL 1.0": "SDXL"},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

const versionBody = `{
  "id": 100,
  "modelId": 42,
  "name": "v2",
  "baseModel": "SD 1.5",
  "description": "<p>desc</p>",
  "trainedWords": ["foo", "bar"],
  "downloadUrl": "https://civitai.com/api/download/models/100",
  "stats": {"downloadCount": 7},
  "model": {"name": "Foo Model", "type": "LORA", "nsfw": false},
  "files": [
    {"id": 1, "name": "foo_v2.pt", "primary": false},
    {"id": 2, "name": "foo_v2.safetensors", "primary": true},
    {"id": 3, "name": "foo_v2_alt.safetensors", "primary": true}
  ],
  "images": [
    {"url": "https://image.civitai.com/x/abc/width=450/1.jpeg", "width": 512, "nsfwLevel": 1}
  ]
}`

const modelBody = `{
  "id": 42,
  "name": "Foo Model",
  "type": "LORA",
  "modelVersions": [
    {"id": 100, "name": "v2"},
    {"id": 99, "name": "v1"},
    {"id": 98, "name": "v1"}
  ]
}`

func nopLogger() zerolog.Logger { return zerolog.Nop() }
