package e2e

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"civitaid/internal/actions"
	"civitaid/internal/common/fsutil"
	"civitaid/internal/config"
	"civitaid/internal/httpapi"
)

func versionJSON(imageURL string) string {
	return fmt.Sprintf(`{
  "id": 100, "modelId": 42, "name": "v1", "baseModel": "SD 1.5",
  "trainedWords": ["foo", "bar"],
  "model": {"name": "My Model", "type": "LORA", "nsfw": false},
  "files": [{"id": 1, "name": "my_model_v1.safetensors", "primary": true}],
  "images": [{"url": %q, "width": 512}]
}`, imageURL)
}

const modelJSON = `{"id": 42, "name": "My Model", "type": "LORA",
  "modelVersions": [{"id": 100, "name": "v1", "images": [{"url": "http://img/1.png"}]}]}`

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// fakeCivitai serves one LoRA version whose hash is the hash of known.
func fakeCivitai(t *testing.T, knownHash string) *httptest.Server {
	t.Helper()
	img := pngBytes(t)
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	version := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(versionJSON(srv.URL + "/img/width=450/1.png")))
	}
	mux.HandleFunc("/api/v1/model-versions/by-hash/"+knownHash[:12], version)
	mux.HandleFunc("/api/v1/model-versions/100", version)
	mux.HandleFunc("/api/v1/models/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(modelJSON))
	})
	mux.HandleFunc("/img/width=512/1.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	})
	return srv
}

type env struct {
	root  string
	lora  string
	known string
	other string
	srv   *httptest.Server
	svc   *actions.Service
}

// newEnv lays out a webui root with one model Civitai knows and one it
// does not, and serves the API over a real listener.
func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{root: root, lora: filepath.Join(root, "models", "Lora")}
	e.known = writeFile(t, filepath.Join(e.lora, "known.safetensors"), "known weights")
	e.other = writeFile(t, filepath.Join(e.lora, "other.ckpt"), "other weights")
	hash, err := fsutil.SHA256File(e.known)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	civ := fakeCivitai(t, hash)

	cfg := config.Default()
	cfg.RootDir = root
	cfg.DataDir = filepath.Join(root, "data")
	cfg.GalleryFolder = filepath.Join(root, "gallery")
	cfg.Civitai.BaseURL = civ.URL
	e.svc, err = actions.New(filepath.Join(root, "civitaid.yaml"), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	e.srv = httptest.NewServer(httpapi.NewMux(e.svc))
	t.Cleanup(e.srv.Close)
	return e
}

func writeFile(t *testing.T, p, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func httpDo(t *testing.T, method, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}
