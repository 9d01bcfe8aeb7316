package scan

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/pkg/types"
)

// fakeResolver answers hash lookups and image downloads from maps.
type fakeResolver struct {
	mu        sync.Mutex
	byHash    map[string]*types.VersionRecord
	images    map[string][]byte
	lookups   []string
	downloads []string
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{byHash: map[string]*types.VersionRecord{}, images: map[string][]byte{}}
}

func (f *fakeResolver) VersionByHash(_ context.Context, hash string) (*types.VersionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, hash)
	if v, ok := f.byHash[hash]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, &civitai.Error{Kind: civitai.KindNotFound, Endpoint: "hash", Ref: hash}
}

func (f *fakeResolver) DownloadImage(_ context.Context, url string, w io.Writer) (int64, error) {
	f.mu.Lock()
	f.downloads = append(f.downloads, url)
	b, ok := f.images[url]
	f.mu.Unlock()
	if !ok {
		return 0, errors.New("image not found")
	}
	n, err := w.Write(b)
	return int64(n), err
}

func (f *fakeResolver) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lookups)
}

type fakeShortcuts struct {
	mu    sync.Mutex
	added []int64
}

func (f *fakeShortcuts) Add(_ context.Context, id int64) error {
	f.mu.Lock()
	f.added = append(f.added, id)
	f.mu.Unlock()
	return nil
}

func testLayout() Layout {
	return Layout{InfoSuffix: ".info", InfoExt: ".json", PreviewSuffix: ".preview", PreviewExt: ".png"}
}

func testConfig(modelsRoot string) Config {
	return Config{
		Layout:    testLayout(),
		ModelExts: []string{".safetensors", ".ckpt"},
		FolderFor: func(t string) string {
			if t == "" {
				t = "Other"
			}
			return filepath.Join(modelsRoot, t)
		},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func hashOf(t *testing.T, path string) string {
	t.Helper()
	h, err := fsutil.SHA256File(path)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// loraVersion is a resolved LoRA version with one image and one trained word.
func loraVersion() *types.VersionRecord {
	return &types.VersionRecord{
		ID:           100,
		ModelID:      42,
		Name:         "v1",
		BaseModel:    "SD 1.5",
		TrainedWords: []string{"foo"},
		Model:        types.ModelSummary{Name: "My Model", Type: "LORA"},
		Files: []types.FileRecord{
			{ID: 1, Name: "my_model_v1.safetensors", Primary: true},
		},
		Images: []types.ImageRecord{
			{URL: "http://x/width=450/img.jpg", Width: 512},
		},
	}
}
