package scan

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"civitaid/internal/config"
	"civitaid/internal/events"
)

func TestScan_ReturnsFilesWithoutSidecar(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "A.safetensors")
	b := filepath.Join(root, "B.safetensors")
	writeFile(t, a, "a")
	writeFile(t, b, "b")
	writeFile(t, filepath.Join(root, "A.info.json"), "{}")

	s := New(testConfig(root), newFakeResolver())
	got, err := s.Scan(context.Background(), []string{root}, []string{".safetensors"})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if want := []string{b}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestScan_RecursiveCaseInsensitiveAndDeduplicated(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub", "C.CKPT")
	writeFile(t, nested, "c")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")
	writeFile(t, filepath.Join(root, "sub", "C.preview.png"), "x")

	s := New(testConfig(root), newFakeResolver())
	// same root twice and no explicit extensions
	got, err := s.Scan(context.Background(), []string{root, root, filepath.Join(root, "missing")}, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if want := []string{nested}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestScan_EmptyResultIsNotNil(t *testing.T) {
	s := New(testConfig(t.TempDir()), newFakeResolver())
	got, err := s.Scan(context.Background(), []string{t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestScan_PublishesProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.safetensors"), "a")
	writeFile(t, filepath.Join(root, "B.safetensors"), "b")
	mem := events.NewMemory()
	s := New(testConfig(root), newFakeResolver(), WithPublisher(mem))
	if _, err := s.Scan(context.Background(), []string{root}, nil); err != nil {
		t.Fatalf("scan: %v", err)
	}
	want := []string{events.BatchStart, events.ScanProgress, events.ScanProgress, events.BatchEnd}
	if got := mem.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events=%v", got)
	}
	if last := mem.Events()[2]; last.Done != 2 || last.Total != 2 {
		t.Fatalf("progress=%d/%d", last.Done, last.Total)
	}
}

func TestBatchGuard_RejectsConcurrentBatch(t *testing.T) {
	s := New(testConfig(t.TempDir()), newFakeResolver())
	release, err := s.begin("test")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := s.Scan(context.Background(), nil, nil); !IsBusy(err) {
		t.Fatalf("expected busy, got %v", err)
	}
	if _, err := s.CreateModelsInformation(context.Background(), nil, Options{}); !IsBusy(err) {
		t.Fatalf("expected busy, got %v", err)
	}
	if _, err := s.FixInformationFilenames(context.Background(), nil); !IsBusy(err) {
		t.Fatalf("expected busy, got %v", err)
	}
	release()
	if _, err := s.Scan(context.Background(), nil, nil); err != nil {
		t.Fatalf("after release: %v", err)
	}
}

func TestIsBusy(t *testing.T) {
	if IsBusy(errors.New("x")) || IsBusy(nil) {
		t.Fatalf("false positive")
	}
	if !IsBusy(ErrBusy("scan")) {
		t.Fatalf("false negative")
	}
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.safetensors"), "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(testConfig(root), newFakeResolver())
	if _, err := s.Scan(ctx, []string{root}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestConfigFrom(t *testing.T) {
	c := config.Default()
	c.RootDir = "/sd"
	got := ConfigFrom(c)
	if got.InfoName() != ".info.json" || got.PreviewSuffix != ".preview" || got.PreviewExt != ".png" {
		t.Fatalf("layout=%+v", got.Layout)
	}
	if f := got.FolderFor("LORA"); f != filepath.Join("/sd", "models", "Lora") {
		t.Fatalf("FolderFor(LORA)=%q", f)
	}
	if f := got.FolderFor("Unknown"); f != filepath.Join("/sd", "models", "Other") {
		t.Fatalf("FolderFor(Unknown)=%q", f)
	}
	if len(got.ModelExts) != 4 {
		t.Fatalf("exts=%v", got.ModelExts)
	}
}

func TestReconfigure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "A.safetensors"), "a")
	writeFile(t, filepath.Join(root, "A.meta.json"), "{}")
	s := New(testConfig(root), newFakeResolver())

	cfg := testConfig(root)
	cfg.InfoSuffix = ".meta"
	if err := s.Reconfigure(cfg); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	got, err := s.Scan(context.Background(), []string{root}, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("scan after reconfigure: %v %v", got, err)
	}

	release, _ := s.begin("test")
	defer release()
	if err := s.Reconfigure(cfg); !IsBusy(err) {
		t.Fatalf("expected busy, got %v", err)
	}
}
