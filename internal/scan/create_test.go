package scan

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/internal/events"
)

func TestCreateModelsInformation_ResolvesFile(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = loraVersion()
	res.images["http://x/width=512/img.jpg"] = jpegBytes(t)
	mem := events.NewMemory()

	s := New(testConfig(root), res, WithPublisher(mem))
	unresolved, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(unresolved) != 0 {
		t.Fatalf("unresolved=%v", unresolved)
	}

	v, err := civitai.ReadVersionInfo(filepath.Join(root, "model.info.json"))
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if v.ID != 100 || v.ModelID != 42 {
		t.Fatalf("sidecar record=%+v", v)
	}
	if words, ok := civitai.TriggerWordsOfVersion(v); !ok || words != "foo" {
		t.Fatalf("trigger words=%q ok=%v", words, ok)
	}

	if want := []string{"http://x/width=512/img.jpg"}; !reflect.DeepEqual(res.downloads, want) {
		t.Fatalf("downloads=%v", res.downloads)
	}
	preview, err := os.ReadFile(filepath.Join(root, "model.preview.png"))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !bytes.HasPrefix(preview, []byte("\x89PNG")) {
		t.Fatalf("preview not re-encoded as png")
	}
	if !fsutil.IsFile(model) {
		t.Fatalf("model moved without organize")
	}
	want := []string{events.BatchStart, events.InfoResolved, events.BatchEnd}
	if got := mem.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events=%v", got)
	}
}

func TestCreateModelsInformation_UnknownHashIsUnresolved(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "unknown.safetensors")
	writeFile(t, model, "???")
	s := New(testConfig(root), newFakeResolver())

	unresolved, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{Organize: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !reflect.DeepEqual(unresolved, []string{model}) {
		t.Fatalf("unresolved=%v", unresolved)
	}
	if fsutil.PathExists(filepath.Join(root, "unknown.info.json")) {
		t.Fatalf("sidecar written for unknown file")
	}
	if !fsutil.IsFile(model) {
		t.Fatalf("unknown file moved")
	}
}

func TestCreateModelsInformation_SkipsFilesWithSidecar(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "done.safetensors")
	writeFile(t, model, "x")
	writeFile(t, filepath.Join(root, "done.info.json"), "{}")
	res := newFakeResolver()
	s := New(testConfig(root), res)

	unresolved, err := s.CreateModelsInformation(context.Background(), []string{model, filepath.Join(root, "gone.safetensors")}, Options{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(unresolved) != 0 {
		t.Fatalf("unresolved=%v", unresolved)
	}
	if res.lookupCount() != 0 {
		t.Fatalf("expected no lookups, got %d", res.lookupCount())
	}
}

func TestCreateModelsInformation_OrganizeIntoVersionFolder(t *testing.T) {
	root := t.TempDir()
	modelsRoot := filepath.Join(root, "models")
	model := filepath.Join(root, "incoming", "model.safetensors")
	writeFile(t, model, "weights")
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = loraVersion()
	res.images["http://x/width=512/img.jpg"] = jpegBytes(t)
	sc := &fakeShortcuts{}

	s := New(testConfig(modelsRoot), res, WithShortcuts(sc))
	unresolved, err := s.CreateModelsInformation(context.Background(), []string{model},
		Options{Organize: true, VersionFolder: true, RegisterShortcut: true})
	if err != nil || len(unresolved) != 0 {
		t.Fatalf("create: %v unresolved=%v", err, unresolved)
	}

	dir := filepath.Join(modelsRoot, "LORA", "My Model", "My Model-v1-100")
	for _, p := range []string{
		filepath.Join(dir, "model.safetensors"),
		filepath.Join(dir, "model.info.json"),
		filepath.Join(dir, "model.preview.png"),
	} {
		if !fsutil.IsFile(p) {
			t.Fatalf("missing %s", p)
		}
	}
	if fsutil.PathExists(model) {
		t.Fatalf("source still present")
	}
	if !reflect.DeepEqual(sc.added, []int64{42}) {
		t.Fatalf("shortcuts=%v", sc.added)
	}
}

func TestCreateModelsInformation_OrganizeWithoutVersionFolder(t *testing.T) {
	root := t.TempDir()
	modelsRoot := filepath.Join(root, "models")
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	v := loraVersion()
	v.Model.Name = "a/b:c"
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = v

	s := New(testConfig(modelsRoot), res)
	if _, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{Organize: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !fsutil.IsFile(filepath.Join(modelsRoot, "LORA", "a_b_c", "model.safetensors")) {
		t.Fatalf("model not moved into sanitized model folder")
	}
}

func TestCreateModelsInformation_MoveCollisionIsResumable(t *testing.T) {
	root := t.TempDir()
	modelsRoot := filepath.Join(root, "models")
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	blocker := filepath.Join(modelsRoot, "LORA", "My Model", "model.safetensors")
	writeFile(t, blocker, "other")
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = loraVersion()

	s := New(testConfig(modelsRoot), res)
	unresolved, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{Organize: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !reflect.DeepEqual(unresolved, []string{model}) {
		t.Fatalf("unresolved=%v", unresolved)
	}
	if b, _ := os.ReadFile(blocker); string(b) != "other" {
		t.Fatalf("destination overwritten")
	}

	// once the blocker is gone a rerun completes the move
	if err := os.Remove(blocker); err != nil {
		t.Fatalf("remove: %v", err)
	}
	unresolved, err = s.CreateModelsInformation(context.Background(), []string{model}, Options{Organize: true})
	if err != nil || len(unresolved) != 0 {
		t.Fatalf("rerun: %v unresolved=%v", err, unresolved)
	}
	if b, _ := os.ReadFile(blocker); string(b) != "weights" {
		t.Fatalf("model not moved on rerun")
	}
}

func TestCreateModelsInformation_PreviewIsBestEffort(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = loraVersion()
	// no image registered: download fails

	s := New(testConfig(root), res)
	unresolved, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{})
	if err != nil || len(unresolved) != 0 {
		t.Fatalf("create: %v unresolved=%v", err, unresolved)
	}
	if !fsutil.IsFile(filepath.Join(root, "model.info.json")) {
		t.Fatalf("sidecar missing")
	}
	if fsutil.PathExists(filepath.Join(root, "model.preview.png")) {
		t.Fatalf("preview written despite failed download")
	}
}

func TestCreateModelsInformation_UndecodablePreviewKeptRaw(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = loraVersion()
	res.images["http://x/width=512/img.jpg"] = []byte("RIFF....WEBP")

	s := New(testConfig(root), res)
	if _, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(root, "model.preview.png"))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if string(b) != "RIFF....WEBP" {
		t.Fatalf("preview=%q", b)
	}
}

func TestCreateModelsInformation_NoImagesNoPreview(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	v := loraVersion()
	v.Images = nil
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = v

	s := New(testConfig(root), res)
	if _, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(res.downloads) != 0 {
		t.Fatalf("downloads=%v", res.downloads)
	}
}

func TestCreateModelsInformation_ShortcutOnlyWhenRequested(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	res := newFakeResolver()
	res.byHash[hashOf(t, model)] = loraVersion()
	sc := &fakeShortcuts{}

	s := New(testConfig(root), res, WithShortcuts(sc))
	if _, err := s.CreateModelsInformation(context.Background(), []string{model}, Options{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sc.added) != 0 {
		t.Fatalf("shortcut registered without request: %v", sc.added)
	}
}

func TestCreateModelsInformation_Cancelled(t *testing.T) {
	root := t.TempDir()
	model := filepath.Join(root, "model.safetensors")
	writeFile(t, model, "weights")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := newFakeResolver()
	s := New(testConfig(root), res)
	if _, err := s.CreateModelsInformation(ctx, []string{model}, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if res.lookupCount() != 0 {
		t.Fatalf("lookups after cancel")
	}
}
