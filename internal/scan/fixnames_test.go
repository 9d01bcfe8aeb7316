package scan

import (
	"context"
	"path/filepath"
	"testing"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/pkg/types"
)

func writeSidecar(t *testing.T, path string, v *types.VersionRecord) {
	t.Helper()
	if err := civitai.WriteVersionInfo(path, v); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
}

func TestCanonicalBaseName(t *testing.T) {
	v := loraVersion()
	if got := CanonicalBaseName(v); got != "my_model_v1" {
		t.Fatalf("with primary=%q", got)
	}
	v.Files[0].Primary = false
	if got := CanonicalBaseName(v); got != "My Model-v1-100" {
		t.Fatalf("without primary=%q", got)
	}
	v.Model.Name = ""
	v.Name = "a/b"
	if got := CanonicalBaseName(v); got != "model-42-a_b-100" {
		t.Fatalf("generated=%q", got)
	}
}

func TestFixInformationFilenames(t *testing.T) {
	root := t.TempDir()

	writeSidecar(t, filepath.Join(root, "old.info.json"), loraVersion())

	noPrimary := loraVersion()
	noPrimary.ID = 101
	noPrimary.Files[0].Primary = false
	writeSidecar(t, filepath.Join(root, "sub", "x.info.json"), noPrimary)

	// already canonical
	writeSidecar(t, filepath.Join(root, "other", "my_model_v1.info.json"), loraVersion())
	// collision: target exists in the same folder
	writeSidecar(t, filepath.Join(root, "other", "dup.info.json"), loraVersion())
	// a model record is not a version record
	if err := civitai.WriteModelInfo(filepath.Join(root, "model.info.json"), &types.ModelRecord{ID: 42, Name: "M"}); err != nil {
		t.Fatalf("write model info: %v", err)
	}
	writeFile(t, filepath.Join(root, "broken.info.json"), "{not json")

	s := New(testConfig(root), newFakeResolver())
	n, err := s.FixInformationFilenames(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if n != 2 {
		t.Fatalf("renamed=%d", n)
	}
	for _, p := range []string{
		filepath.Join(root, "my_model_v1.info.json"),
		filepath.Join(root, "sub", "My Model-v1-101.info.json"),
		filepath.Join(root, "other", "dup.info.json"),
		filepath.Join(root, "model.info.json"),
		filepath.Join(root, "broken.info.json"),
	} {
		if !fsutil.IsFile(p) {
			t.Fatalf("missing %s", p)
		}
	}
	if fsutil.PathExists(filepath.Join(root, "old.info.json")) {
		t.Fatalf("old sidecar still present")
	}

	// second pass has nothing left to do
	n, err = s.FixInformationFilenames(context.Background(), []string{root})
	if err != nil || n != 0 {
		t.Fatalf("second pass: n=%d err=%v", n, err)
	}
}
