package civitai

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"civitaid/pkg/types"
)

func TestWriteVersionInfo_RoundTrip(t *testing.T) {
	v := decodeVersion(t, versionBody)
	p := filepath.Join(t.TempDir(), "m.info.json")
	if err := WriteVersionInfo(p, v); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadVersionInfo(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	a, b := *v, *got
	a.Raw, b.Raw = nil, nil
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", a, b)
	}

	// fields without a Go counterpart are written verbatim
	raw, _ := os.ReadFile(p)
	if !bytes.Contains(raw, []byte(`"downloadCount": 7`)) {
		t.Fatalf("unknown field lost:\n%s", raw)
	}
	if !bytes.Contains(raw, []byte("\n    \"id\"")) {
		t.Fatalf("expected 4-space indentation:\n%s", raw)
	}
}

func TestWriteVersionInfo_NilRecord(t *testing.T) {
	if err := WriteVersionInfo(filepath.Join(t.TempDir(), "x.json"), nil); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
	if err := WriteModelInfo(filepath.Join(t.TempDir(), "x.json"), nil); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}
}

func TestWriteModelInfo(t *testing.T) {
	var m types.ModelRecord
	if err := json.Unmarshal([]byte(modelBody), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := filepath.Join(t.TempDir(), "model.json")
	if err := WriteModelInfo(p, &m); err != nil {
		t.Fatalf("write: %v", err)
	}
	var back types.ModelRecord
	b, _ := os.ReadFile(p)
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode back: %v", err)
	}
	if back.ID != 42 || len(back.ModelVersions) != 3 {
		t.Fatalf("unexpected: %+v", back)
	}
}

func TestWriteTriggerWords(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "m.txt")
	if err := WriteTriggerWords(p, &types.VersionRecord{TrainedWords: []string{"a", "b"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "a, b" {
		t.Fatalf("content=%q", b)
	}
	empty := filepath.Join(dir, "none.txt")
	if err := WriteTriggerWords(empty, &types.VersionRecord{}); !errors.Is(err, ErrNoTriggerWords) {
		t.Fatalf("expected ErrNoTriggerWords, got %v", err)
	}
	if _, err := os.Stat(empty); !os.IsNotExist(err) {
		t.Fatalf("no file should be written")
	}
}

func TestWriteLoraMetadata_RefusesSecondWrite(t *testing.T) {
	c := newTestClient(t, "https://civitai.com")
	v := decodeVersion(t, versionBody)
	p := filepath.Join(t.TempDir(), "foo.json")

	if err := c.WriteLoraMetadata(p, v); err != nil {
		t.Fatalf("first write: %v", err)
	}
	first, _ := os.ReadFile(p)

	changed := *v
	changed.Description = "something else"
	if err := c.WriteLoraMetadata(p, &changed); !errors.Is(err, ErrSidecarExists) {
		t.Fatalf("expected ErrSidecarExists, got %v", err)
	}
	second, _ := os.ReadFile(p)
	if !bytes.Equal(first, second) {
		t.Fatalf("file changed on refused write")
	}
}

func TestLoraMetadataOf(t *testing.T) {
	c := newTestClient(t, "https://civitai.com")
	md := c.LoraMetadataOf(decodeVersion(t, versionBody))
	if md.Description == nil || *md.Description != "<p>desc</p>" {
		t.Fatalf("description=%v", md.Description)
	}
	if md.SDVersion == nil || *md.SDVersion != "SD1" {
		t.Fatalf("sd version=%v", md.SDVersion)
	}
	if md.ActivationText == nil || *md.ActivationText != "foo, bar" {
		t.Fatalf("activation=%v", md.ActivationText)
	}
	if md.PreferredWeight != 0 {
		t.Fatalf("weight=%v", md.PreferredWeight)
	}
	wantNotes := "https://civitai.com/models/42, https://civitai.com/api/download/models/100"
	if md.Notes == nil || *md.Notes != wantNotes {
		t.Fatalf("notes=%v", md.Notes)
	}

	unknown := c.LoraMetadataOf(&types.VersionRecord{BaseModel: "Flux.1 D"})
	if unknown.SDVersion == nil || *unknown.SDVersion != "Unknown" {
		t.Fatalf("expected Unknown label, got %v", unknown.SDVersion)
	}
	if unknown.Notes != nil || unknown.ActivationText != nil || unknown.Description != nil {
		t.Fatalf("expected null fields, got %+v", unknown)
	}
}

func TestWriteLoraMetadata_FieldNames(t *testing.T) {
	c := newTestClient(t, "https://civitai.com")
	p := filepath.Join(t.TempDir(), "foo.json")
	if err := c.WriteLoraMetadata(p, &types.VersionRecord{ID: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := os.ReadFile(p)
	for _, k := range []string{`"description": null`, `"sd version": null`, `"activation text": null`, `"preferred weight": 0`, `"notes": null`} {
		if !strings.Contains(string(b), k) {
			t.Fatalf("missing %s in\n%s", k, b)
		}
	}
}
