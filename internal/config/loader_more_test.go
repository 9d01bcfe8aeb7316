package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "addr: :8080\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "addr": ":8080", "root_dir": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "addr=:8080\nroot_dir\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "cfg.ini"), Default()); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestFolderFor_FallsBackToOther(t *testing.T) {
	cfg := Default()
	cfg.RootDir = "/webui"
	if got := cfg.FolderFor("LORA"); got != filepath.Join("/webui", "models/Lora") {
		t.Fatalf("LORA folder=%q", got)
	}
	if got := cfg.FolderFor("SomethingNew"); got != filepath.Join("/webui", "models/Other") {
		t.Fatalf("fallback folder=%q", got)
	}
	cfg.ModelFolders["VAE"] = "/abs/vae"
	if got := cfg.FolderFor("VAE"); got != "/abs/vae" {
		t.Fatalf("absolute folder=%q", got)
	}
}

func TestModelRoots_Distinct(t *testing.T) {
	cfg := Config{RootDir: "/r", ModelFolders: map[string]string{"A": "x", "B": "x", "C": "/y", "D": ""}}
	roots := cfg.ModelRoots()
	if len(roots) != 2 || roots[0] != filepath.Join("/r", "x") || roots[1] != "/y" {
		t.Fatalf("roots=%v", roots)
	}
}

func TestClone_SharesNothing(t *testing.T) {
	cfg := Default()
	cfg.CORS.Origins = []string{"http://a"}
	cp := cfg.Clone()
	cp.ModelFolders["LORA"] = "/elsewhere"
	cp.BaseModels["SD 1.5"] = "x"
	cp.ModelExts[0] = ".xyz"
	cp.CORS.Origins[0] = "http://b"
	if cfg.ModelFolders["LORA"] != "models/Lora" {
		t.Fatalf("ModelFolders shared: %q", cfg.ModelFolders["LORA"])
	}
	if cfg.BaseModels["SD 1.5"] == "x" || cfg.ModelExts[0] == ".xyz" || cfg.CORS.Origins[0] != "http://a" {
		t.Fatalf("clone shares state with original: %+v", cfg)
	}
}
