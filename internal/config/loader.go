package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"civitaid/internal/common/fsutil"
)

// Config holds runtime parameters for the service and the CLI.
// Zero values mean "unspecified" and are replaced by defaults on Load.
type Config struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	DataDir  string `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	RootDir  string `json:"root_dir" yaml:"root_dir" toml:"root_dir"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	Civitai CivitaiConfig `json:"civitai" yaml:"civitai" toml:"civitai"`

	// ModelFolders maps a Civitai model type to its download folder.
	// Relative folders are resolved against RootDir.
	ModelFolders map[string]string `json:"model_folders" yaml:"model_folders" toml:"model_folders"`
	ModelExts    []string          `json:"model_exts" yaml:"model_exts" toml:"model_exts"`

	InfoSuffix    string `json:"info_suffix" yaml:"info_suffix" toml:"info_suffix"`
	InfoExt       string `json:"info_ext" yaml:"info_ext" toml:"info_ext"`
	PreviewSuffix string `json:"preview_suffix" yaml:"preview_suffix" toml:"preview_suffix"`
	PreviewExt    string `json:"preview_ext" yaml:"preview_ext" toml:"preview_ext"`

	// BaseModels maps a Civitai base model tag to the "sd version" label of LoRA metadata.
	BaseModels map[string]string `json:"base_models" yaml:"base_models" toml:"base_models"`

	GalleryFolder string `json:"gallery_folder" yaml:"gallery_folder" toml:"gallery_folder"`

	ShortcutColumn               int `json:"shortcut_column" yaml:"shortcut_column" toml:"shortcut_column"`
	GalleryColumn                int `json:"gallery_column" yaml:"gallery_column" toml:"gallery_column"`
	ClassificationGalleryColumn  int `json:"classification_gallery_column" yaml:"classification_gallery_column" toml:"classification_gallery_column"`
	UserGalleryImagesColumn      int `json:"usergallery_images_column" yaml:"usergallery_images_column" toml:"usergallery_images_column"`
	UserGalleryImagesPageLimit   int `json:"usergallery_images_page_limit" yaml:"usergallery_images_page_limit" toml:"usergallery_images_page_limit"`
	// 0 means no cap.
	ShortcutMaxDownloadImagePerVersion int `json:"shortcut_max_download_image_per_version" yaml:"shortcut_max_download_image_per_version" toml:"shortcut_max_download_image_per_version"`

	CORS CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
}

// CivitaiConfig configures the REST client.
type CivitaiConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`
	APIKey  string `json:"api_key" yaml:"api_key" toml:"api_key"`
	// Proxy URL for all Civitai requests, e.g. http://127.0.0.1:8888.
	Proxy string `json:"proxy" yaml:"proxy" toml:"proxy"`
	// Certificate verification is off unless enabled here.
	VerifyTLS         bool    `json:"verify_tls" yaml:"verify_tls" toml:"verify_tls"`
	TimeoutSeconds    int     `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
}

// CORSConfig is opt-in; nothing is mounted unless Enabled.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Load reads a configuration file based on its extension and applies defaults.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// Save writes cfg to path, choosing the encoding from the extension.
func Save(path string, cfg Config) error {
	if path == "" {
		return fmt.Errorf("empty config path")
	}
	var (
		b   []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(cfg)
	case ".json":
		b, err = json.MarshalIndent(cfg, "", "  ")
	case ".toml":
		b, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

// Clone returns a copy of c that shares no maps or slices with it.
func (c Config) Clone() Config {
	c.ModelFolders = maps.Clone(c.ModelFolders)
	c.BaseModels = maps.Clone(c.BaseModels)
	c.ModelExts = slices.Clone(c.ModelExts)
	c.CORS.Origins = slices.Clone(c.CORS.Origins)
	c.CORS.Methods = slices.Clone(c.CORS.Methods)
	c.CORS.Headers = slices.Clone(c.CORS.Headers)
	return c
}

// FolderFor returns the resolved download folder of a model type,
// falling back to the "Other" folder.
func (c Config) FolderFor(modelType string) string {
	f, ok := c.ModelFolders[modelType]
	if !ok || f == "" {
		f = c.ModelFolders["Other"]
	}
	return c.resolve(f)
}

// ModelRoots returns the distinct resolved model folders, sorted.
func (c Config) ModelRoots() []string {
	seen := make(map[string]struct{}, len(c.ModelFolders))
	var roots []string
	for _, f := range c.ModelFolders {
		if f == "" {
			continue
		}
		p := c.resolve(f)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		roots = append(roots, p)
	}
	sort.Strings(roots)
	return roots
}

func (c Config) resolve(p string) string {
	if exp, err := fsutil.ExpandHome(p); err == nil {
		p = exp
	}
	if !filepath.IsAbs(p) && c.RootDir != "" {
		root := c.RootDir
		if exp, err := fsutil.ExpandHome(root); err == nil {
			root = exp
		}
		p = filepath.Join(root, p)
	}
	return filepath.Clean(p)
}
