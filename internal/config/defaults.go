package config

const (
	defaultAddr           = ":8090"
	defaultDataDir        = "~/.civitaid"
	defaultBaseURL        = "https://civitai.com"
	defaultTimeoutSeconds = 30
)

var defaultModelFolders = map[string]string{
	"Checkpoint":        "models/Stable-diffusion",
	"LORA":              "models/Lora",
	"LoCon":             "models/LyCORIS",
	"TextualInversion":  "embeddings",
	"Hypernetwork":      "models/hypernetworks",
	"AestheticGradient": "extensions/stable-diffusion-webui-aesthetic-gradients/aesthetic_embeddings",
	"Controlnet":        "models/ControlNet",
	"VAE":               "models/VAE",
	"Poses":             "models/Poses",
	"Wildcards":         "extensions/sd-dynamic-prompts/wildcards",
	"Other":             "models/Other",
}

var defaultModelExts = []string{".bin", ".pt", ".safetensors", ".ckpt"}

var defaultBaseModels = map[string]string{
	"SD 1.4":        "SD1",
	"SD 1.5":        "SD1",
	"SD 2.0":        "SD2",
	"SD 2.0 768":    "SD2",
	"SD 2.1":        "SD2",
	"SD 2.1 768":    "SD2",
	"SD 2.1 Unclip": "SD2",
	"SDXL 0.9":      "SDXL",
	"SDXL 1.0":      "SDXL",
	"SDXL 1.0 LCM":  "SDXL",
	"SDXL Turbo":    "SDXL",
	"Other":         "Unknown",
}

// Default returns a fully populated configuration.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unspecified field. User supplied map entries win;
// missing keys are taken from the defaults.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Civitai.BaseURL == "" {
		c.Civitai.BaseURL = defaultBaseURL
	}
	if c.Civitai.TimeoutSeconds <= 0 {
		c.Civitai.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.ModelFolders = mergeDefaults(c.ModelFolders, defaultModelFolders)
	c.BaseModels = mergeDefaults(c.BaseModels, defaultBaseModels)
	if len(c.ModelExts) == 0 {
		c.ModelExts = append([]string(nil), defaultModelExts...)
	}
	if c.InfoSuffix == "" {
		c.InfoSuffix = ".info"
	}
	if c.InfoExt == "" {
		c.InfoExt = ".json"
	}
	if c.PreviewSuffix == "" {
		c.PreviewSuffix = ".preview"
	}
	if c.PreviewExt == "" {
		c.PreviewExt = ".png"
	}
	if c.GalleryFolder == "" {
		c.GalleryFolder = "~/.civitaid/gallery"
	}
	if c.ShortcutColumn <= 0 {
		c.ShortcutColumn = 5
	}
	if c.GalleryColumn <= 0 {
		c.GalleryColumn = 7
	}
	if c.ClassificationGalleryColumn <= 0 {
		c.ClassificationGalleryColumn = 8
	}
	if c.UserGalleryImagesColumn <= 0 {
		c.UserGalleryImagesColumn = 6
	}
	if c.UserGalleryImagesPageLimit <= 0 {
		c.UserGalleryImagesPageLimit = 12
	}
	if c.ShortcutMaxDownloadImagePerVersion < 0 {
		c.ShortcutMaxDownloadImagePerVersion = 0
	}
}

func mergeDefaults(m, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(defaults)+len(m))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}
