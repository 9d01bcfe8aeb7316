package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: version not found
	Error string `json:"error" example:"version not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// ScanResponse lists local model files that have no info sidecar yet.
type ScanResponse struct {
	Files []string `json:"files"`
}

// CreateInfoRequest is the payload of POST /api/models-info.
type CreateInfoRequest struct {
	// Local model files to resolve.
	Files []string `json:"files"`
	// Move resolved files into the folder of their model type.
	// example: true
	Organize bool `json:"organize" example:"true"`
	// With Organize, add a per-version sub folder.
	// example: true
	VersionFolder bool `json:"version_folder" example:"true"`
	// Register a shortcut for every resolved model.
	// example: true
	RegisterShortcut bool `json:"register_shortcut" example:"true"`
}

// CreateInfoResponse lists the files Civitai does not know about.
type CreateInfoResponse struct {
	Unregistered []string `json:"unregistered"`
}

// FixFilenamesResponse reports how many sidecars were renamed.
type FixFilenamesResponse struct {
	// example: 3
	Renamed int `json:"renamed" example:"3"`
}

// TriggerResponse carries the activation text of a version.
type TriggerResponse struct {
	// example: foo, bar
	TriggerWords string `json:"trigger_words" example:"foo, bar"`
}

// VersionIDResponse is returned by the version-by-name lookup.
type VersionIDResponse struct {
	// example: 130072
	VersionID int64 `json:"version_id" example:"130072"`
}

// ImagesResponse wraps an images search result.
type ImagesResponse struct {
	Images []ImageRecord `json:"images"`
}

// Shortcut is a registered model.
type Shortcut struct {
	ModelID    int64   `json:"model_id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Nsfw       bool    `json:"nsfw"`
	VersionIDs []int64 `json:"version_ids"`
	// URL of the default version's first image.
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	UpdatedAtUnix int64  `json:"updated_at_unix"`
}

// ShortcutsResponse wraps the registered shortcuts.
type ShortcutsResponse struct {
	Shortcuts []Shortcut `json:"shortcuts"`
}

// ShortcutBatchResponse reports the outcome of a bulk shortcut operation.
type ShortcutBatchResponse struct {
	// example: 12
	Processed int `json:"processed" example:"12"`
	// example: 1
	Failed int `json:"failed" example:"1"`
}

// Event is a progress notification of a batch operation, streamed on /events.
type Event struct {
	// example: info.resolved
	Name string `json:"name" example:"info.resolved"`
	// Batch id shared by all events of one operation.
	Batch string `json:"batch"`
	// File path or model id the event is about.
	Item   string         `json:"item,omitempty"`
	Done   int            `json:"done"`
	Total  int            `json:"total"`
	Fields map[string]any `json:"fields,omitempty"`
	// example: 1700000000
	TimeUnix int64 `json:"time_unix" example:"1700000000"`
}
