package types

import (
	"encoding/json"
	"strconv"
)

// ModelRecord is a Civitai model as returned by /api/v1/models/{id}.
type ModelRecord struct {
	// Civitai model id.
	// example: 4201
	ID int64 `json:"id" example:"4201"`
	// Model name.
	// example: Realistic Vision
	Name string `json:"name" example:"Realistic Vision"`
	// Model type (Checkpoint, LORA, TextualInversion, ...).
	// example: Checkpoint
	Type        string `json:"type" example:"Checkpoint"`
	Description string `json:"description,omitempty"`
	Nsfw        bool   `json:"nsfw"`
	Creator     struct {
		Username string `json:"username"`
	} `json:"creator"`
	// Versions ordered newest first; the first entry is the default version.
	ModelVersions []VersionRecord `json:"modelVersions"`

	// Raw holds the body the record was decoded from. When set it is what
	// gets marshaled, so fields without a Go counterpart survive a rewrite.
	Raw json.RawMessage `json:"-"`
}

// VersionRecord is a Civitai model version as returned by /api/v1/model-versions/{id}.
type VersionRecord struct {
	// example: 130072
	ID int64 `json:"id" example:"130072"`
	// Parent model id.
	// example: 4201
	ModelID int64 `json:"modelId" example:"4201"`
	// example: v5.1
	Name string `json:"name" example:"v5.1"`
	// example: SD 1.5
	BaseModel    string        `json:"baseModel,omitempty" example:"SD 1.5"`
	Description  string        `json:"description,omitempty"`
	TrainedWords []string      `json:"trainedWords,omitempty"`
	DownloadURL  string        `json:"downloadUrl,omitempty"`
	Model        ModelSummary  `json:"model"`
	Files        []FileRecord  `json:"files"`
	Images       []ImageRecord `json:"images"`

	Raw json.RawMessage `json:"-"`
}

// ModelSummary is the slice of the parent model embedded in a version.
type ModelSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Nsfw bool   `json:"nsfw"`
	Poi  bool   `json:"poi,omitempty"`
}

// FileRecord is one downloadable file of a version.
type FileRecord struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type,omitempty"`
	SizeKB      float64           `json:"sizeKB,omitempty"`
	Primary     bool              `json:"primary,omitempty"`
	DownloadURL string            `json:"downloadUrl,omitempty"`
	Hashes      map[string]string `json:"hashes,omitempty"`
	Metadata    FileMetadata      `json:"metadata"`
}

type FileMetadata struct {
	Format string `json:"format,omitempty"`
	Size   string `json:"size,omitempty"`
	FP     string `json:"fp,omitempty"`
}

// ImageRecord is a preview or gallery image.
type ImageRecord struct {
	ID       int64  `json:"id,omitempty"`
	URL      string `json:"url"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Hash     string `json:"hash,omitempty"`
	PostID   int64  `json:"postId,omitempty"`
	Username string `json:"username,omitempty"`
	// Level as reported by Civitai; older responses use labels, newer ones numbers.
	NSFWLevel NSFWLevel `json:"nsfwLevel,omitempty"`
	// NSFW is the annotated level; "None" when Civitai did not report one.
	NSFW string          `json:"nsfw,omitempty"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// UnmarshalJSON keeps a string "nsfw" label and drops the boolean flag
// Civitai sends on image items.
func (r *ImageRecord) UnmarshalJSON(b []byte) error {
	type plain ImageRecord
	aux := struct {
		*plain
		NSFW json.RawMessage `json:"nsfw"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	var label string
	if len(aux.NSFW) > 0 && json.Unmarshal(aux.NSFW, &label) == nil {
		r.NSFW = label
	}
	return nil
}

// NSFWLevel accepts both the string and numeric encodings used by Civitai.
type NSFWLevel string

func (l *NSFWLevel) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = NSFWLevel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return err
	}
	*l = NSFWLevel(n.String())
	return nil
}

// LoraMetadata is the descriptor read by the web UI's LoRA tab.
// Unset pointer fields are written as null.
type LoraMetadata struct {
	Description     *string `json:"description"`
	SDVersion       *string `json:"sd version"`
	ActivationText  *string `json:"activation text"`
	PreferredWeight float64 `json:"preferred weight"`
	Notes           *string `json:"notes"`
}

type modelRecordAlias ModelRecord

func (m *ModelRecord) UnmarshalJSON(b []byte) error {
	var a modelRecordAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	a.Raw = append(json.RawMessage(nil), b...)
	*m = ModelRecord(a)
	return nil
}

func (m ModelRecord) MarshalJSON() ([]byte, error) {
	if len(m.Raw) > 0 {
		return m.Raw, nil
	}
	return json.Marshal(modelRecordAlias(m))
}

type versionRecordAlias VersionRecord

func (v *VersionRecord) UnmarshalJSON(b []byte) error {
	var a versionRecordAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	a.Raw = append(json.RawMessage(nil), b...)
	*v = VersionRecord(a)
	return nil
}

func (v VersionRecord) MarshalJSON() ([]byte, error) {
	if len(v.Raw) > 0 {
		return v.Raw, nil
	}
	return json.Marshal(versionRecordAlias(v))
}
