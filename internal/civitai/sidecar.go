package civitai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"civitaid/pkg/types"
)

const sidecarIndent = "    "

// WriteModelInfo writes m as indented JSON, replacing path.
func WriteModelInfo(path string, m *types.ModelRecord) error {
	if m == nil {
		return ErrNoRecord
	}
	return writeJSON(path, m)
}

// WriteVersionInfo writes v as indented JSON, replacing path. Fields Civitai
// sent that have no Go counterpart are kept.
func WriteVersionInfo(path string, v *types.VersionRecord) error {
	if v == nil {
		return ErrNoRecord
	}
	return writeJSON(path, v)
}

// ReadVersionInfo loads a version sidecar.
func ReadVersionInfo(path string) (*types.VersionRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v types.VersionRecord
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &v, nil
}

// WriteTriggerWords writes the joined trained words of v as plain text.
func WriteTriggerWords(path string, v *types.VersionRecord) error {
	if v == nil {
		return ErrNoRecord
	}
	words, ok := TriggerWordsOfVersion(v)
	if !ok {
		return ErrNoTriggerWords
	}
	if err := os.WriteFile(path, []byte(words), 0o644); err != nil {
		return fmt.Errorf("write trigger words: %w", err)
	}
	return nil
}

// WriteTriggerWordsByVersionID fetches a version and writes its trigger words.
func (c *Client) WriteTriggerWordsByVersionID(ctx context.Context, path string, versionID int64) error {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return err
	}
	return WriteTriggerWords(path, v)
}

// LoraMetadataOf derives the LoRA descriptor of v.
func (c *Client) LoraMetadataOf(v *types.VersionRecord) types.LoraMetadata {
	var md types.LoraMetadata
	if v == nil {
		return md
	}
	if v.Description != "" {
		d := v.Description
		md.Description = &d
	}
	if v.BaseModel != "" {
		label, ok := c.cfg.BaseModels[v.BaseModel]
		if !ok {
			label = "Unknown"
		}
		md.SDVersion = &label
	}
	if v.TrainedWords != nil {
		words := strings.Join(v.TrainedWords, ", ")
		md.ActivationText = &words
	}
	var notes []string
	if v.ModelID != 0 {
		notes = append(notes, c.ModelPageURL(v.ModelID))
	}
	if v.DownloadURL != "" {
		notes = append(notes, v.DownloadURL)
	}
	if len(notes) > 0 {
		n := strings.Join(notes, ", ")
		md.Notes = &n
	}
	return md
}

// WriteLoraMetadata writes the LoRA descriptor of v to path. An existing file
// is never replaced: the call fails with ErrSidecarExists instead.
func (c *Client) WriteLoraMetadata(path string, v *types.VersionRecord) error {
	if v == nil {
		return ErrNoRecord
	}
	b, err := json.MarshalIndent(c.LoraMetadataOf(v), "", sidecarIndent)
	if err != nil {
		return fmt.Errorf("encode lora metadata: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrSidecarExists
		}
		return fmt.Errorf("create lora metadata: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("write lora metadata: %w", err)
	}
	return f.Close()
}

// WriteLoraMetadataByVersionID fetches a version and writes its LoRA descriptor.
func (c *Client) WriteLoraMetadataByVersionID(ctx context.Context, path string, versionID int64) error {
	v, err := c.VersionByID(ctx, versionID)
	if err != nil {
		return err
	}
	return c.WriteLoraMetadata(path, v)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", sidecarIndent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
