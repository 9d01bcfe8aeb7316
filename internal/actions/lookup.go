package actions

import (
	"context"
	"strings"

	"civitaid/pkg/types"
)

func (s *Service) Model(ctx context.Context, id int64) (*types.ModelRecord, error) {
	return s.Client().ModelByID(ctx, id)
}

// LatestVersion is the first, fully fetched version of a model.
func (s *Service) LatestVersion(ctx context.Context, modelID int64) (*types.VersionRecord, error) {
	return s.Client().VersionByModelID(ctx, modelID)
}

func (s *Service) VersionIDByName(ctx context.Context, modelID int64, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, invalidInput(errMissing("name"))
	}
	return s.Client().VersionIDByName(ctx, modelID, name)
}

func (s *Service) Version(ctx context.Context, versionID int64) (*types.VersionRecord, error) {
	return s.Client().VersionByID(ctx, versionID)
}

func (s *Service) VersionByHash(ctx context.Context, hash string) (*types.VersionRecord, error) {
	return s.Client().VersionByHash(ctx, hash)
}

func (s *Service) Files(ctx context.Context, versionID int64) (map[int64]types.FileRecord, error) {
	return s.Client().FilesByVersionID(ctx, versionID)
}

func (s *Service) PrimaryFile(ctx context.Context, versionID int64) (*types.FileRecord, error) {
	return s.Client().PrimaryFileByVersionID(ctx, versionID)
}

func (s *Service) VersionImages(ctx context.Context, versionID int64) ([]types.ImageRecord, error) {
	return s.Client().ImagesByVersionID(ctx, versionID)
}

func (s *Service) TriggerWords(ctx context.Context, versionID int64) (string, error) {
	return s.Client().TriggerWordsByVersionID(ctx, versionID)
}

// SearchImages queries the images endpoint; failures yield an empty list.
func (s *Service) SearchImages(ctx context.Context, modelID, versionID int64, username string) ([]types.ImageRecord, error) {
	return s.Client().ImagesForModel(ctx, modelID, versionID, username)
}

// WriteTriggerWords stores the trigger words of a version as plain text.
func (s *Service) WriteTriggerWords(ctx context.Context, path string, versionID int64) error {
	return s.Client().WriteTriggerWordsByVersionID(ctx, path, versionID)
}

// WriteLoraMetadata stores the LoRA metadata of a version unless path exists.
func (s *Service) WriteLoraMetadata(ctx context.Context, path string, versionID int64) error {
	return s.Client().WriteLoraMetadataByVersionID(ctx, path, versionID)
}
