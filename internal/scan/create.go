package scan

import (
	"context"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/internal/events"
	"civitaid/pkg/types"
)

// Options select the side effects of CreateModelsInformation.
type Options struct {
	// Organize moves resolved files into the folder of their model type.
	Organize bool
	// VersionFolder adds a per-version sub folder when organizing.
	VersionFolder bool
	// RegisterShortcut notifies the shortcut registry of each resolved model.
	RegisterShortcut bool
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeResolved
	outcomeUnresolved
)

var outcomeNames = map[outcome]string{
	outcomeSkipped:    "skipped",
	outcomeResolved:   "resolved",
	outcomeUnresolved: "unresolved",
}

// CreateModelsInformation resolves every file by content hash and writes its
// info sidecar and preview. It returns the files that still have no sidecar
// afterwards: unknown to Civitai, failed lookups, failed writes or moves.
// Files that already have a sidecar and files that no longer exist are
// skipped. Lookup failures never abort the batch; only cancellation does.
func (s *Scanner) CreateModelsInformation(ctx context.Context, files []string, opts Options) ([]string, error) {
	release, err := s.begin("create-info")
	if err != nil {
		return nil, err
	}
	defer release()

	batch := events.StartBatch(s.pub, "create-info", len(files))
	unresolved := []string{}
	resolved := 0
	for i, p := range files {
		if err := ctx.Err(); err != nil {
			batch.End(i, map[string]any{"error": err.Error()})
			return unresolved, err
		}
		oc, fields := s.resolveFile(ctx, p, opts)
		filesTotal.WithLabelValues("create-info", outcomeNames[oc]).Inc()
		name := events.InfoSkipped
		switch oc {
		case outcomeResolved:
			resolved++
			name = events.InfoResolved
		case outcomeUnresolved:
			unresolved = append(unresolved, p)
			name = events.InfoUnregistered
		}
		batch.Emit(name, p, i+1, fields)
	}
	batch.End(len(files), map[string]any{"resolved": resolved, "unresolved": len(unresolved)})
	s.log.Info().Int("files", len(files)).Int("resolved", resolved).Int("unresolved", len(unresolved)).Msg("model information batch finished")
	return unresolved, nil
}

// resolveFile runs the per-file state machine. Every step checks the disk
// first so a rerun continues after the last completed step.
func (s *Scanner) resolveFile(ctx context.Context, path string, opts Options) (outcome, map[string]any) {
	l := s.log.With().Str("file", path).Logger()
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		l.Warn().Msg("model file missing, skipped")
		return outcomeSkipped, map[string]any{"reason": "missing"}
	}
	if fsutil.PathExists(s.cfg.InfoFor(path)) {
		return outcomeSkipped, map[string]any{"reason": "has_info"}
	}

	l.Debug().Str("size", humanize.Bytes(uint64(fi.Size()))).Msg("hashing model file")
	hash, err := fsutil.SHA256File(path)
	if err != nil {
		l.Warn().Err(err).Msg("hash failed")
		return outcomeUnresolved, map[string]any{"reason": "hash_failed"}
	}
	v, err := s.res.VersionByHash(ctx, hash)
	if err != nil {
		l.Info().Str("kind", civitai.KindOf(err).String()).Msg("no Civitai version for file")
		return outcomeUnresolved, map[string]any{"reason": civitai.KindOf(err).String()}
	}
	fields := map[string]any{"model_id": v.ModelID, "version_id": v.ID}

	dir := filepath.Dir(path)
	if opts.Organize {
		dir = s.versionDir(v, dir, opts.VersionFolder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			l.Warn().Err(err).Str("dir", dir).Msg("create model folder failed")
			fields["reason"] = "mkdir_failed"
			return outcomeUnresolved, fields
		}
	}

	infoPath := s.cfg.InfoIn(dir, path)
	if err := civitai.WriteVersionInfo(infoPath, v); err != nil {
		l.Warn().Err(err).Msg("write info sidecar failed")
		fields["reason"] = "write_failed"
		return outcomeUnresolved, fields
	}
	l.Info().Str("info", infoPath).Int64("version_id", v.ID).Msg("wrote info sidecar")

	if url, ok := civitai.PreviewImageURL(v); ok {
		previewPath := s.cfg.PreviewIn(dir, path)
		if !fsutil.PathExists(previewPath) {
			if err := s.savePreview(ctx, url, previewPath); err != nil {
				l.Debug().Err(err).Str("url", url).Msg("preview skipped")
			}
		}
	}

	if opts.Organize {
		dest := filepath.Join(dir, filepath.Base(path))
		if err := fsutil.MoveFile(path, dest); err != nil {
			l.Warn().Err(err).Str("dest", dest).Msg("move model file failed")
			fields["reason"] = "move_failed"
			return outcomeUnresolved, fields
		}
		fields["path"] = dest
	}

	if opts.RegisterShortcut && s.shortcuts != nil && v.ModelID != 0 {
		if err := s.shortcuts.Add(ctx, v.ModelID); err != nil {
			l.Warn().Err(err).Int64("model_id", v.ModelID).Msg("shortcut registration failed")
		}
	}
	return outcomeResolved, fields
}

// versionDir is the organized folder of v. Without a folder mapping the
// current folder is kept.
func (s *Scanner) versionDir(v *types.VersionRecord, current string, perVersion bool) string {
	if s.cfg.FolderFor == nil {
		return current
	}
	name := modelName(v)
	dir := filepath.Join(s.cfg.FolderFor(v.Model.Type), fsutil.ReplaceFilename(name))
	if perVersion {
		dir = filepath.Join(dir, fsutil.ReplaceFilename(VersionFolderName(name, v.Name, v.ID)))
	}
	return dir
}
