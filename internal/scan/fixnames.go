package scan

import (
	"context"
	"os"
	"path/filepath"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/internal/events"
)

// FixInformationFilenames renames every version sidecar under roots to
// "<canonical base><info suffix><info ext>". Sidecars that do not hold a
// version record, and renames whose target already exists, are skipped.
// Each rename stands alone; an interrupted pass is completed by a rerun.
func (s *Scanner) FixInformationFilenames(ctx context.Context, roots []string) (int, error) {
	release, err := s.begin("fix-names")
	if err != nil {
		return 0, err
	}
	defer release()

	sidecars, err := fsutil.SearchFiles(roots, []string{s.cfg.InfoName()})
	if err != nil {
		return 0, err
	}
	batch := events.StartBatch(s.pub, "fix-names", len(sidecars))
	renamed := 0
	for i, p := range sidecars {
		if err := ctx.Err(); err != nil {
			batch.End(i, map[string]any{"renamed": renamed, "error": err.Error()})
			return renamed, err
		}
		v, err := civitai.ReadVersionInfo(p)
		if err != nil || v.ID == 0 || v.ModelID == 0 {
			filesTotal.WithLabelValues("fix-names", "not_version").Inc()
			continue
		}
		target := filepath.Join(filepath.Dir(p), CanonicalBaseName(v)+s.cfg.InfoName())
		if target == p {
			continue
		}
		if fsutil.PathExists(target) {
			s.log.Debug().Str("info", p).Str("target", target).Msg("sidecar rename skipped, target exists")
			filesTotal.WithLabelValues("fix-names", "collision").Inc()
			continue
		}
		if err := os.Rename(p, target); err != nil {
			s.log.Warn().Err(err).Str("info", p).Msg("sidecar rename failed")
			filesTotal.WithLabelValues("fix-names", "failed").Inc()
			continue
		}
		renamed++
		filesTotal.WithLabelValues("fix-names", "renamed").Inc()
		s.log.Info().Str("from", p).Str("to", target).Msg("renamed sidecar")
		batch.Emit(events.SidecarRenamed, target, i+1, map[string]any{"from": p})
	}
	batch.End(len(sidecars), map[string]any{"renamed": renamed})
	return renamed, nil
}
