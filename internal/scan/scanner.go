package scan

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"civitaid/internal/common/fsutil"
	"civitaid/internal/config"
	"civitaid/internal/events"
	"civitaid/pkg/types"
)

// Resolver is the part of the Civitai client the scanner needs.
type Resolver interface {
	VersionByHash(ctx context.Context, hash string) (*types.VersionRecord, error)
	DownloadImage(ctx context.Context, imageURL string, w io.Writer) (int64, error)
}

// ShortcutRegistry is notified of every resolved model when requested.
type ShortcutRegistry interface {
	Add(ctx context.Context, modelID int64) error
}

// Config carries the file layout and folder mapping.
type Config struct {
	Layout
	ModelExts []string
	// FolderFor maps a model type to its download folder. When nil,
	// organizing keeps files in their current folder.
	FolderFor func(modelType string) string
}

// ConfigFrom extracts the scanner settings from the application config.
func ConfigFrom(c config.Config) Config {
	c = c.Clone()
	return Config{
		Layout: Layout{
			InfoSuffix:    c.InfoSuffix,
			InfoExt:       c.InfoExt,
			PreviewSuffix: c.PreviewSuffix,
			PreviewExt:    c.PreviewExt,
		},
		ModelExts: c.ModelExts,
		FolderFor: c.FolderFor,
	}
}

// Scanner runs discovery, resolution and sidecar maintenance batches.
type Scanner struct {
	cfg       Config
	res       Resolver
	shortcuts ShortcutRegistry
	pub       events.Publisher
	log       zerolog.Logger

	// held for the duration of a batch
	mu sync.Mutex
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithPublisher sets the receiver of progress events.
func WithPublisher(p events.Publisher) Option { return func(s *Scanner) { s.pub = p } }

// WithShortcuts sets the registry notified when RegisterShortcut is requested.
func WithShortcuts(r ShortcutRegistry) Option { return func(s *Scanner) { s.shortcuts = r } }

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option { return func(s *Scanner) { s.log = l } }

func New(cfg Config, res Resolver, opts ...Option) *Scanner {
	s := &Scanner{cfg: cfg, res: res, pub: events.Noop{}, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	if s.pub == nil {
		s.pub = events.Noop{}
	}
	return s
}

// Reconfigure replaces the layout and folder mapping. It fails with a busy
// error while a batch runs.
func (s *Scanner) Reconfigure(cfg Config) error {
	release, err := s.begin("reconfigure")
	if err != nil {
		return err
	}
	defer release()
	s.cfg = cfg
	return nil
}

// begin claims the Scanner for one batch.
func (s *Scanner) begin(op string) (func(), error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy(op)
	}
	return s.mu.Unlock, nil
}

// Scan lists the files under roots whose extension is one of exts and that
// have no info sidecar yet. Missing roots are ignored. exts defaults to the
// configured model extensions. The result is sorted and never nil.
func (s *Scanner) Scan(ctx context.Context, roots, exts []string) ([]string, error) {
	release, err := s.begin("scan")
	if err != nil {
		return nil, err
	}
	defer release()

	if len(exts) == 0 {
		exts = s.cfg.ModelExts
	}
	files, err := fsutil.SearchFiles(roots, exts)
	if err != nil {
		return nil, err
	}
	batch := events.StartBatch(s.pub, "scan", len(files))
	out := []string{}
	for i, p := range files {
		if err := ctx.Err(); err != nil {
			batch.End(i, map[string]any{"error": err.Error()})
			return out, err
		}
		needsInfo := !fsutil.PathExists(s.cfg.InfoFor(p))
		if needsInfo {
			out = append(out, p)
			filesTotal.WithLabelValues("scan", "needs_info").Inc()
		} else {
			filesTotal.WithLabelValues("scan", "has_info").Inc()
		}
		batch.Emit(events.ScanProgress, p, i+1, map[string]any{"needs_info": needsInfo})
	}
	batch.End(len(files), map[string]any{"needs_info": len(out)})
	s.log.Info().Int("files", len(files)).Int("needs_info", len(out)).Msg("scan finished")
	return out, nil
}
