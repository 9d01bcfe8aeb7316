// Package actions exposes the user facing operations: the scan and
// maintenance batches, shortcut management, settings and Civitai lookups.
// The HTTP API and the CLI both drive a Service.
package actions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"civitaid/internal/civitai"
	"civitaid/internal/common/fsutil"
	"civitaid/internal/config"
	"civitaid/internal/events"
	"civitaid/internal/registry"
	"civitaid/internal/scan"
	"civitaid/internal/shortcut"
	"civitaid/pkg/types"
)

// Service is safe for concurrent use. Scanner batches and shortcut batches
// each run one at a time; a second one fails with a busy error.
type Service struct {
	cfgPath string
	log     zerolog.Logger

	mu  sync.RWMutex
	cfg config.Config

	client    clientRef
	scanner   *scan.Scanner
	shortcuts *shortcut.Store
	bus       *events.Broadcaster
}

// New wires a Service from cfg. cfgPath is where SaveSettings writes; it
// may be empty, in which case settings are applied but not persisted.
func New(cfgPath string, cfg config.Config, log zerolog.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	c, err := civitai.New(civitai.ConfigFrom(cfg), log.With().Str("component", "civitai").Logger())
	if err != nil {
		return nil, err
	}
	s := &Service{cfgPath: cfgPath, cfg: cfg.Clone(), log: log, bus: events.NewBroadcaster()}
	s.client.set(c)

	dataDir, err := fsutil.ExpandHome(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	s.shortcuts, err = shortcut.Open(filepath.Join(dataDir, shortcut.FileName), &s.client,
		shortcut.WithPublisher(s.bus),
		shortcut.WithLogger(log.With().Str("component", "shortcut").Logger()))
	if err != nil {
		return nil, err
	}
	s.scanner = scan.New(scan.ConfigFrom(cfg), &s.client,
		scan.WithShortcuts(s.shortcuts),
		scan.WithPublisher(s.bus),
		scan.WithLogger(log.With().Str("component", "scan").Logger()))
	return s, nil
}

// Client returns the current Civitai client.
func (s *Service) Client() *civitai.Client { return s.client.get() }

// Events subscribes to batch progress. cancel must be called when done.
func (s *Service) Events() (<-chan types.Event, func()) { return s.bus.Subscribe() }

// Subscribers returns the number of open event subscriptions.
func (s *Service) Subscribers() int { return s.bus.Subscribers() }

func (s *Service) config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// ScanModels lists model files under the configured folders that have no
// info sidecar.
func (s *Service) ScanModels(ctx context.Context) ([]string, error) {
	cfg := s.config()
	return s.scanner.Scan(ctx, cfg.ModelRoots(), cfg.ModelExts)
}

// CreateModelsInformation resolves req.Files and returns the unresolved ones.
func (s *Service) CreateModelsInformation(ctx context.Context, req types.CreateInfoRequest) ([]string, error) {
	return s.scanner.CreateModelsInformation(ctx, req.Files, scan.Options{
		Organize:         req.Organize,
		VersionFolder:    req.VersionFolder,
		RegisterShortcut: req.RegisterShortcut,
	})
}

// FixFilenames renames the sidecars under the configured folders.
func (s *Service) FixFilenames(ctx context.Context) (int, error) {
	return s.scanner.FixInformationFilenames(ctx, s.config().ModelRoots())
}

// Downloaded indexes the locally present versions.
func (s *Service) Downloaded() (registry.Index, error) {
	cfg := s.config()
	return registry.LoadDownloaded(cfg.ModelRoots(), cfg.InfoSuffix, cfg.InfoExt, cfg.ModelExts)
}

// ScanToShortcut registers a shortcut for every downloaded model lacking one.
func (s *Service) ScanToShortcut(ctx context.Context) (types.ShortcutBatchResponse, error) {
	idx, err := s.Downloaded()
	if err != nil {
		return types.ShortcutBatchResponse{}, err
	}
	return s.shortcuts.ScanDownloaded(ctx, idx)
}

// UpdateAllShortcuts refreshes every shortcut from Civitai.
func (s *Service) UpdateAllShortcuts(ctx context.Context) (types.ShortcutBatchResponse, error) {
	return s.shortcuts.UpdateAll(ctx)
}

func (s *Service) Shortcuts() []types.Shortcut { return s.shortcuts.List() }

func (s *Service) AddShortcut(ctx context.Context, modelID int64) error {
	return s.shortcuts.Add(ctx, modelID)
}

func (s *Service) RemoveShortcut(modelID int64) (bool, error) { return s.shortcuts.Remove(modelID) }

// Settings returns the active configuration.
func (s *Service) Settings() config.Config { return s.config() }

// SaveSettings applies cfg, persists it to the config file when one is
// known and rebuilds the client. It fails while a batch runs.
func (s *Service) SaveSettings(cfg config.Config) error {
	cfg = cfg.Clone()
	cfg.ApplyDefaults()
	c, err := civitai.New(civitai.ConfigFrom(cfg), s.log.With().Str("component", "civitai").Logger())
	if err != nil {
		return invalidInput(err)
	}
	if err := s.scanner.Reconfigure(scan.ConfigFrom(cfg)); err != nil {
		return err
	}
	if s.cfgPath != "" {
		if err := config.Save(s.cfgPath, cfg); err != nil {
			return err
		}
	}
	s.client.set(c)
	s.mu.Lock()
	s.cfg = cfg.Clone()
	s.mu.Unlock()
	s.log.Info().Str("path", s.cfgPath).Msg("settings saved")
	return nil
}

// CleanGallery removes the downloaded gallery images.
func (s *Service) CleanGallery() error {
	dir, err := fsutil.ExpandHome(s.config().GalleryFolder)
	if err != nil {
		return err
	}
	dir = filepath.Clean(dir)
	home, _ := os.UserHomeDir()
	if dir == "" || dir == "." || dir == string(filepath.Separator) || dir == filepath.Clean(home) {
		return invalidInput(fmt.Errorf("refusing to clean gallery folder %q", dir))
	}
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clean gallery: %w", err)
	}
	s.log.Info().Str("dir", dir).Msg("gallery cleaned")
	return nil
}
