// Package shortcut keeps the registry of models the user bookmarked, persisted
// as a JSON file keyed by Civitai model id.
package shortcut

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"civitaid/internal/events"
	"civitaid/internal/registry"
	"civitaid/pkg/types"
)

// FileName is the registry file inside the data directory.
const FileName = "shortcuts.json"

// ModelSource fetches model records.
type ModelSource interface {
	ModelByID(ctx context.Context, id int64) (*types.ModelRecord, error)
}

// Store is safe for concurrent use. Every mutation is written to disk
// before it returns.
type Store struct {
	path string
	src  ModelSource
	pub  events.Publisher
	log  zerolog.Logger
	now  func() time.Time

	mu      sync.RWMutex
	entries map[int64]types.Shortcut

	// held for the whole of UpdateAll or ScanDownloaded
	batch sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

func WithPublisher(p events.Publisher) Option { return func(s *Store) { s.pub = p } }

func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.log = l } }

// Open loads the registry at path; a missing file is an empty registry.
func Open(path string, src ModelSource, opts ...Option) (*Store, error) {
	s := &Store{
		path:    path,
		src:     src,
		pub:     events.Noop{},
		log:     zerolog.Nop(),
		now:     time.Now,
		entries: map[int64]types.Shortcut{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.pub == nil {
		s.pub = events.Noop{}
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open shortcuts: %w", err)
	}
	defer f.Close()
	var data map[string]types.Shortcut
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return fmt.Errorf("decode shortcuts %s: %w", s.path, err)
	}
	for k, e := range data {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		e.ModelID = id
		s.entries[id] = e
	}
	return nil
}

// save writes a snapshot; the caller holds s.mu.
func (s *Store) save() error {
	snap := make(map[string]types.Shortcut, len(s.entries))
	for id, e := range s.entries {
		snap[strconv.FormatInt(id, 10)] = e
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write shortcuts: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// entryOf builds the shortcut of m. The thumbnail is the first image of
// the default version.
func (s *Store) entryOf(m *types.ModelRecord) types.Shortcut {
	e := types.Shortcut{
		ModelID:       m.ID,
		Name:          m.Name,
		Type:          m.Type,
		Nsfw:          m.Nsfw,
		VersionIDs:    []int64{},
		UpdatedAtUnix: s.now().Unix(),
	}
	for _, v := range m.ModelVersions {
		e.VersionIDs = append(e.VersionIDs, v.ID)
	}
	if len(m.ModelVersions) > 0 && len(m.ModelVersions[0].Images) > 0 {
		e.ThumbnailURL = m.ModelVersions[0].Images[0].URL
	}
	return e
}

// Add fetches the model and registers or refreshes its shortcut.
func (s *Store) Add(ctx context.Context, modelID int64) error {
	m, err := s.src.ModelByID(ctx, modelID)
	if err != nil {
		return fmt.Errorf("shortcut %d: %w", modelID, err)
	}
	e := s.entryOf(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.entries[modelID]
	s.entries[modelID] = e
	if err := s.save(); err != nil {
		if had {
			s.entries[modelID] = prev
		} else {
			delete(s.entries, modelID)
		}
		return err
	}
	s.log.Info().Int64("model_id", modelID).Str("name", e.Name).Msg("shortcut registered")
	return nil
}

// Remove deletes a shortcut; it reports whether one existed.
func (s *Store) Remove(modelID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.entries[modelID]
	if !ok {
		return false, nil
	}
	delete(s.entries, modelID)
	if err := s.save(); err != nil {
		s.entries[modelID] = prev
		return false, err
	}
	return true, nil
}

// Get returns the shortcut of modelID.
func (s *Store) Get(modelID int64) (types.Shortcut, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[modelID]
	return e, ok
}

// List returns all shortcuts ordered by model id.
func (s *Store) List() []types.Shortcut {
	s.mu.RLock()
	out := make([]types.Shortcut, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ModelID < out[j].ModelID })
	return out
}

// begin claims the Store for one batch.
func (s *Store) begin(op string) (func(), error) {
	if !s.batch.TryLock() {
		return nil, busyError{op: op}
	}
	return s.batch.Unlock, nil
}

// UpdateAll refreshes every registered shortcut from Civitai. Failed
// refreshes keep the previous entry and are counted. It fails with a busy
// error while another shortcut batch runs.
func (s *Store) UpdateAll(ctx context.Context) (types.ShortcutBatchResponse, error) {
	const op = "shortcuts-update-all"
	release, err := s.begin(op)
	if err != nil {
		return types.ShortcutBatchResponse{}, err
	}
	defer release()
	s.mu.RLock()
	ids := make([]int64, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return s.refresh(ctx, op, ids)
}

// ScanDownloaded registers every model of idx that has no shortcut yet.
func (s *Store) ScanDownloaded(ctx context.Context, idx registry.Index) (types.ShortcutBatchResponse, error) {
	const op = "shortcuts-scan-downloaded"
	release, err := s.begin(op)
	if err != nil {
		return types.ShortcutBatchResponse{}, err
	}
	defer release()
	var ids []int64
	for _, id := range idx.ModelIDs() {
		if _, ok := s.Get(id); !ok {
			ids = append(ids, id)
		}
	}
	return s.refresh(ctx, op, ids)
}

func (s *Store) refresh(ctx context.Context, op string, ids []int64) (types.ShortcutBatchResponse, error) {
	var res types.ShortcutBatchResponse
	batch := events.StartBatch(s.pub, op, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			batch.End(i, map[string]any{"error": err.Error()})
			return res, err
		}
		item := strconv.FormatInt(id, 10)
		if err := s.Add(ctx, id); err != nil {
			res.Failed++
			s.log.Warn().Err(err).Int64("model_id", id).Msg("shortcut refresh failed")
			batch.Emit(events.ShortcutFailed, item, i+1, nil)
			continue
		}
		res.Processed++
		batch.Emit(events.ShortcutUpdated, item, i+1, nil)
	}
	batch.End(len(ids), map[string]any{"processed": res.Processed, "failed": res.Failed})
	return res, nil
}
