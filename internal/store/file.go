package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/fileutil"
)

const recordExt = ".json"

// FileStore keeps one JSON file per hand in a directory. Files are written
// atomically so a crash never leaves a partial record behind.
type FileStore struct {
	mu     sync.Mutex
	dir    string
	clock  quartz.Clock
	logger zerolog.Logger
}

// NewFileStore creates dir if needed and returns a store backed by it
func NewFileStore(dir string, clock quartz.Clock, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &FileStore{
		dir:    dir,
		clock:  clock,
		logger: logger.With().Str("component", "store").Str("dir", dir).Logger(),
	}, nil
}

// Dir returns the directory holding the records
func (f *FileStore) Dir() string { return f.dir }

func (f *FileStore) Save(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	path, err := f.path(rec.ID)
	if err != nil {
		return Record{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := os.Stat(path); err == nil {
		return Record{}, fmt.Errorf("save %s: %w", rec.ID, ErrDuplicate)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Record{}, fmt.Errorf("save %s: %w", rec.ID, err)
	}

	rec.CreatedAt = f.clock.Now().UTC()
	if err := fileutil.WriteJSONAtomic(path, rec, 0o644); err != nil {
		return Record{}, fmt.Errorf("save %s: %w", rec.ID, err)
	}
	f.logger.Debug().Str("hand_id", rec.ID).Msg("Hand saved")
	return rec, nil
}

func (f *FileStore) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	path, err := f.path(id)
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	var rec Record
	if err := fileutil.ReadJSON(path, &rec); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
		}
		return Record{}, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

// List reads every record in the directory. Files that fail to decode are
// logged and skipped.
func (f *FileStore) List(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("list history dir: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != recordExt {
			continue
		}
		var rec Record
		if err := fileutil.ReadJSON(filepath.Join(f.dir, name), &rec); err != nil {
			f.logger.Warn().Err(err).Str("file", name).Msg("Skipping unreadable hand record")
			continue
		}
		records = append(records, rec)
	}

	sortNewestFirst(records)
	return records, nil
}

// path maps a hand id to its file, refusing ids that would escape dir
func (f *FileStore) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid hand id %q", id)
	}
	return filepath.Join(f.dir, id+recordExt), nil
}
