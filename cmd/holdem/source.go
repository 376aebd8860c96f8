package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/history"
)

// loadEntry reads a hand from a JSON file, either a bare entry or a stored
// record, or failing that looks source up as a hand id in the history
// store. The time is when the hand was saved, or zero for bare entries.
func loadEntry(ctx context.Context, source string, cfg *config.HistoryConfig, logger zerolog.Logger) (history.Entry, time.Time, error) {
	data, err := os.ReadFile(source)
	switch {
	case err == nil:
		return decodeSource(data)
	case !errors.Is(err, fs.ErrNotExist):
		return history.Entry{}, time.Time{}, err
	}

	hands, err := openStore(cfg, logger)
	if err != nil {
		return history.Entry{}, time.Time{}, err
	}
	rec, err := hands.Get(ctx, source)
	if err != nil {
		return history.Entry{}, time.Time{}, fmt.Errorf("no file or saved hand named %q: %w", source, err)
	}
	return rec.Payload, rec.CreatedAt, nil
}

func decodeSource(data []byte) (history.Entry, time.Time, error) {
	var rec struct {
		Payload   json.RawMessage `json:"payload"`
		CreatedAt time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(data, &rec); err == nil && len(rec.Payload) > 0 {
		entry, err := history.DecodeEntry(rec.Payload)
		return entry, rec.CreatedAt, err
	}
	entry, err := history.DecodeEntry(data)
	return entry, time.Time{}, err
}
