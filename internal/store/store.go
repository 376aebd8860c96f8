// Package store keeps verified hand histories.
package store

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/lox/holdem-engine/internal/history"
)

var (
	// ErrNotFound is returned when no hand has the requested id
	ErrNotFound = errors.New("hand not found")
	// ErrDuplicate is returned when a hand with the same id is already stored
	ErrDuplicate = errors.New("hand already stored")
)

// Record is a stored hand with the payoffs computed when it was saved
type Record struct {
	ID        string         `json:"id"`
	Payload   history.Entry  `json:"payload"`
	Payoffs   map[string]int `json:"payoffs"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store persists hand records. Implementations are safe for concurrent use.
type Store interface {
	// Save stores rec, stamping CreatedAt, and returns the stored record
	Save(ctx context.Context, rec Record) (Record, error)
	// Get returns the record with the given id or ErrNotFound
	Get(ctx context.Context, id string) (Record, error)
	// List returns every record, newest first
	List(ctx context.Context) ([]Record, error)
}

// Latest returns the most recently saved record or ErrNotFound
func Latest(ctx context.Context, s Store) (Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, ErrNotFound
	}
	return records[0], nil
}

// sortNewestFirst orders records by creation time, breaking ties by id
func sortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}
