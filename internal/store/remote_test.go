package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/history"
)

func TestRemoteStoreSave(t *testing.T) {
	t.Parallel()
	created := time.Date(2026, time.June, 3, 9, 0, 0, 0, time.UTC)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/hands", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var entry history.Entry
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "Hand saved",
			"id":         entry.ID,
			"payoffs":    map[string]int{"0": 40, "1": -40},
			"created_at": created,
		})
	}))
	defer ts.Close()

	remote, err := NewRemoteStore(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	// The service's payoffs win over whatever the caller sent
	rec, err := remote.Save(context.Background(), Record{
		ID:      "h1",
		Payload: history.Entry{ID: "h1"},
		Payoffs: map[string]int{"0": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "h1", rec.ID)
	assert.Equal(t, map[string]int{"0": 40, "1": -40}, rec.Payoffs)
	assert.True(t, created.Equal(rec.CreatedAt))
}

func TestRemoteStoreErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		detail string
	}{
		{"not found", http.StatusNotFound, `{"detail":"hand not found"}`, ErrNotFound, ""},
		{"duplicate", http.StatusConflict, `{"detail":"hand already exists"}`, ErrDuplicate, ""},
		{"detail", http.StatusUnprocessableEntity, `{"detail":"hand history does not replay"}`, nil, "history service: hand history does not replay"},
		{"no detail", http.StatusBadGateway, `nope`, nil, "history service: 502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			remote, err := NewRemoteStore(ts.URL, nil)
			require.NoError(t, err)
			_, err = remote.Get(context.Background(), "h1")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				assert.ErrorContains(t, err, tt.detail)
			}
		})
	}
}

func TestRemoteStoreList(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hands" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `[{"id":"b","payload":{"id":"b"},"payoffs":{"0":5},"created_at":"2026-06-03T09:01:00Z"},{"id":"a","payload":{"id":"a"},"payoffs":{},"created_at":"2026-06-03T09:00:00Z"}]`)
	}))
	defer ts.Close()

	remote, err := NewRemoteStore(ts.URL, nil)
	require.NoError(t, err)
	records, err := remote.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "b", records[0].Payload.ID)
	assert.Equal(t, 5, records[0].Payoffs["0"])

	_, err = remote.Get(context.Background(), "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRemoteStoreRejectsBadURL(t *testing.T) {
	t.Parallel()
	for _, u := range []string{"", "localhost:8000", "/hands"} {
		_, err := NewRemoteStore(u, nil)
		assert.Error(t, err, u)
	}
}
