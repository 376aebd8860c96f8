package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteStore talks to a history service over HTTP. The service replays
// every hand it is sent and computes the payoffs itself.
type RemoteStore struct {
	base   *url.URL
	client *http.Client
}

// NewRemoteStore returns a store for the service at baseURL. A nil client
// uses one with a ten second timeout.
func NewRemoteStore(baseURL string, client *http.Client) (*RemoteStore, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid history service url %q", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteStore{base: base, client: client}, nil
}

type saveResponse struct {
	ID        string         `json:"id"`
	Payoffs   map[string]int `json:"payoffs"`
	CreatedAt time.Time      `json:"created_at"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Save posts the hand payload. The payoffs in rec are ignored in favour of
// the ones the service computes.
func (r *RemoteStore) Save(ctx context.Context, rec Record) (Record, error) {
	body, err := json.Marshal(rec.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("encode hand %s: %w", rec.ID, err)
	}
	var resp saveResponse
	if err := r.do(ctx, http.MethodPost, "/hands", bytes.NewReader(body), &resp); err != nil {
		return Record{}, fmt.Errorf("save %s: %w", rec.ID, err)
	}
	rec.ID = resp.ID
	rec.Payoffs = resp.Payoffs
	rec.CreatedAt = resp.CreatedAt
	return rec, nil
}

func (r *RemoteStore) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	if err := r.do(ctx, http.MethodGet, "/hands/"+url.PathEscape(id), nil, &rec); err != nil {
		return Record{}, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

func (r *RemoteStore) List(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := r.do(ctx, http.MethodGet, "/hands", nil, &records); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return records, nil
}

func (r *RemoteStore) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, r.base.String()+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusConflict:
			return ErrDuplicate
		}
		if e.Detail == "" {
			e.Detail = resp.Status
		}
		return fmt.Errorf("history service: %s", e.Detail)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
