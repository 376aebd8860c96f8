package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/store"
)

// playedEntry plays a seeded three-handed hand of calling stations
func playedEntry(t *testing.T, seed int64) history.Entry {
	t.Helper()
	e := game.NewEngine(game.WithRand(randutil.New(seed)))
	s := game.NewTable([]string{"Alice", "Bob", "Carol"}, nil, 20, 40)
	s = e.Apply(s, game.StartHand{Players: s.Players})
	for !s.HandOver {
		next, err := e.Try(s, game.Call{})
		require.NoError(t, err)
		s = next
	}
	return history.NewEntry(s)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC))
	srv := New(store.NewMemoryStore(clock), zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	return srv, ts, clock
}

func postJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	resp, err := http.Post(url+"/hands", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestPostHand(t *testing.T) {
	t.Parallel()
	_, ts, _ := newTestServer(t)
	entry := playedEntry(t, 1)

	resp := postJSON(t, ts.URL, entry)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	saved := decode[SaveResponse](t, resp)
	assert.Equal(t, "Hand saved", saved.Message)
	assert.Equal(t, entry.ID, saved.ID)
	assert.Equal(t, entry.Payoffs(), saved.Payoffs)

	dup := postJSON(t, ts.URL, entry)
	assert.Equal(t, http.StatusConflict, dup.StatusCode)
}

func TestPostHandRejections(t *testing.T) {
	t.Parallel()
	_, ts, _ := newTestServer(t)

	t.Run("malformed", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/hands", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decode[ErrorResponse](t, resp).Detail, "invalid hand history entry")
	})

	t.Run("schema", func(t *testing.T) {
		entry := playedEntry(t, 2)
		entry.Players = entry.Players[:1]
		resp := postJSON(t, ts.URL, entry)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong payoffs", func(t *testing.T) {
		entry := playedEntry(t, 3)
		entry.Players[0].Winnings += 100
		resp := postJSON(t, ts.URL, entry)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, decode[ErrorResponse](t, resp).Detail, "does not replay")
	})

	t.Run("illegal action", func(t *testing.T) {
		entry := playedEntry(t, 4)
		entry.Actions = append([]string{"b10"}, entry.Actions...)
		resp := postJSON(t, ts.URL, entry)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestListAndGetHands(t *testing.T) {
	t.Parallel()
	_, ts, clock := newTestServer(t)
	ctx := context.Background()

	first, second := playedEntry(t, 10), playedEntry(t, 11)
	require.Equal(t, http.StatusCreated, postJSON(t, ts.URL, first).StatusCode)
	clock.Advance(time.Minute).MustWait(ctx)
	require.Equal(t, http.StatusCreated, postJSON(t, ts.URL, second).StatusCode)

	resp, err := http.Get(ts.URL + "/hands")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	require.Len(t, raw, 2)
	for _, key := range []string{"id", "payload", "payoffs", "created_at"} {
		assert.Contains(t, raw[0], key)
	}
	assert.JSONEq(t, `"`+second.ID+`"`, string(raw[0]["id"]), "newest first")
	assert.JSONEq(t, `"2026-05-01T12:01:00Z"`, string(raw[0]["created_at"]))

	one, err := http.Get(ts.URL + "/hands/" + first.ID)
	require.NoError(t, err)
	defer one.Body.Close()
	require.Equal(t, http.StatusOK, one.StatusCode)
	rec := decode[store.Record](t, one)
	assert.Equal(t, first, rec.Payload)

	missing, err := http.Get(ts.URL + "/hands/nope")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestHealth(t *testing.T) {
	t.Parallel()
	_, ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	wrong, err := http.Post(ts.URL+"/health", "text/plain", nil)
	require.NoError(t, err)
	defer wrong.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, wrong.StatusCode)
}

func TestFeedBroadcastsSavedHands(t *testing.T) {
	t.Parallel()
	srv, ts, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/hands/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return srv.Hub().Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	entry := playedEntry(t, 20)
	require.Equal(t, http.StatusCreated, postJSON(t, ts.URL, entry).StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg FeedMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageTypeHandSaved, msg.Type)
	assert.Equal(t, entry.ID, msg.Data.ID)
	assert.Equal(t, entry.Payoffs(), msg.Data.Payoffs)

	srv.Hub().Close()
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Equal(t, 0, srv.Hub().Subscribers())
}

func TestRemoteStoreAgainstService(t *testing.T) {
	t.Parallel()
	_, ts, _ := newTestServer(t)
	ctx := context.Background()

	remote, err := store.NewRemoteStore(ts.URL+"/", nil)
	require.NoError(t, err)

	entry := playedEntry(t, 30)
	saved, err := remote.Save(ctx, store.Record{ID: entry.ID, Payload: entry})
	require.NoError(t, err)
	assert.Equal(t, entry.Payoffs(), saved.Payoffs)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := remote.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got.Payload)

	list, err := remote.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = remote.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = remote.Save(ctx, store.Record{ID: entry.ID, Payload: entry})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = store.NewRemoteStore("not a url", nil)
	assert.Error(t, err)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(store.NewMemoryStore(nil), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
