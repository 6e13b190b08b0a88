package connection

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/cursorlog/internal/config"
	"github.com/rickgao/cursorlog/internal/database"
	"github.com/rickgao/cursorlog/internal/model"
	"github.com/rickgao/cursorlog/internal/writer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writerFunc adapts a function to the Writer interface.
type writerFunc func(ctx context.Context, ev model.CoordinateEvent) error

func (f writerFunc) Write(ctx context.Context, ev model.CoordinateEvent) error {
	return f(ctx, ev)
}

// recordingObserver counts observer callbacks.
type recordingObserver struct {
	mu       sync.Mutex
	opened   int
	closed   int
	outcomes []string
}

func (o *recordingObserver) SessionOpened() {
	o.mu.Lock()
	o.opened++
	o.mu.Unlock()
}

func (o *recordingObserver) SessionClosed() {
	o.mu.Lock()
	o.closed++
	o.mu.Unlock()
}

func (o *recordingObserver) MessageHandled(outcome string) {
	o.mu.Lock()
	o.outcomes = append(o.outcomes, outcome)
	o.mu.Unlock()
}

func (o *recordingObserver) snapshot() (opened, closed int, outcomes []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened, o.closed, append([]string(nil), o.outcomes...)
}

// openStore provisions a SQLite database in a temp dir.
func openStore(t *testing.T) *database.SQLiteStore {
	t.Helper()
	ctx := context.Background()

	store, err := database.OpenSQLite(ctx, config.SQLiteConfig{
		Path:     filepath.Join(t.TempDir(), "coords.db"),
		MaxConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Provision(ctx))
	return store
}

// newStoreWriter wires a CoordinateWriter to store.
func newStoreWriter(t *testing.T, store writer.Store) *writer.CoordinateWriter {
	t.Helper()
	w := writer.NewCoordinateWriter(writer.DefaultWriterConfig(), store, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		w.Stop(ctx)
	})
	return w
}

// startManager serves m on an httptest server and returns the ws:// URL.
func startManager(t *testing.T, m *Manager) string {
	t.Helper()
	srv := httptest.NewServer(m)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		m.Stop(ctx)
		srv.Close()
	})
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// dial connects a client and consumes the connected ack.
func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Equal(t, `{"status":"connected"}`, readFrame(t, conn))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func send(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
}

func successAck(payload string) string {
	return `{"status":"success","received_data":` + payload + `}`
}

func decodeAck(t *testing.T, frame string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(frame), &m))
	return m
}

// sessionPair returns a server-side Session over a live connection and the client end.
func sessionPair(t *testing.T, cfg SessionConfig) (*Session, *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	var serverConn *websocket.Conn
	select {
	case serverConn = <-serverConns:
	case <-time.After(5 * time.Second):
		t.Fatal("server never accepted the connection")
	}

	s := newSession(serverConn, "/ws", cfg, testLogger())
	t.Cleanup(func() { s.Close() })
	return s, client
}
