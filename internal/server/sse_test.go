package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

func TestEventStreamConnectAndReceive(t *testing.T) {
	srv, sessions, _ := newTestServer(t, &stubProvider{})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/event", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// First event is always server.connected.
	data := readEventData(t, reader)
	assert.Contains(t, data, "server.connected")

	// A session mutation shows up on the stream.
	sessions.Create("user-1", types.SessionPreferences{})
	data = readEventData(t, reader)
	assert.Contains(t, data, "session.created")
}

func TestEventStreamSessionFilter(t *testing.T) {
	srv, sessions, _ := newTestServer(t, &stubProvider{})
	watched := sessions.Create("user-1", types.SessionPreferences{})

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		ts.URL+"/event?sessionID="+watched.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readEventData(t, reader) // server.connected

	// An unrelated session's event must not reach this subscriber; the
	// watched session's update must.
	sessions.Create("user-2", types.SessionPreferences{})
	phase := "testing"
	_, err = sessions.UpdateContext(watched.ID, types.ContextUpdate{ProjectPhase: &phase})
	require.NoError(t, err)

	data := readEventData(t, reader)
	assert.Contains(t, data, "session.updated")
	assert.Contains(t, data, watched.ID)
}

// readEventData reads lines until it sees a data: line and returns it.
func readEventData(t *testing.T, reader *bufio.Reader) string {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
}
