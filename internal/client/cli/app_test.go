package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/client/client"
	"github.com/dmitrijs2005/filekeeper/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The REPL and the interactive prompts must drain the same buffer: a command
// line followed by prompt answers has to reach the right consumer.
func TestRun_PromptLinesReachCommandHandlers(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "f1", "name": "mydocs", "type": "folder"})
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{ServerEndpointAddr: srv.URL, RequestTimeout: 5 * time.Second}
	a := &App{
		config: cfg,
		api:    client.NewClient(cfg.ServerEndpointAddr, cfg.RequestTimeout),
		reader: bufio.NewReader(strings.NewReader("mkdir\nmydocs\n\nexit\n")),
	}

	runREPL(context.Background(), a, a.getStatus, a.reader)

	require.NotNil(t, body, "upload never reached the server")
	assert.Equal(t, "mydocs", body["name"])
	assert.Equal(t, "folder", body["type"])
}
