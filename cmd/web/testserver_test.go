package main

import (
	"context"
	"github.com/myrjola/constellation/internal/e2etest"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "CONSTELLATION_ADDR":
		return "localhost:0", true
	case "CONSTELLATION_SQLITE_URL":
		return ":memory:", true
	case "CONSTELLATION_CONTENT":
		return "../../internal/content/testdata/content.json", true
	default:
		return "", false
	}
}

// startTestServer starts the server with the given environment and stops it when the test ends.
func startTestServer(t *testing.T, lookupEnv func(string) (string, bool)) *e2etest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	server, err := e2etest.StartServer(ctx, io.Discard, lookupEnv, run)
	if err != nil {
		cancel()
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		cancel()
		require.NoError(t, server.Wait())
	})
	return server
}
