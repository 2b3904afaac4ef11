// Package e2etest starts the web server in-process and drives it over HTTP the way htmx in a browser would.
package e2etest

import (
	"context"
	"fmt"
	"github.com/myrjola/constellation/internal/errors"
	"github.com/myrjola/constellation/internal/logging"
	"io"
	"log/slog"
)

// LogAddrKey is the key used to log the address the server is listening on.
const LogAddrKey = "addr"

type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

type Server struct {
	url    string
	client *Client
	done   chan error
}

// StartServer starts the server, waits for it to be ready and returns a handle for testing. The server stops when
// ctx is cancelled.
//
// logSink receives the server logs, usually [io.Discard]. lookupEnv has the same signature as [os.LookupEnv]. run
// starts the server, which is expected to log the address it listens on under [LogAddrKey]. That is how the
// dynamically allocated port is discovered.
func StartServer(
	ctx context.Context,
	logSink io.Writer,
	lookupEnv func(string) (string, bool),
	run RunFunc,
) (*Server, error) {
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == LogAddrKey {
				select {
				case addrCh <- a.Value.String():
				default:
				}
			}
			return a
		},
	})))

	s := &Server{done: make(chan error, 1)} //nolint:exhaustruct // filled in once the address is known.
	go func() {
		s.done <- run(ctx, logger, lookupEnv)
	}()

	select {
	case err := <-s.done:
		return nil, errors.Wrap(err, "server exited before it was ready")
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "context cancelled")
	case addr := <-addrCh:
		s.url = fmt.Sprintf("http://%s", addr)
	}

	var err error
	if s.client, err = NewClient(s.url); err != nil {
		return nil, errors.Wrap(err, "new client")
	}
	if err = s.client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, errors.Wrap(err, "wait for ready")
	}
	return s, nil
}

// Client returns the client bound to the server. Every client has its own cookie jar and thus its own viewer.
func (s *Server) Client() *Client {
	return s.client
}

// NewClient returns a fresh client, a new viewer from the server's point of view.
func (s *Server) NewClient() (*Client, error) {
	return NewClient(s.url)
}

func (s *Server) URL() string {
	return s.url
}

// Wait blocks until the server has shut down and returns its exit error.
func (s *Server) Wait() error {
	return <-s.done
}
