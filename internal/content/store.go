package content

import (
	"context"
	"github.com/myrjola/constellation/internal/errors"
	"log/slog"
	"sync/atomic"
)

// Store holds the current content snapshot. A snapshot is never mutated, reloading swaps in a new one.
type Store struct {
	source string
	loader *Loader
	logger *slog.Logger
	doc    atomic.Pointer[Document]
}

func NewStore(source string, loader *Loader, logger *slog.Logger) *Store {
	return &Store{
		source: source,
		loader: loader,
		logger: logger,
		doc:    atomic.Pointer[Document]{},
	}
}

// Load performs the one-shot load of the content document. On failure the error is logged and returned, and the
// store keeps whatever snapshot it had before, nil on the first load, so that the page renders unhydrated.
func (s *Store) Load(ctx context.Context) error {
	doc, err := s.loader.Load(ctx, s.source)
	if err != nil {
		err = errors.Wrap(err, "load content")
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load page content", errors.SlogError(err))
		return err
	}
	s.doc.Store(doc)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "loaded page content",
		slog.String("source", s.source), slog.Int("memories", len(doc.Memories)))
	return nil
}

// Document returns the current snapshot or nil when the content has not been loaded.
func (s *Store) Document() *Document {
	return s.doc.Load()
}

// Source returns where the content is loaded from.
func (s *Store) Source() string {
	return s.source
}

// Remote reports whether the source is fetched over HTTP.
func (s *Store) Remote() bool {
	return isRemote(s.source)
}
