package content

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/myrjola/constellation/internal/errors"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxDocumentSize caps the content document, it is a single page worth of text.
const maxDocumentSize = 4 << 20

var ErrUnexpectedStatus = errors.NewSentinel("unexpected status code")

type format int

const (
	formatJSON format = iota
	formatYAML
)

// Loader fetches and parses the content document in one shot. There are no retries.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader. A nil client defaults to a client with a 10-second timeout.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second} //nolint:mnd // 10 seconds
	}
	return &Loader{client: client}
}

// Load reads the document from source, which is either an http(s) URL or a path on the local file system.
//
// JSON is the default format. Sources ending in .yaml or .yml, or served with a YAML content type, are parsed as YAML.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	var (
		raw []byte
		f   format
		err error
	)
	if isRemote(source) {
		raw, f, err = l.fetch(ctx, source)
	} else {
		raw, f, err = readFile(source)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read content", slog.String("source", source))
	}

	doc, err := parse(raw, f)
	if err != nil {
		return nil, errors.Wrap(err, "parse content", slog.String("source", source))
	}
	return doc, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, formatJSON, errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, formatJSON, errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, formatJSON, errors.Wrap(ErrUnexpectedStatus, "fetch content", slog.Int("status", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, formatJSON, errors.Wrap(err, "read body")
	}

	f := formatFromPath(req.URL.Path)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		f = formatYAML
	}
	return raw, f, nil
}

func readFile(path string) ([]byte, format, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, formatJSON, errors.Wrap(err, "read file")
	}
	return raw, formatFromPath(path), nil
}

func formatFromPath(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func parse(raw []byte, f format) (*Document, error) {
	var doc Document
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal yaml")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal json")
		}
	}
	return &doc, nil
}
