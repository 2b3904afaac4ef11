package e2etest

import (
	"bufio"
	"context"
	"encoding/json"
	"github.com/PuerkitoBio/goquery"
	"github.com/justinas/nosurf"
	"github.com/myrjola/constellation/internal/errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	readyTimeout  = time.Second
	readyInterval = 100 * time.Millisecond
)

// Client is a cookie-aware HTTP client that remembers the CSRF token of the last page it loaded and sends it with
// every request, like the hx-headers attribute does in the browser.
type Client struct {
	client    *http.Client
	url       string
	csrfToken string
}

func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client:    &http.Client{Jar: jar},
		url:       url,
		csrfToken: "",
	}, nil
}

// WaitForReady polls urlPath until it answers 200 OK or the timeout of one second passes.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	deadline := time.Now().Add(readyTimeout)
	for {
		resp, err := c.Do(ctx, http.MethodGet, urlPath, nil)
		if err == nil {
			status := resp.StatusCode
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if status == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return errors.New("timeout waiting for endpoint to be ready", slog.String("path", urlPath))
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		case <-time.After(readyInterval):
		}
	}
}

// Do sends a request with the remembered CSRF token and the given extra headers.
func (c *Client) Do(ctx context.Context, method, urlPath string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.csrfToken != "" {
		req.Header.Set(nosurf.HeaderName, c.csrfToken)
	}
	// Browsers send the origin with every htmx request.
	req.Header.Set("Origin", c.url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request", slog.String("method", method), slog.String("path", urlPath))
	}
	return resp, nil
}

// GetDoc fetches a full page, remembers its CSRF token and returns the parsed document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Do(ctx, http.MethodGet, urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "get")
	}
	doc, err := readDocument(resp)
	if err != nil {
		return nil, err
	}
	if err = c.rememberCSRFToken(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Hx sends an htmx request and returns the fragment it answers with. The fragment is parsed into the body of a
// document so that it can be queried like a page.
func (c *Client) Hx(ctx context.Context, method, urlPath string) (*goquery.Document, error) {
	header := http.Header{}
	header.Set("HX-Request", "true")
	header.Set("HX-Current-URL", c.url+"/")
	resp, err := c.Do(ctx, method, urlPath, header)
	if err != nil {
		return nil, errors.Wrap(err, "htmx request")
	}
	return readDocument(resp)
}

// Post sends a plain form post, as a browser without JavaScript would, and follows the redirect back to the page.
func (c *Client) Post(ctx context.Context, urlPath string) (*goquery.Document, error) {
	resp, err := c.Do(ctx, http.MethodPost, urlPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "post")
	}
	doc, err := readDocument(resp)
	if err != nil {
		return nil, err
	}
	if err = c.rememberCSRFToken(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Event is one server-sent event.
type Event struct {
	Name string
	Data string
}

// Events opens an event stream and delivers its events until ctx is cancelled or the stream ends. The stream is
// established when Events returns.
func (c *Client) Events(ctx context.Context, urlPath string) (<-chan Event, error) {
	header := http.Header{}
	header.Set("Accept", "text/event-stream")
	resp, err := c.Do(ctx, http.MethodGet, urlPath, header)
	if err != nil {
		return nil, errors.Wrap(err, "open event stream")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	events := make(chan Event)
	go func() {
		defer close(events)
		defer func() { _ = resp.Body.Close() }()
		scanner := bufio.NewScanner(resp.Body)
		var ev Event
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if ev.Data == "" && ev.Name == "" {
					continue
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
				ev = Event{}
			case strings.HasPrefix(line, "event:"):
				ev.Name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				ev.Data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
	}()
	return events, nil
}

func readDocument(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10)) //nolint:mnd // 1 KiB is plenty for an error page.
		return nil, errors.New("unexpected status code",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	return doc, nil
}

// rememberCSRFToken reads the token from the hx-headers attribute of the body.
func (c *Client) rememberCSRFToken(doc *goquery.Document) error {
	raw, ok := doc.Find("body").Attr("hx-headers")
	if !ok {
		return errors.New("hx-headers not found on body")
	}
	var headers map[string]string
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		return errors.Wrap(err, "parse hx-headers")
	}
	token, ok := headers[nosurf.HeaderName]
	if !ok {
		return errors.New("csrf token not found in hx-headers")
	}
	c.csrfToken = token
	return nil
}
