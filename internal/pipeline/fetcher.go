package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/miguelito4/herodotus-quotes/internal/cache"
	"github.com/miguelito4/herodotus-quotes/internal/model"
	"github.com/miguelito4/herodotus-quotes/internal/util"
	"github.com/miguelito4/herodotus-quotes/internal/worker"
)

// Fetcher downloads source-text volumes. Fetches honor robots.txt, are rate
// limited per host, and go through the layered cache so repeated extraction
// runs do not re-download multi-megabyte volumes.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewFetcher creates a fetcher. fetchCache may be nil to disable caching.
func NewFetcher(cfg model.HTTPConfig, fetchCache cache.Cache) *Fetcher {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, ""),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		cache:     fetchCache,
		robots:    util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(rps, 2),
	}
}

// Fetch retrieves one volume as plain text. HTML responses are stripped to
// visible text so either edition of the source works.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.cache != nil {
		if data, found := f.cache.Get(cache.Key(rawURL)); found {
			return string(data), nil
		}
	}

	if !f.robots.IsAllowed(ctx, rawURL) {
		return "", fmt.Errorf("fetch %s: disallowed by robots.txt", rawURL)
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	body, contentType, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text := body
	if looksLikeHTML(contentType, body) {
		text, err = stripHTML(body)
		if err != nil {
			return "", fmt.Errorf("strip HTML: %w", err)
		}
	}

	if f.cache != nil {
		_ = f.cache.Set(cache.Key(rawURL), []byte(text), 0)
	}
	return text, nil
}

// fetchWithRetry retries transient (5xx and transport) failures with a short
// backoff.
func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) (string, string, error) {
	var lastErr error
	delay := 500 * time.Millisecond

	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", "", ctx.Err()
			}
			delay *= 2
		}

		body, contentType, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (body, contentType string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/plain,text/html;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", true, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", resp.StatusCode >= 500, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", "", true, fmt.Errorf("read body: %w", err)
	}

	return string(data), resp.Header.Get("Content-Type"), false, nil
}

func looksLikeHTML(contentType, body string) bool {
	if strings.Contains(contentType, "text/html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// stripHTML reduces an HTML document to its visible text, skipping script and
// style subtrees.
func stripHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String(), nil
}
