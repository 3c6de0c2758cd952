// Package culler checks bookmark URLs for dead links.
package culler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nikbrunner/linkvault/internal/logger"
	"github.com/nikbrunner/linkvault/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Options configures a check run.
type Options struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string // 404s on these domains count as "possibly private" instead of dead
	OnProgress     ProgressFunc
	Client         *http.Client // optional; built from Timeout when nil
	Log            logger.Logger
}

// CheckURLs checks all bookmark URLs concurrently and returns results in
// input order. Cancelling ctx stops outstanding requests; their bookmarks
// are reported as unreachable.
func CheckURLs(ctx context.Context, bookmarks []model.Bookmark, opts Options) []Result {
	if len(bookmarks) == 0 {
		return nil
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 10
	}

	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	// transport errors and unsolicited responses land in the debug log, not the terminal
	defer logger.RedirectStdLog(opts.Log)()

	// Build exclude map for fast lookup
	excludeMap := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excludeMap[strings.ToLower(domain)] = true
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Follow redirects but limit to 10
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	results := make([]Result, len(bookmarks))

	// Progress tracking
	var progressMu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range bookmarks {
		g.Go(func() error {
			results[i] = checkURL(gctx, client, bookmarks[i], excludeMap)

			if opts.OnProgress != nil {
				progressMu.Lock()
				completed++
				opts.OnProgress(completed, len(bookmarks))
				progressMu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// checkURL checks a single URL and returns the result.
func checkURL(ctx context.Context, client *http.Client, bookmark model.Bookmark, excludeMap map[string]bool) Result {
	result := Result{
		Bookmark: bookmark,
	}

	// Try HEAD first (faster, less bandwidth)
	resp, err := do(ctx, client, http.MethodHead, bookmark.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		// HEAD failed, try GET as fallback (some servers don't support HEAD)
		resp, err = do(ctx, client, http.MethodGet, bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		// Check if this domain is excluded (e.g., private repos)
		if isExcludedDomain(bookmark.URL, excludeMap) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// Other errors (500, 403, etc.) - treat as unreachable
		// Could be temporary server issues or auth-required pages
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "linkvault-check/1.0")
	return client.Do(req)
}

// isExcludedDomain checks if the URL's domain is in the exclude list.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	// Check exact match and parent domain (e.g., "api.github.com" matches "github.com")
	if excludeMap[host] {
		return true
	}
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}

// Summary counts results by status.
type Summary struct {
	Healthy, Dead, Unreachable int
}

// Summarize counts results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case Healthy:
			s.Healthy++
		case Dead:
			s.Dead++
		default:
			s.Unreachable++
		}
	}
	return s
}
