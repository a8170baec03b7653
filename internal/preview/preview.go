// Package preview fetches a profile URL and extracts lightweight page metadata
// (title, description) shown next to a brand-building entry.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for preview requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CareerWizard/1.0)"

// maxBodyBytes bounds how much of a page is read for metadata extraction.
const maxBodyBytes = 2 << 20

// Preview holds the extracted metadata for a profile URL.
type Preview struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	StatusCode  int    `json:"status_code"`
}

// Error represents an error during preview fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("preview error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("preview error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures preview fetching.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // render with a headless browser when plain HTTP yields nothing
}

// DefaultOptions returns sensible defaults for preview fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetch retrieves a profile URL and extracts its page metadata. When the page
// comes back without a usable title and browser rendering is enabled, the URL
// is re-rendered in a headless browser first (profile pages on the big
// platforms are JavaScript-heavy).
func Fetch(ctx context.Context, urlStr string, opts *Options) (*Preview, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, status, err := fetchHTML(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	result := extractMeta(urlStr, html)
	result.StatusCode = status

	if result.Title == "" && opts.UseBrowser {
		rendered, berr := renderWithBrowser(ctx, urlStr, opts.Timeout)
		if berr == nil {
			result = extractMeta(urlStr, rendered)
			result.StatusCode = status
		}
	}

	return result, nil
}

// fetchHTML performs the plain HTTP fetch.
func fetchHTML(ctx context.Context, urlStr string, opts *Options) (string, int, error) {
	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", 0, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", resp.StatusCode, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return string(body), resp.StatusCode, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return string(body), resp.StatusCode, nil
}

// extractMeta pulls title/description metadata out of the page head,
// preferring Open Graph tags over plain HTML ones.
func extractMeta(urlStr, html string) *Preview {
	result := &Preview{URL: urlStr}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return result
	}

	result.Title = metaContent(doc, `meta[property="og:title"]`)
	if result.Title == "" {
		result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	result.Description = metaContent(doc, `meta[property="og:description"]`)
	if result.Description == "" {
		result.Description = metaContent(doc, `meta[name="description"]`)
	}

	result.SiteName = metaContent(doc, `meta[property="og:site_name"]`)

	return result
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
