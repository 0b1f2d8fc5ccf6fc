// Package fetch retrieves web pages and reduces them to plain text. The
// recruiter search uses it to scan careers and contact pages for addresses.
package fetch

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

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; FollowupAgent/1.0)"

// maxBodyBytes caps how much of a page is read. Contact pages are small;
// anything larger is not worth scanning.
const maxBodyBytes = 2 << 20

// Result holds the raw and processed content from a URL fetch.
type Result struct {
	URL        string
	HTML       string
	Text       string
	StatusCode int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// UseBrowserFallback renders JavaScript-heavy pages in a headless
	// browser when the plain HTTP fetch yields too little text.
	UseBrowserFallback bool
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// URL retrieves a page and extracts its visible text.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	html := string(bodyBytes)
	text, err := ExtractText(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if opts.UseBrowserFallback && ShouldUseBrowser(text) {
		rendered, berr := WithBrowser(ctx, urlStr, opts.Timeout)
		if berr == nil {
			if renderedText, terr := ExtractText(rendered); terr == nil {
				html = rendered
				text = renderedText
			}
		}
	}

	return &Result{
		URL:        urlStr,
		HTML:       html,
		Text:       text,
		StatusCode: resp.StatusCode,
	}, nil
}

// ExtractText strips markup and scripting from HTML and returns the visible
// text with collapsed whitespace.
func ExtractText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	return strings.Join(strings.Fields(text), " "), nil
}
