// Package fetch - browser.go provides headless browser rendering for JavaScript-built sites.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted text length for a plain HTTP fetch
// to count as a rendered page. Shorter pages are likely client-side rendered.
const MinContentLength = 200

// BrowserTimeout bounds a single headless render.
const BrowserTimeout = 20 * time.Second

// ShouldUseBrowser returns true if the page's visible text is too short,
// indicating the content is rendered by JavaScript.
func ShouldUseBrowser(html string) bool {
	text, err := ExtractMainText(html, nil)
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(text)) < MinContentLength
}

// BrowserRenderer renders pages in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type BrowserRenderer struct {
	Timeout   time.Duration
	UserAgent string
	Verbose   bool
}

// NewBrowserRenderer creates a renderer with the default timeout.
func NewBrowserRenderer(verbose bool) *BrowserRenderer {
	return &BrowserRenderer{Timeout: BrowserTimeout, UserAgent: DefaultUserAgent, Verbose: verbose}
}

// Render navigates to a URL and returns the rendered HTML.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	return WithBrowser(ctx, url, b.Timeout, b.UserAgent, b.Verbose)
}

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, userAgent string, verbose bool) (string, error) {
	if verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}
