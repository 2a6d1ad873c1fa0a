package extractor

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"ainewsagg/internal/models"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

const (
	validateTimeout = 5 * time.Second
	readerTimeout   = 10 * time.Second
	maxRedirects    = 3
	excerptLength   = 500
	batchSize       = 10

	noExcerpt = "No excerpt available"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Extractor resolves best-effort readable content for feed items and
// validates article URLs. All operations degrade gracefully instead of
// returning errors on bad input or unreachable hosts.
type Extractor struct {
	client *http.Client
}

func New() *Extractor {
	return &Extractor{
		client: &http.Client{
			Timeout: validateTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// ValidateURL issues a lightweight HEAD request to check that a URL is
// reachable. Any network error, timeout, or 4xx/5xx status yields false.
func (e *Extractor) ValidateURL(url string) bool {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "AINewsAggregator/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		log.Printf("URL validation failed for %s: %v", url, err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// BatchValidate checks a list of URLs with bounded concurrency, in
// batches of ten, to avoid overwhelming remote hosts. The result map has
// exactly one entry per input URL.
func (e *Extractor) BatchValidate(urls []string) map[string]bool {
	results := make(map[string]bool, len(urls))
	var mu sync.Mutex

	for start := 0; start < len(urls); start += batchSize {
		end := start + batchSize
		if end > len(urls) {
			end = len(urls)
		}

		var wg sync.WaitGroup
		for _, url := range urls[start:end] {
			wg.Add(1)
			go func(u string) {
				defer wg.Done()
				ok := e.ValidateURL(u)
				mu.Lock()
				results[u] = ok
				mu.Unlock()
			}(url)
		}
		wg.Wait()
	}

	return results
}

// ExtractFeedContent picks the richest content-bearing field of a feed
// item and derives a capped plain-text excerpt from it. It never fails:
// an item with no usable field yields empty content and a placeholder
// excerpt.
func (e *Extractor) ExtractFeedContent(item *gofeed.Item) (content, excerpt string) {
	if item == nil {
		return "", noExcerpt
	}

	candidates := []string{
		encodedContent(item),
		item.Content,
		item.Description,
		item.Custom["summary"],
	}

	for _, candidate := range candidates {
		if len(candidate) > len(content) {
			content = candidate
		}
	}

	excerpt = strings.TrimSpace(tagPattern.ReplaceAllString(content, ""))
	if len(excerpt) > excerptLength {
		// Back up to a rune boundary so the cap never splits a rune.
		cut := excerptLength
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = strings.TrimSpace(excerpt[:cut])
	}
	if excerpt == "" {
		excerpt = noExcerpt
	}
	return content, excerpt
}

// encodedContent returns the content:encoded extension payload, which
// publishers use for the full article body in RSS 2.0 feeds.
func encodedContent(item *gofeed.Item) string {
	exts, ok := item.Extensions["content"]
	if !ok {
		return ""
	}
	for _, ext := range exts["encoded"] {
		if ext.Value != "" {
			return ext.Value
		}
	}
	return ""
}

// ExtractReadable fetches a page and runs readability-style extraction,
// the same approach browser reader modes use. Used only for on-demand
// requests, never on the ingestion path.
func (e *Extractor) ExtractReadable(url string) (*models.ReadableContent, error) {
	article, err := readability.FromURL(url, readerTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content from %s: %v", url, err)
	}

	return &models.ReadableContent{
		Title:       article.Title,
		Byline:      article.Byline,
		Excerpt:     article.Excerpt,
		Content:     article.Content,
		TextContent: article.TextContent,
		Length:      article.Length,
	}, nil
}
