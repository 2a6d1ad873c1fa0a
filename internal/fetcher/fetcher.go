package fetcher

import (
	"context"
	"unicode/utf8"

	"ainewsagg/internal/models"

	"github.com/mmcdole/gofeed"
)

// Field caps applied before emission to bound storage per item.
const (
	maxDescriptionLength = 5000
	maxContentLength     = 10000
)

// ContentExtractor provides best-effort content extraction and URL
// validation for feed items.
type ContentExtractor interface {
	ValidateURL(url string) bool
	ExtractFeedContent(item *gofeed.Item) (content, excerpt string)
}

// Classifier tags an article candidate with category, score and
// industries. Implementations must degrade to defaults instead of
// failing.
type Classifier interface {
	Classify(ctx context.Context, title, description string) models.Classification
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
