package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"ainewsagg/internal/config"
	"ainewsagg/internal/models"

	"github.com/mmcdole/gofeed"
)

const fetchTimeout = 10 * time.Second

// RSSFetcher pulls items from a standard RSS/Atom feed and normalizes
// them into article candidates. Items lacking a title or link are
// silently dropped; items whose link fails reachability validation are
// skipped and logged.
type RSSFetcher struct {
	parser     *gofeed.Parser
	extractor  ContentExtractor
	classifier Classifier
}

func NewRSSFetcher(extractor ContentExtractor, classifier Classifier) *RSSFetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}
	parser.UserAgent = "AINewsAggregator/1.0"

	return &RSSFetcher{
		parser:     parser,
		extractor:  extractor,
		classifier: classifier,
	}
}

// Fetch parses one feed and emits classified article candidates.
func (f *RSSFetcher) Fetch(ctx context.Context, source config.FeedSource) ([]models.Article, error) {
	feed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %v", source.URL, err)
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		publishedAt := time.Now()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		content, excerpt := f.extractor.ExtractFeedContent(item)
		description := excerpt

		if !f.extractor.ValidateURL(item.Link) {
			log.Printf("Skipping article with unreachable URL: %s", item.Title)
			continue
		}

		classification := f.classifier.Classify(ctx, item.Title, description)

		sourceID := item.GUID
		if sourceID == "" {
			sourceID = item.Link
		}

		articles = append(articles, models.Article{
			SourceID:       sourceID,
			Title:          item.Title,
			Description:    truncate(description, maxDescriptionLength),
			Content:        truncate(content, maxContentLength),
			URL:            item.Link,
			ImageURL:       extractImageURL(item),
			Source:         source.Name,
			Author:         itemAuthor(item),
			Category:       classification.Category,
			RelevanceScore: classification.Score,
			Industries:     classification.Industries,
			PublishedAt:    publishedAt,
		})
	}

	return articles, nil
}

// extractImageURL resolves an article image by checking media:content,
// media:thumbnail, then enclosure, in that priority order.
func extractImageURL(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if url := ext.Attrs["url"]; url != "" {
				return url
			}
		}
		for _, ext := range media["thumbnail"] {
			if url := ext.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure.URL != "" {
			return enclosure.URL
		}
	}
	return ""
}

func itemAuthor(item *gofeed.Item) string {
	var names []string
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			names = append(names, author.Name)
		}
	}
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}

	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}
