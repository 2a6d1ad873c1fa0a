package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ainewsagg/internal/config"
	"ainewsagg/internal/models"

	"github.com/mmcdole/gofeed"
)

// arxivScore is the fixed relevance score for ArXiv papers; research
// papers get a high default without an LLM call.
const arxivScore = 75

// ArxivFetcher queries the ArXiv search API for recent papers in a fixed
// list of subject categories. ArXiv is trusted as research by
// construction: every emitted article is forced to the research category
// with a fixed score, with no classification call and no reachability
// check.
type ArxivFetcher struct {
	parser     *gofeed.Parser
	apiURL     string
	categories []string
	maxResults int
}

func NewArxivFetcher(cfg config.ArxivConfig) *ArxivFetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: fetchTimeout}
	parser.UserAgent = "AINewsAggregator/1.0"

	return &ArxivFetcher{
		parser:     parser,
		apiURL:     cfg.APIURL,
		categories: cfg.Categories,
		maxResults: cfg.MaxResults,
	}
}

// Fetch queries every configured category, most recent submissions
// first, and returns the normalized article candidates.
func (f *ArxivFetcher) Fetch(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article

	for _, category := range f.categories {
		feed, err := f.parser.ParseURLWithContext(f.queryURL(category), ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query ArXiv category %s: %v", category, err)
		}

		for _, item := range feed.Items {
			if item.Title == "" || item.GUID == "" {
				continue
			}

			publishedAt := time.Now()
			if item.PublishedParsed != nil {
				publishedAt = *item.PublishedParsed
			}

			summary := collapseWhitespace(item.Description)

			// The entry's canonical id URL doubles as the dedup key.
			articles = append(articles, models.Article{
				SourceID:       item.GUID,
				Title:          collapseWhitespace(item.Title),
				Description:    truncate(summary, maxDescriptionLength),
				Content:        truncate(summary, maxContentLength),
				URL:            item.GUID,
				Source:         "ArXiv",
				Author:         itemAuthor(item),
				Category:       models.CategoryResearch,
				RelevanceScore: arxivScore,
				Industries:     []models.Industry{},
				PublishedAt:    publishedAt,
			})
		}
	}

	return articles, nil
}

func (f *ArxivFetcher) queryURL(category string) string {
	params := url.Values{}
	params.Set("search_query", "cat:"+category)
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(f.maxResults))
	return f.apiURL + "?" + params.Encode()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
