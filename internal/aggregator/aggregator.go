package aggregator

import (
	"context"
	"errors"
	"log"

	"ainewsagg/internal/cache"
	"ainewsagg/internal/config"
	"ainewsagg/internal/models"
	"ainewsagg/internal/storage"
)

// RSSFetcher produces article candidates from one configured feed.
type RSSFetcher interface {
	Fetch(ctx context.Context, source config.FeedSource) ([]models.Article, error)
}

// ArxivFetcher produces article candidates from the ArXiv API.
type ArxivFetcher interface {
	Fetch(ctx context.Context) ([]models.Article, error)
}

// Aggregator drives one full aggregation run: every configured RSS
// source in sequence, then ArXiv, each isolated so that one bad feed
// never blocks ingestion from the rest. Reruns are idempotent because
// the store rejects duplicate source IDs.
type Aggregator struct {
	rss     RSSFetcher
	arxiv   ArxivFetcher
	storage storage.Storage
	cache   *cache.Manager
	feeds   []config.FeedSource
}

func New(rss RSSFetcher, arxiv ArxivFetcher, store storage.Storage, cacheManager *cache.Manager, feeds []config.FeedSource) *Aggregator {
	return &Aggregator{
		rss:     rss,
		arxiv:   arxiv,
		storage: store,
		cache:   cacheManager,
		feeds:   feeds,
	}
}

// Run fetches, classifies, and stores articles from all sources and
// returns the run tally. Sources are processed sequentially to bound
// outbound request concurrency against feed hosts and the LLM backend.
func (a *Aggregator) Run(ctx context.Context) models.Summary {
	log.Printf("Starting news aggregation across %d feeds", len(a.feeds))
	var summary models.Summary

	for _, feed := range a.feeds {
		articles, err := a.rss.Fetch(ctx, feed)
		if err != nil {
			log.Printf("Error processing feed %s: %v", feed.Name, err)
			summary.Errors++
			continue
		}
		summary.Total += len(articles)
		summary.New += a.insertBatch(feed.Name, articles, &summary)
	}

	arxivArticles, err := a.arxiv.Fetch(ctx)
	if err != nil {
		log.Printf("Error processing ArXiv: %v", err)
		summary.Errors++
	} else {
		summary.Total += len(arxivArticles)
		summary.New += a.insertBatch("ArXiv", arxivArticles, &summary)
	}

	if summary.New > 0 {
		a.cache.Flush()
	}

	log.Printf("Aggregation complete: %d fetched, %d new, %d errors",
		summary.Total, summary.New, summary.Errors)
	return summary
}

// insertBatch stores one source's candidates. Duplicate source IDs are
// the expected steady-state outcome of re-running against an unchanged
// feed and are skipped silently; any other insert failure counts one
// error against the batch.
func (a *Aggregator) insertBatch(source string, articles []models.Article, summary *models.Summary) int {
	inserted := 0
	failed := false

	for i := range articles {
		err := a.storage.InsertArticle(&articles[i])
		if errors.Is(err, storage.ErrDuplicateArticle) {
			continue
		}
		if err != nil {
			log.Printf("Error inserting article from %s: %v", source, err)
			failed = true
			continue
		}
		inserted++
	}

	if failed {
		summary.Errors++
	}
	return inserted
}
