package poller

import (
	"context"
	"testing"
	"time"

	"ainewsagg/internal/aggregator"
	"ainewsagg/internal/cache"
	"ainewsagg/internal/config"
	"ainewsagg/internal/models"
	"ainewsagg/internal/storage"
)

type staticRSSFetcher struct {
	articles []models.Article
}

func (f *staticRSSFetcher) Fetch(ctx context.Context, source config.FeedSource) ([]models.Article, error) {
	return f.articles, nil
}

type emptyArxivFetcher struct{}

func (f *emptyArxivFetcher) Fetch(ctx context.Context) ([]models.Article, error) {
	return nil, nil
}

func newTestPoller(t *testing.T, interval time.Duration) *Poller {
	t.Helper()

	store, err := storage.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rss := &staticRSSFetcher{articles: []models.Article{{
		SourceID:       "poll-1",
		Title:          "Polled Article",
		URL:            "https://example.com/poll-1",
		Source:         "Test",
		Category:       models.CategoryOther,
		RelevanceScore: 50,
		Industries:     []models.Industry{},
		PublishedAt:    time.Now().UTC(),
	}}}

	agg := aggregator.New(rss, &emptyArxivFetcher{}, store, cache.NewManager(time.Minute),
		[]config.FeedSource{{Name: "Test", URL: "https://example.com/feed"}})

	return New(agg, interval)
}

func TestPollerStartStop(t *testing.T) {
	p := newTestPoller(t, time.Hour)

	if p.IsRunning() {
		t.Error("Expected poller to not be running before Start")
	}

	p.Start()
	if !p.IsRunning() {
		t.Error("Expected poller to be running after Start")
	}

	// Starting again is a no-op
	p.Start()

	p.Stop()
	if p.IsRunning() {
		t.Error("Expected poller to not be running after Stop")
	}

	// Stopping again is a no-op
	p.Stop()
}

func TestPollerRunsImmediately(t *testing.T) {
	p := newTestPoller(t, time.Hour)

	p.Start()
	defer p.Stop()

	// The first run fires on start, not after the first tick.
	deadline := time.After(5 * time.Second)
	for {
		lastRun, summary := p.LastRun()
		if !lastRun.IsZero() {
			if summary.New != 1 {
				t.Errorf("Expected 1 new article from initial run, got %d", summary.New)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatal("Poller never completed its initial run")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestForceRun(t *testing.T) {
	p := newTestPoller(t, time.Hour)

	summary := p.ForceRun(context.Background())
	if summary.New != 1 {
		t.Errorf("Expected 1 new article from forced run, got %d", summary.New)
	}

	lastRun, lastSummary := p.LastRun()
	if lastRun.IsZero() {
		t.Error("Expected LastRun to be recorded after ForceRun")
	}
	if lastSummary != summary {
		t.Errorf("Expected recorded summary %+v, got %+v", summary, lastSummary)
	}

	// A second forced run finds only duplicates.
	summary = p.ForceRun(context.Background())
	if summary.New != 0 {
		t.Errorf("Expected no new articles on repeated run, got %d", summary.New)
	}
}
