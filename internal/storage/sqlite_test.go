package storage

import (
	"errors"
	"testing"
	"time"

	"ainewsagg/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func testArticle(sourceID string) *models.Article {
	return &models.Article{
		SourceID:       sourceID,
		Title:          "Test Article " + sourceID,
		Description:    "A test description",
		Content:        "Test content",
		URL:            "https://example.com/" + sourceID,
		Source:         "TestSource",
		Category:       models.CategoryOther,
		RelevanceScore: 50,
		Industries:     []models.Industry{},
		PublishedAt:    time.Now().UTC(),
	}
}

func TestInsertArticle(t *testing.T) {
	store := newTestStorage(t)

	article := testArticle("article-1")
	if err := store.InsertArticle(article); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	if article.ID == 0 {
		t.Error("Expected article ID to be assigned after insert")
	}
}

func TestInsertArticleDuplicate(t *testing.T) {
	store := newTestStorage(t)

	first := testArticle("dup-1")
	first.Title = "Original Title"
	if err := store.InsertArticle(first); err != nil {
		t.Fatalf("Failed to insert first article: %v", err)
	}

	second := testArticle("dup-1")
	second.Title = "Replacement Title"
	err := store.InsertArticle(second)
	if !errors.Is(err, ErrDuplicateArticle) {
		t.Fatalf("Expected ErrDuplicateArticle, got %v", err)
	}

	// The first insert wins; the stored row is untouched.
	stored, err := store.GetArticleByID(first.ID)
	if err != nil {
		t.Fatalf("Failed to fetch stored article: %v", err)
	}
	if stored.Title != "Original Title" {
		t.Errorf("Expected original title to survive duplicate insert, got %q", stored.Title)
	}

	count, err := store.CountArticles(models.ArticleFilter{})
	if err != nil {
		t.Fatalf("Failed to count articles: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 stored article, got %d", count)
	}
}

func TestGetArticleByIDNotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetArticleByID(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListArticlesOrdering(t *testing.T) {
	store := newTestStorage(t)

	now := time.Now().UTC()

	low := testArticle("low")
	low.RelevanceScore = 30
	low.PublishedAt = now

	highOld := testArticle("high-old")
	highOld.RelevanceScore = 90
	highOld.PublishedAt = now.Add(-2 * time.Hour)

	highNew := testArticle("high-new")
	highNew.RelevanceScore = 90
	highNew.PublishedAt = now

	for _, article := range []*models.Article{low, highOld, highNew} {
		if err := store.InsertArticle(article); err != nil {
			t.Fatalf("Failed to insert article %s: %v", article.SourceID, err)
		}
	}

	articles, err := store.ListArticles(models.ArticleFilter{})
	if err != nil {
		t.Fatalf("Failed to list articles: %v", err)
	}

	if len(articles) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(articles))
	}

	// Relevance descending, then publish time descending.
	if articles[0].SourceID != "high-new" || articles[1].SourceID != "high-old" || articles[2].SourceID != "low" {
		t.Errorf("Unexpected ordering: %s, %s, %s",
			articles[0].SourceID, articles[1].SourceID, articles[2].SourceID)
	}
}

func TestListArticlesFilters(t *testing.T) {
	store := newTestStorage(t)

	research := testArticle("research-1")
	research.Category = models.CategoryResearch
	research.Title = "New transformer architecture"
	research.Industries = []models.Industry{models.IndustryTechnology, models.IndustryMedical}

	funding := testArticle("funding-1")
	funding.Category = models.CategoryFunding
	funding.Title = "Startup raises series B"
	funding.Industries = []models.Industry{models.IndustryFinance}

	old := testArticle("old-1")
	old.Category = models.CategoryResearch
	old.PublishedAt = time.Now().UTC().Add(-72 * time.Hour)

	for _, article := range []*models.Article{research, funding, old} {
		if err := store.InsertArticle(article); err != nil {
			t.Fatalf("Failed to insert article %s: %v", article.SourceID, err)
		}
	}

	byCategory, err := store.ListArticles(models.ArticleFilter{Category: models.CategoryFunding})
	if err != nil {
		t.Fatalf("Failed to filter by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].SourceID != "funding-1" {
		t.Errorf("Expected only funding-1 for category filter, got %d articles", len(byCategory))
	}

	byIndustry, err := store.ListArticles(models.ArticleFilter{Industry: models.IndustryMedical})
	if err != nil {
		t.Fatalf("Failed to filter by industry: %v", err)
	}
	if len(byIndustry) != 1 || byIndustry[0].SourceID != "research-1" {
		t.Errorf("Expected only research-1 for industry filter, got %d articles", len(byIndustry))
	}

	bySearch, err := store.ListArticles(models.ArticleFilter{Search: "transformer"})
	if err != nil {
		t.Fatalf("Failed to filter by search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].SourceID != "research-1" {
		t.Errorf("Expected only research-1 for search filter, got %d articles", len(bySearch))
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	recent, err := store.ListArticles(models.ArticleFilter{Since: since})
	if err != nil {
		t.Fatalf("Failed to filter by time: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("Expected 2 recent articles, got %d", len(recent))
	}

	count, err := store.CountArticles(models.ArticleFilter{Category: models.CategoryResearch, Since: since})
	if err != nil {
		t.Fatalf("Failed to count with combined filter: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected combined filter count 1, got %d", count)
	}
}

func TestListArticlesPagination(t *testing.T) {
	store := newTestStorage(t)

	for i := 0; i < 5; i++ {
		article := testArticle("page-" + string(rune('a'+i)))
		article.RelevanceScore = 90 - i*10
		if err := store.InsertArticle(article); err != nil {
			t.Fatalf("Failed to insert article: %v", err)
		}
	}

	page, err := store.ListArticles(models.ArticleFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Failed to list page: %v", err)
	}

	if len(page) != 2 {
		t.Fatalf("Expected 2 articles in page, got %d", len(page))
	}
	if page[0].RelevanceScore != 70 {
		t.Errorf("Expected page to start at score 70, got %d", page[0].RelevanceScore)
	}
}

func TestSetArticleSummary(t *testing.T) {
	store := newTestStorage(t)

	article := testArticle("summary-1")
	if err := store.InsertArticle(article); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	if err := store.SetArticleSummary(article.ID, "First summary"); err != nil {
		t.Fatalf("Failed to set summary: %v", err)
	}

	// A second write is a no-op: the first summary sticks.
	if err := store.SetArticleSummary(article.ID, "Second summary"); err != nil {
		t.Fatalf("Unexpected error on repeated summary write: %v", err)
	}

	stored, err := store.GetArticleByID(article.ID)
	if err != nil {
		t.Fatalf("Failed to fetch article: %v", err)
	}
	if stored.Summary != "First summary" {
		t.Errorf("Expected first summary to be kept, got %q", stored.Summary)
	}
}

func TestIndustriesRoundTrip(t *testing.T) {
	store := newTestStorage(t)

	article := testArticle("industries-1")
	article.Industries = []models.Industry{models.IndustryFinance, models.IndustryRetail}
	if err := store.InsertArticle(article); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	stored, err := store.GetArticleByID(article.ID)
	if err != nil {
		t.Fatalf("Failed to fetch article: %v", err)
	}

	if len(stored.Industries) != 2 {
		t.Fatalf("Expected 2 industries, got %d", len(stored.Industries))
	}
	if stored.Industries[0] != models.IndustryFinance || stored.Industries[1] != models.IndustryRetail {
		t.Errorf("Industry order not preserved: %v", stored.Industries)
	}
}

func TestLastAggregationTime(t *testing.T) {
	store := newTestStorage(t)

	last, err := store.LastAggregationTime()
	if err != nil {
		t.Fatalf("Failed to query last aggregation time: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("Expected zero time for empty store, got %v", last)
	}

	if err := store.InsertArticle(testArticle("time-1")); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	last, err = store.LastAggregationTime()
	if err != nil {
		t.Fatalf("Failed to query last aggregation time: %v", err)
	}
	if last.IsZero() {
		t.Error("Expected non-zero time after insert")
	}
}

func TestBookmarks(t *testing.T) {
	store := newTestStorage(t)

	article := testArticle("bookmark-1")
	if err := store.InsertArticle(article); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	const userID = int64(7)

	bookmarked, err := store.IsBookmarked(userID, article.ID)
	if err != nil {
		t.Fatalf("Failed to check bookmark: %v", err)
	}
	if bookmarked {
		t.Error("Expected article not to be bookmarked initially")
	}

	if err := store.AddBookmark(userID, article.ID); err != nil {
		t.Fatalf("Failed to add bookmark: %v", err)
	}

	// Re-adding is a no-op.
	if err := store.AddBookmark(userID, article.ID); err != nil {
		t.Fatalf("Unexpected error on repeated bookmark: %v", err)
	}

	saved, err := store.ListBookmarks(userID)
	if err != nil {
		t.Fatalf("Failed to list bookmarks: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("Expected 1 bookmark, got %d", len(saved))
	}
	if saved[0].Article.SourceID != "bookmark-1" {
		t.Errorf("Unexpected bookmarked article: %q", saved[0].Article.SourceID)
	}
	if saved[0].SavedAt.IsZero() {
		t.Error("Expected SavedAt to be populated")
	}

	// Another user sees nothing.
	other, err := store.ListBookmarks(99)
	if err != nil {
		t.Fatalf("Failed to list other user's bookmarks: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no bookmarks for other user, got %d", len(other))
	}

	if err := store.RemoveBookmark(userID, article.ID); err != nil {
		t.Fatalf("Failed to remove bookmark: %v", err)
	}

	bookmarked, err = store.IsBookmarked(userID, article.ID)
	if err != nil {
		t.Fatalf("Failed to check bookmark after removal: %v", err)
	}
	if bookmarked {
		t.Error("Expected bookmark to be removed")
	}
}

func TestReadingListAndHistory(t *testing.T) {
	store := newTestStorage(t)

	article := testArticle("list-1")
	if err := store.InsertArticle(article); err != nil {
		t.Fatalf("Failed to insert article: %v", err)
	}

	const userID = int64(3)

	if err := store.AddToReadingList(userID, article.ID); err != nil {
		t.Fatalf("Failed to add to reading list: %v", err)
	}

	inList, err := store.IsInReadingList(userID, article.ID)
	if err != nil {
		t.Fatalf("Failed to check reading list: %v", err)
	}
	if !inList {
		t.Error("Expected article in reading list")
	}

	if err := store.MarkAsRead(userID, article.ID); err != nil {
		t.Fatalf("Failed to mark as read: %v", err)
	}
	// Marking again is a no-op.
	if err := store.MarkAsRead(userID, article.ID); err != nil {
		t.Fatalf("Unexpected error on repeated mark-as-read: %v", err)
	}

	read, err := store.IsRead(userID, article.ID)
	if err != nil {
		t.Fatalf("Failed to check read state: %v", err)
	}
	if !read {
		t.Error("Expected article to be read")
	}

	history, err := store.ListReadHistory(userID)
	if err != nil {
		t.Fatalf("Failed to list read history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected 1 read history entry, got %d", len(history))
	}

	if err := store.RemoveFromReadingList(userID, article.ID); err != nil {
		t.Fatalf("Failed to remove from reading list: %v", err)
	}

	inList, err = store.IsInReadingList(userID, article.ID)
	if err != nil {
		t.Fatalf("Failed to re-check reading list: %v", err)
	}
	if inList {
		t.Error("Expected article removed from reading list")
	}
}

func TestPing(t *testing.T) {
	store := newTestStorage(t)

	if err := store.Ping(); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}
