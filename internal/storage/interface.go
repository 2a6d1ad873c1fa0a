package storage

import (
	"errors"
	"time"

	"ainewsagg/internal/models"
)

// ErrDuplicateArticle signals that an article with the same source ID is
// already stored. Callers treat it as "already exists", not as a failure.
var ErrDuplicateArticle = errors.New("article already exists")

// ErrNotFound signals that a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage defines the persistence contract for the aggregation pipeline
// and its consumers. The pipeline only ever inserts articles; it never
// deletes or bulk-updates them.
type Storage interface {
	// Article write path
	InsertArticle(article *models.Article) error
	SetArticleSummary(id int64, summary string) error

	// Article read path
	ListArticles(filter models.ArticleFilter) ([]models.Article, error)
	CountArticles(filter models.ArticleFilter) (int, error)
	GetArticleByID(id int64) (*models.Article, error)
	LastAggregationTime() (time.Time, error)

	// User lists (consumers of articles by id)
	AddBookmark(userID, articleID int64) error
	RemoveBookmark(userID, articleID int64) error
	ListBookmarks(userID int64) ([]models.SavedArticle, error)
	IsBookmarked(userID, articleID int64) (bool, error)

	AddToReadingList(userID, articleID int64) error
	RemoveFromReadingList(userID, articleID int64) error
	ListReadingList(userID int64) ([]models.SavedArticle, error)
	IsInReadingList(userID, articleID int64) (bool, error)

	MarkAsRead(userID, articleID int64) error
	ListReadHistory(userID int64) ([]models.SavedArticle, error)
	IsRead(userID, articleID int64) (bool, error)

	Ping() error
	Close() error
}
