package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ainewsagg/internal/models"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStorage persists articles and user lists in a single SQLite
// database. SQLite's unique constraint on source_id is the sole guard
// against duplicate ingestion, including overlapping aggregation runs.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dataDir string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "ainews.db")
	log.Printf("Initializing database at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_synchronous=NORMAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func createTables(db *sql.DB) error {
	articlesTable := `
	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'other',
		relevance_score INTEGER NOT NULL DEFAULT 50,
		industries TEXT NOT NULL DEFAULT '[]',
		published_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	userListTables := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		article_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE CASCADE,
		UNIQUE(user_id, article_id)
	);

	CREATE TABLE IF NOT EXISTS reading_list (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		article_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE CASCADE,
		UNIQUE(user_id, article_id)
	);

	CREATE TABLE IF NOT EXISTS read_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		article_id INTEGER NOT NULL,
		read_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE CASCADE,
		UNIQUE(user_id, article_id)
	);`

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_articles_relevance ON articles(relevance_score DESC, published_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);",
		"CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC);",
		"CREATE INDEX IF NOT EXISTS idx_bookmarks_user ON bookmarks(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_reading_list_user ON reading_list(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_read_history_user ON read_history(user_id);",
	}

	if _, err := db.Exec(articlesTable); err != nil {
		return fmt.Errorf("failed to create articles table: %v", err)
	}

	if _, err := db.Exec(userListTables); err != nil {
		return fmt.Errorf("failed to create user list tables: %v", err)
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %v", err)
		}
	}

	return nil
}

// InsertArticle stores one article. A unique-constraint violation on
// source_id is reported as ErrDuplicateArticle so callers can distinguish
// the expected steady-state outcome from real storage failures.
func (s *SQLiteStorage) InsertArticle(article *models.Article) error {
	industries, err := json.Marshal(article.Industries)
	if err != nil {
		return fmt.Errorf("failed to encode industries: %v", err)
	}

	result, err := s.db.Exec(`
		INSERT INTO articles (source_id, title, description, content, summary, url, image_url, source, author, category, relevance_score, industries, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.SourceID, article.Title, article.Description, article.Content,
		article.Summary, article.URL, article.ImageURL, article.Source,
		article.Author, string(article.Category), article.RelevanceScore,
		string(industries), article.PublishedAt.UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateArticle
		}
		return fmt.Errorf("failed to insert article: %v", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		article.ID = id
	}
	return nil
}

// SetArticleSummary backfills a lazily generated summary. It only writes
// when no summary is stored yet; pipeline-owned fields stay untouched.
func (s *SQLiteStorage) SetArticleSummary(id int64, summary string) error {
	result, err := s.db.Exec(
		"UPDATE articles SET summary = ? WHERE id = ? AND summary = ''",
		summary, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set summary: %v", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		log.Printf("Summary for article %d already set, keeping existing value", id)
	}
	return nil
}

func buildArticleFilter(filter models.ArticleFilter) (string, []interface{}) {
	where := ""
	var args []interface{}

	add := func(clause string, clauseArgs ...interface{}) {
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
		args = append(args, clauseArgs...)
	}

	if filter.Category != "" {
		add("category = ?", string(filter.Category))
	}
	if filter.Industry != "" {
		// Industries are stored as a JSON array; match the quoted tag.
		add("industries LIKE ?", `%"`+string(filter.Industry)+`"%`)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		add("(title LIKE ? OR description LIKE ?)", like, like)
	}
	if !filter.Since.IsZero() {
		add("published_at >= ?", filter.Since.UTC())
	}

	return where, args
}

// ListArticles returns stored articles matching the filter, ordered by
// relevance score descending, then publish time descending.
func (s *SQLiteStorage) ListArticles(filter models.ArticleFilter) ([]models.Article, error) {
	where, args := buildArticleFilter(filter)

	query := `
		SELECT id, source_id, title, description, content, summary, url, image_url, source, author, category, relevance_score, industries, published_at, created_at
		FROM articles` + where + `
		ORDER BY relevance_score DESC, published_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %v", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

func (s *SQLiteStorage) CountArticles(filter models.ArticleFilter) (int, error) {
	where, args := buildArticleFilter(filter)

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM articles"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %v", err)
	}
	return count, nil
}

func (s *SQLiteStorage) GetArticleByID(id int64) (*models.Article, error) {
	row := s.db.QueryRow(`
		SELECT id, source_id, title, description, content, summary, url, image_url, source, author, category, relevance_score, industries, published_at, created_at
		FROM articles WHERE id = ?`, id)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// LastAggregationTime returns the most recent article ingestion time, or
// the zero time when the store is empty.
func (s *SQLiteStorage) LastAggregationTime() (time.Time, error) {
	var last sql.NullTime
	err := s.db.QueryRow("SELECT MAX(created_at) FROM articles").Scan(&last)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last aggregation time: %v", err)
	}
	if !last.Valid {
		return time.Time{}, nil
	}
	return last.Time, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	var category, industries string

	err := row.Scan(
		&article.ID, &article.SourceID, &article.Title, &article.Description,
		&article.Content, &article.Summary, &article.URL, &article.ImageURL,
		&article.Source, &article.Author, &category, &article.RelevanceScore,
		&industries, &article.PublishedAt, &article.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan article: %v", err)
	}

	article.Category = models.Category(category)
	if err := json.Unmarshal([]byte(industries), &article.Industries); err != nil {
		log.Printf("Warning: invalid industries payload for article %d: %v", article.ID, err)
		article.Industries = []models.Industry{}
	}
	return &article, nil
}

// User list operations. Inserts are idempotent: the UNIQUE(user_id,
// article_id) constraint plus OR IGNORE make re-adding a no-op.

func (s *SQLiteStorage) AddBookmark(userID, articleID int64) error {
	return s.addListEntry("bookmarks", userID, articleID)
}

func (s *SQLiteStorage) RemoveBookmark(userID, articleID int64) error {
	return s.removeListEntry("bookmarks", userID, articleID)
}

func (s *SQLiteStorage) ListBookmarks(userID int64) ([]models.SavedArticle, error) {
	return s.listSaved("bookmarks", "created_at", userID)
}

func (s *SQLiteStorage) IsBookmarked(userID, articleID int64) (bool, error) {
	return s.hasListEntry("bookmarks", userID, articleID)
}

func (s *SQLiteStorage) AddToReadingList(userID, articleID int64) error {
	return s.addListEntry("reading_list", userID, articleID)
}

func (s *SQLiteStorage) RemoveFromReadingList(userID, articleID int64) error {
	return s.removeListEntry("reading_list", userID, articleID)
}

func (s *SQLiteStorage) ListReadingList(userID int64) ([]models.SavedArticle, error) {
	return s.listSaved("reading_list", "created_at", userID)
}

func (s *SQLiteStorage) IsInReadingList(userID, articleID int64) (bool, error) {
	return s.hasListEntry("reading_list", userID, articleID)
}

func (s *SQLiteStorage) MarkAsRead(userID, articleID int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO read_history (user_id, article_id) VALUES (?, ?)",
		userID, articleID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark article as read: %v", err)
	}
	return nil
}

func (s *SQLiteStorage) ListReadHistory(userID int64) ([]models.SavedArticle, error) {
	return s.listSaved("read_history", "read_at", userID)
}

func (s *SQLiteStorage) IsRead(userID, articleID int64) (bool, error) {
	return s.hasListEntry("read_history", userID, articleID)
}

func (s *SQLiteStorage) addListEntry(table string, userID, articleID int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO "+table+" (user_id, article_id) VALUES (?, ?)",
		userID, articleID,
	)
	if err != nil {
		return fmt.Errorf("failed to add to %s: %v", table, err)
	}
	return nil
}

func (s *SQLiteStorage) removeListEntry(table string, userID, articleID int64) error {
	_, err := s.db.Exec(
		"DELETE FROM "+table+" WHERE user_id = ? AND article_id = ?",
		userID, articleID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %v", table, err)
	}
	return nil
}

func (s *SQLiteStorage) hasListEntry(table string, userID, articleID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM "+table+" WHERE user_id = ? AND article_id = ?",
		userID, articleID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %v", table, err)
	}
	return count > 0, nil
}

func (s *SQLiteStorage) listSaved(table, timeColumn string, userID int64) ([]models.SavedArticle, error) {
	query := fmt.Sprintf(`
		SELECT a.id, a.source_id, a.title, a.description, a.content, a.summary, a.url, a.image_url, a.source, a.author, a.category, a.relevance_score, a.industries, a.published_at, a.created_at, l.%s
		FROM %s l
		INNER JOIN articles a ON a.id = l.article_id
		WHERE l.user_id = ?
		ORDER BY l.%s DESC`, timeColumn, table, timeColumn)

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %v", table, err)
	}
	defer rows.Close()

	var saved []models.SavedArticle
	for rows.Next() {
		var item models.SavedArticle
		var category, industries string
		err := rows.Scan(
			&item.Article.ID, &item.Article.SourceID, &item.Article.Title,
			&item.Article.Description, &item.Article.Content, &item.Article.Summary,
			&item.Article.URL, &item.Article.ImageURL, &item.Article.Source,
			&item.Article.Author, &category, &item.Article.RelevanceScore,
			&industries, &item.Article.PublishedAt, &item.Article.CreatedAt,
			&item.SavedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %v", table, err)
		}
		item.Article.Category = models.Category(category)
		if err := json.Unmarshal([]byte(industries), &item.Article.Industries); err != nil {
			item.Article.Industries = []models.Industry{}
		}
		saved = append(saved, item)
	}
	return saved, rows.Err()
}

func (s *SQLiteStorage) Ping() error {
	return s.db.Ping()
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
