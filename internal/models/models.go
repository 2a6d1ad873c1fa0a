package models

import (
	"time"
)

// Category classifies an article into one of a fixed set of buckets.
type Category string

const (
	CategoryBreakthrough Category = "breakthrough"
	CategoryCompany      Category = "company_announcement"
	CategoryPolicy       Category = "policy"
	CategoryFunding      Category = "funding"
	CategoryResearch     Category = "research"
	CategoryOther        Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryBreakthrough,
	CategoryCompany,
	CategoryPolicy,
	CategoryFunding,
	CategoryResearch,
	CategoryOther,
}

// Valid reports whether c is a member of the fixed category enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Industry tags an article with a business sector it is relevant to.
type Industry string

const (
	IndustryOilGas        Industry = "oil_gas"
	IndustryMedical       Industry = "medical"
	IndustryHospitality   Industry = "hospitality"
	IndustryRealEstate    Industry = "real_estate"
	IndustryEducation     Industry = "education"
	IndustryFinance       Industry = "finance"
	IndustryTechnology    Industry = "technology"
	IndustryManufacturing Industry = "manufacturing"
	IndustryRetail        Industry = "retail"
	IndustryOther         Industry = "other"
)

// Industries lists every valid industry tag.
var Industries = []Industry{
	IndustryOilGas,
	IndustryMedical,
	IndustryHospitality,
	IndustryRealEstate,
	IndustryEducation,
	IndustryFinance,
	IndustryTechnology,
	IndustryManufacturing,
	IndustryRetail,
	IndustryOther,
}

// Valid reports whether i is a member of the fixed industry enumeration.
func (i Industry) Valid() bool {
	for _, known := range Industries {
		if i == known {
			return true
		}
	}
	return false
}

// Article is a single aggregated news item. SourceID is the natural
// deduplication key: no two stored articles may share it.
type Article struct {
	ID             int64      `json:"id"`
	SourceID       string     `json:"source_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Content        string     `json:"content"`
	Summary        string     `json:"summary,omitempty"`
	URL            string     `json:"url"`
	ImageURL       string     `json:"image_url,omitempty"`
	Source         string     `json:"source"`
	Author         string     `json:"author,omitempty"`
	Category       Category   `json:"category"`
	RelevanceScore int        `json:"relevance_score"`
	Industries     []Industry `json:"industries"`
	PublishedAt    time.Time  `json:"published_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Classification is the structured result of an LLM classification call.
type Classification struct {
	Category   Category   `json:"category"`
	Score      int        `json:"score"`
	Industries []Industry `json:"industries"`
}

// DefaultClassification is returned when classification fails for any
// reason; the article is still ingested with these values.
func DefaultClassification() Classification {
	return Classification{
		Category:   CategoryOther,
		Score:      50,
		Industries: []Industry{},
	}
}

// ArticleFilter narrows article listings. Zero values mean "no constraint".
type ArticleFilter struct {
	Category Category
	Industry Industry
	Search   string
	Since    time.Time
	Limit    int
	Offset   int
}

// Summary reports the outcome of one aggregation run.
type Summary struct {
	Total  int `json:"total"`
	New    int `json:"new"`
	Errors int `json:"errors"`
}

// ReadableContent is the result of a reader-mode extraction from an
// article's original URL.
type ReadableContent struct {
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Content     string `json:"content"`
	TextContent string `json:"text_content"`
	Length      int    `json:"length"`
}

// Bookmark associates a user with a saved article.
type Bookmark struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ArticleID int64     `json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadingListItem marks an article as saved for later reading.
type ReadingListItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ArticleID int64     `json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadHistoryItem records that a user has read an article.
type ReadHistoryItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ArticleID int64     `json:"article_id"`
	ReadAt    time.Time `json:"read_at"`
}

// SavedArticle pairs an article with the time it entered a user list.
type SavedArticle struct {
	Article Article   `json:"article"`
	SavedAt time.Time `json:"saved_at"`
}
