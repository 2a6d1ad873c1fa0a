package api

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"ainewsagg/internal/models"

	"github.com/gin-gonic/gin"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	PubDate     string    `xml:"pubDate"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	GUID        rssGUID    `xml:"guid"`
	PubDate     string     `xml:"pubDate"`
	Description string     `xml:"description"`
	Category    string     `xml:"category,omitempty"`
	Source      *rssSource `xml:"source,omitempty"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssSource struct {
	URL   string `xml:"url,attr"`
	Value string `xml:",chardata"`
}

// exportRSS republishes stored articles as an RSS 2.0 feed. Source IDs
// become item GUIDs so downstream readers dedup the same way we do.
func (s *Server) exportRSS(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	filter := models.ArticleFilter{Limit: limit}
	if category := c.Query("category"); category != "" && category != "all" {
		filter.Category = models.Category(category)
	}

	articles, err := s.storage.ListArticles(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]rssItem, 0, len(articles))
	for _, article := range articles {
		item := rssItem{
			Title:       article.Title,
			Link:        article.URL,
			GUID:        rssGUID{IsPermaLink: "false", Value: article.SourceID},
			PubDate:     article.PublishedAt.Format(time.RFC1123Z),
			Description: article.Description,
			Category:    string(article.Category),
		}
		if article.Source != "" {
			item.Source = &rssSource{URL: article.URL, Value: article.Source}
		}
		items = append(items, item)
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "AI News Aggregator",
			Link:        s.baseURL,
			Description: "Aggregated AI news from RSS feeds and ArXiv",
			Language:    "en-us",
			PubDate:     time.Now().Format(time.RFC1123Z),
			Items:       items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render feed"})
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), output...))
}
