package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"ainewsagg/internal/cache"
	"ainewsagg/internal/config"
	"ainewsagg/internal/models"
	"ainewsagg/internal/poller"
	"ainewsagg/internal/security"
	"ainewsagg/internal/storage"
	"ainewsagg/internal/web"

	"github.com/gin-gonic/gin"
)

// Summarizer generates an on-demand summary for a stored article.
type Summarizer interface {
	Summarize(ctx context.Context, article *models.Article) (string, error)
}

// ReaderExtractor performs reader-mode extraction from an article URL.
type ReaderExtractor interface {
	ExtractReadable(url string) (*models.ReadableContent, error)
}

type Server struct {
	router        *gin.Engine
	storage       storage.Storage
	poller        *poller.Poller
	summarizer    Summarizer
	reader        ReaderExtractor
	cache         *cache.Manager
	cacheTTL      time.Duration
	adminToken    string
	baseURL       string
	port          int
	swaggerServer *web.SwaggerServer
}

func NewServer(store storage.Storage, p *poller.Poller, summarizer Summarizer, reader ReaderExtractor, cacheManager *cache.Manager, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	securityConfig := &security.SecurityConfig{
		EnableRateLimit:       cfg.Security.EnableRateLimit,
		RateLimitPerSecond:    cfg.Security.RateLimitPerSecond,
		RateLimitBurst:        cfg.Security.RateLimitBurst,
		EnableCORS:            cfg.Security.EnableCORS,
		AllowedOrigins:        cfg.Security.AllowedOrigins,
		EnableSecurityHeaders: cfg.Security.EnableSecurityHeaders,
		MaxRequestSize:        cfg.Security.MaxRequestSize,
		EnableRequestID:       cfg.Security.EnableRequestID,
	}
	security.SetupSecurityMiddleware(router, securityConfig)

	server := &Server{
		router:        router,
		storage:       store,
		poller:        p,
		summarizer:    summarizer,
		reader:        reader,
		cache:         cacheManager,
		cacheTTL:      cfg.CacheTTL,
		adminToken:    cfg.AdminToken,
		baseURL:       cfg.BaseURL,
		port:          cfg.Port,
		swaggerServer: web.NewSwaggerServer(cfg.EnableSwagger),
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		api.GET("/articles", s.listArticles)
		api.GET("/articles/:id", s.getArticle)
		api.POST("/articles/:id/summary", s.generateSummary)

		api.GET("/reader", s.readerMode)
		api.GET("/rss", s.exportRSS)

		api.POST("/aggregate", s.triggerAggregation)
		api.GET("/aggregate/last", s.lastAggregation)

		api.GET("/poller/status", s.pollerStatus)
		api.POST("/poller/run", s.triggerAggregation)

		api.GET("/bookmarks", s.listBookmarks)
		api.GET("/bookmarks/:articleId", s.isBookmarked)
		api.POST("/bookmarks/:articleId", s.addBookmark)
		api.DELETE("/bookmarks/:articleId", s.removeBookmark)

		api.GET("/reading-list", s.listReadingList)
		api.GET("/reading-list/:articleId", s.isInReadingList)
		api.POST("/reading-list/:articleId", s.addToReadingList)
		api.DELETE("/reading-list/:articleId", s.removeFromReadingList)

		api.GET("/read-history", s.listReadHistory)
		api.GET("/read-history/:articleId", s.isRead)
		api.POST("/read-history/:articleId", s.markAsRead)
	}

	s.swaggerServer.RegisterRoutes(s.router)
}

func (s *Server) Start() error {
	return s.router.Run(":" + strconv.Itoa(s.port))
}

// StartWithContext runs the server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) StartWithContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(s.port),
		Handler: s.router,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "ai-news-aggregator",
		"poller_active": s.poller.IsRunning(),
	})
}

type listResponse struct {
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
}

func (s *Server) listArticles(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	category := c.Query("category")
	industry := c.Query("industry")
	search := c.Query("search")
	timeRange := c.DefaultQuery("timeRange", "24h")

	filter := models.ArticleFilter{
		Search: search,
		Limit:  limit,
		Offset: offset,
	}
	if category != "" && category != "all" {
		filter.Category = models.Category(category)
	}
	if industry != "" && industry != "all" {
		filter.Industry = models.Industry(industry)
	}
	if since, ok := sinceForRange(timeRange); ok {
		filter.Since = since
	}

	cacheKey := cache.ListKey(category, industry, search, timeRange, limit, offset)
	if cached, found := s.cache.Get(cacheKey); found {
		if response, ok := cached.(*listResponse); ok {
			c.JSON(http.StatusOK, response)
			return
		}
	}

	articles, err := s.storage.ListArticles(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total, err := s.storage.CountArticles(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if articles == nil {
		articles = []models.Article{}
	}

	response := &listResponse{Articles: articles, Total: total}
	s.cache.Set(cacheKey, response, s.cacheTTL)

	c.JSON(http.StatusOK, response)
}

// sinceForRange maps a symbolic time range to its cutoff. "all" and
// unknown values mean no cutoff.
func sinceForRange(timeRange string) (time.Time, bool) {
	var hours int
	switch timeRange {
	case "24h":
		hours = 24
	case "7d":
		hours = 168
	case "30d":
		hours = 720
	default:
		return time.Time{}, false
	}
	return time.Now().Add(-time.Duration(hours) * time.Hour), true
}

func (s *Server) getArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := s.storage.GetArticleByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (s *Server) generateSummary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return
	}

	article, err := s.storage.GetArticleByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Summary is generated at most once per article.
	if article.Summary != "" {
		c.JSON(http.StatusOK, gin.H{"summary": article.Summary})
		return
	}

	summary, err := s.summarizer.Summarize(c.Request.Context(), article)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := s.storage.SetArticleSummary(id, summary); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) readerMode(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "url parameter is required",
		})
		return
	}

	content, err := s.reader.ExtractReadable(url)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Could not extract article content",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    content,
	})
}

func (s *Server) triggerAggregation(c *gin.Context) {
	if s.adminToken == "" || c.GetHeader("X-Admin-Token") != s.adminToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can trigger news aggregation"})
		return
	}

	// Storage being entirely unavailable is the one hard failure the
	// aggregation surface reports.
	if err := s.storage.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}

	summary := s.poller.ForceRun(c.Request.Context())
	c.JSON(http.StatusOK, summary)
}

func (s *Server) lastAggregation(c *gin.Context) {
	last, err := s.storage.LastAggregationTime()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if last.IsZero() {
		c.JSON(http.StatusOK, gin.H{"last_aggregation": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"last_aggregation": last})
}

func (s *Server) pollerStatus(c *gin.Context) {
	lastRun, lastSummary := s.poller.LastRun()
	c.JSON(http.StatusOK, gin.H{
		"is_polling":   s.poller.IsRunning(),
		"last_run":     lastRun,
		"last_summary": lastSummary,
	})
}
