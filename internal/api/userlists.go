package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// userID extracts the caller's identity from the X-User-ID header. User
// list endpoints are unusable without it.
func userID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID must be a positive integer"})
		return 0, false
	}
	return id, true
}

func articleIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("articleId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article id"})
		return 0, false
	}
	return id, true
}

func (s *Server) listBookmarks(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}

	saved, err := s.storage.ListBookmarks(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": saved})
}

func (s *Server) isBookmarked(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	bookmarked, err := s.storage.IsBookmarked(user, articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func (s *Server) addBookmark(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	if err := s.storage.AddBookmark(user, articleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

func (s *Server) removeBookmark(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	if err := s.storage.RemoveBookmark(user, articleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": false})
}

func (s *Server) listReadingList(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}

	saved, err := s.storage.ListReadingList(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reading_list": saved})
}

func (s *Server) isInReadingList(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	present, err := s.storage.IsInReadingList(user, articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_reading_list": present})
}

func (s *Server) addToReadingList(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	if err := s.storage.AddToReadingList(user, articleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_reading_list": true})
}

func (s *Server) removeFromReadingList(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	if err := s.storage.RemoveFromReadingList(user, articleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"in_reading_list": false})
}

func (s *Server) listReadHistory(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}

	saved, err := s.storage.ListReadHistory(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read_history": saved})
}

func (s *Server) isRead(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	read, err := s.storage.IsRead(user, articleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": read})
}

func (s *Server) markAsRead(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}
	articleID, ok := articleIDParam(c)
	if !ok {
		return
	}

	if err := s.storage.MarkAsRead(user, articleID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
