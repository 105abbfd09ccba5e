package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/prefs"
)

func (h *Handler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Prefs.WatchHistory())
}

func (h *Handler) SaveHistory(c *gin.Context) {
	var item prefs.HistoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history item"})
		return
	}
	if item.ID == "" || item.Domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and domain are required"})
		return
	}
	h.container.Prefs.SaveWatchHistory(item)
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *Handler) GetBookmarks(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Prefs.Bookmarks())
}

func (h *Handler) ToggleBookmark(c *gin.Context) {
	var item models.ContentSummary
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookmark item"})
		return
	}
	if item.ID == "" || item.Domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and domain are required"})
		return
	}
	bookmarked := h.container.Prefs.ToggleBookmark(item)
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Prefs.Settings())
}

func (h *Handler) SaveSettings(c *gin.Context) {
	var settings prefs.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings"})
		return
	}
	h.container.Prefs.SaveSettings(settings)
	c.JSON(http.StatusOK, settings)
}
