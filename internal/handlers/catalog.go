package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Catalog endpoints. The services are fail-soft, so these always answer
// 200 with the domain's (possibly empty) result; only missing required
// parameters produce a 400.

func (h *Handler) AnimeTrending(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Anime.Trending(c.Request.Context(), pageOf(c)))
}

func (h *Handler) AnimeSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	c.JSON(http.StatusOK, h.container.Anime.Search(c.Request.Context(), query, pageOf(c)))
}

func (h *Handler) AnimeDetails(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter id"})
		return
	}
	detail := h.container.Anime.Details(c.Request.Context(), id)
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) AnimeSources(c *gin.Context) {
	episodeID := c.Query("episodeId")
	if episodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter episodeId"})
		return
	}
	c.JSON(http.StatusOK, h.container.Anime.EpisodeSources(c.Request.Context(), episodeID))
}

func (h *Handler) MoviesTrending(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Movies.Trending(c.Request.Context(), pageOf(c)))
}

func (h *Handler) MoviesSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	c.JSON(http.StatusOK, h.container.Movies.Search(c.Request.Context(), query, pageOf(c)))
}

func (h *Handler) MoviesDetails(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter id"})
		return
	}
	detail := h.container.Movies.Details(c.Request.Context(), id)
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) MoviesSources(c *gin.Context) {
	episodeID := c.Query("episodeId")
	mediaID := c.Query("mediaId")
	if episodeID == "" || mediaID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameters episodeId and mediaId"})
		return
	}
	server := c.Query("server")
	c.JSON(http.StatusOK, h.container.Movies.StreamingSources(c.Request.Context(), episodeID, mediaID, server))
}

func (h *Handler) MangaTrending(c *gin.Context) {
	c.JSON(http.StatusOK, h.container.Manga.Trending(c.Request.Context(), pageOf(c)))
}

func (h *Handler) MangaSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	c.JSON(http.StatusOK, h.container.Manga.Search(c.Request.Context(), query, pageOf(c)))
}

func (h *Handler) MangaDetails(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter id"})
		return
	}
	detail := h.container.Manga.Details(c.Request.Context(), id)
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) MangaChapter(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": h.container.Manga.ChapterPages(c.Request.Context(), id)})
}

// SearchAll fans the query out across every domain.
func (h *Handler) SearchAll(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	c.JSON(http.StatusOK, h.container.Search.SearchAll(c.Request.Context(), query, pageOf(c)))
}
