// Package handlers wires the domain services to the HTTP surface. The
// handlers are thin: parameter parsing and JSON rendering only, with all
// orchestration living in the services layer.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vrickster/vault/internal/services"
	"github.com/vrickster/vault/pkg/httputil"
	"github.com/vrickster/vault/pkg/logger"
)

// Handler exposes the catalog, search, preference and proxy endpoints.
type Handler struct {
	container     *services.Container
	log           logger.Logger
	proxyUpstream string
	proxyClient   *http.Client
}

// New creates a handler over the service container. proxyUpstream is the
// single fixed host /proxy forwards to.
func New(container *services.Container, proxyUpstream string) *Handler {
	return &Handler{
		container:     container,
		log:           container.Logger,
		proxyUpstream: proxyUpstream,
		proxyClient:   httputil.NewDefaultClient(),
	}
}

// RegisterRoutes attaches all routes to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		api.GET("/anime/trending", h.AnimeTrending)
		api.GET("/anime/search", h.AnimeSearch)
		api.GET("/anime/details", h.AnimeDetails)
		api.GET("/anime/sources", h.AnimeSources)

		api.GET("/movies/trending", h.MoviesTrending)
		api.GET("/movies/search", h.MoviesSearch)
		api.GET("/movies/details", h.MoviesDetails)
		api.GET("/movies/sources", h.MoviesSources)

		api.GET("/manga/trending", h.MangaTrending)
		api.GET("/manga/search", h.MangaSearch)
		api.GET("/manga/details", h.MangaDetails)
		api.GET("/manga/chapter", h.MangaChapter)

		api.GET("/search", h.SearchAll)

		api.GET("/history", h.GetHistory)
		api.POST("/history", h.SaveHistory)
		api.GET("/bookmarks", h.GetBookmarks)
		api.POST("/bookmarks", h.ToggleBookmark)
		api.GET("/settings", h.GetSettings)
		api.POST("/settings", h.SaveSettings)
	}

	r.GET("/proxy/*path", h.Proxy)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pageOf parses the page query parameter, defaulting to 1.
func pageOf(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
