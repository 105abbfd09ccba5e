// Package services provides the domain adapters, the unified search
// aggregator and the dependency injection container wiring them together.
package services

import (
	"context"

	"github.com/vrickster/vault/internal/cache"
	"github.com/vrickster/vault/internal/events"
	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/prefs"
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/internal/storage"
	"github.com/vrickster/vault/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Anime      AnimeService
	Movies     MovieService
	Manga      MangaService
	Search     *Aggregator
	Prefs      *prefs.Store
	Cache      *cache.TTLCache
	Store      storage.Store
	Providers  *provider.Registry
	Bus        *events.Bus
	Logger     logger.Logger
}

// AnimeService defines the anime domain operations. Every method is
// fail-soft: exhausted fallbacks yield the domain's empty sentinel.
type AnimeService interface {
	Trending(ctx context.Context, page int) []models.ContentSummary
	Search(ctx context.Context, query string, page int) []models.ContentSummary
	Details(ctx context.Context, id string) *models.ContentDetail
	EpisodeSources(ctx context.Context, episodeID string) models.StreamData
}

// MovieService defines the movie/TV domain operations.
type MovieService interface {
	Trending(ctx context.Context, page int) []models.ContentSummary
	Search(ctx context.Context, query string, page int) []models.ContentSummary
	Details(ctx context.Context, id string) *models.ContentDetail
	StreamingSources(ctx context.Context, episodeID, mediaID, server string) models.StreamData
}

// MangaService defines the manga domain operations.
type MangaService interface {
	Trending(ctx context.Context, page int) []models.ContentSummary
	Search(ctx context.Context, query string, page int) []models.ContentSummary
	Details(ctx context.Context, id string) *models.ContentDetail
	ChapterPages(ctx context.Context, chapterID string) []string
}
