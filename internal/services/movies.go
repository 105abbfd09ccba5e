package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/vrickster/vault/internal/constants"
	"github.com/vrickster/vault/internal/fetch"
	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/pkg/logger"
	"github.com/vrickster/vault/pkg/ratelimiter"
)

const defaultStreamServer = "upcloud"

// Movies aggregates movie and TV metadata and streaming links. Trending
// comes from the TMDb metadata API; search, details and sources go to the
// REST providers with rotation.
type Movies struct {
	executor     *fetch.Executor
	registry     *provider.Registry
	limiter      ratelimiter.RateLimiter
	log          logger.Logger
	consumetBase string
	tmdbBase     string
	tmdbAPIKey   string
}

func NewMovies(executor *fetch.Executor, registry *provider.Registry, log logger.Logger, consumetBase, tmdbBase, tmdbAPIKey string) *Movies {
	return &Movies{
		executor:     executor,
		registry:     registry,
		limiter:      ratelimiter.NewTokenBucket(constants.MetadataRateLimit, constants.MetadataRateBurst),
		log:          log,
		consumetBase: consumetBase,
		tmdbBase:     tmdbBase,
		tmdbAPIKey:   tmdbAPIKey,
	}
}

// Trending returns the weekly trending movies and shows from TMDb, or an
// empty list when the metadata API is unavailable or unconfigured.
func (m *Movies) Trending(ctx context.Context, page int) []models.ContentSummary {
	if m.tmdbAPIKey == "" {
		m.log.Warn("[movies] TMDB API key not configured, trending disabled")
		return []models.ContentSummary{}
	}

	m.limiter.Wait()

	u := fmt.Sprintf("%s/trending/all/week?api_key=%s&page=%d", m.tmdbBase, m.tmdbAPIKey, page)
	key := fmt.Sprintf("movies_trending_%d", page)

	raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLTrending))
	if err != nil {
		return []models.ContentSummary{}
	}

	var resp models.TMDBTrendingResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		m.log.Warnf("[movies] unexpected TMDB trending shape: %v", err)
		return []models.ContentSummary{}
	}

	out := make([]models.ContentSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, m.summaryFromTMDB(r))
	}
	return out
}

func (m *Movies) summaryFromTMDB(r models.TMDBResult) models.ContentSummary {
	domain := models.DomainMovie
	if r.MediaType == "tv" {
		domain = models.DomainTV
	}
	return models.ContentSummary{
		ID:          fmt.Sprintf("%d", r.ID),
		Title:       firstNonEmpty(r.Title, r.Name),
		Image:       tmdbImage(r.PosterPath),
		Year:        yearOf(firstNonEmpty(r.ReleaseDate, r.FirstAirDate)),
		Rating:      normalizeVote(r.VoteAverage),
		Domain:      domain,
		Description: shorten(r.Overview, 200),
	}
}

// Search queries the current REST provider, rotating once on failure.
func (m *Movies) Search(ctx context.Context, query string, page int) []models.ContentSummary {
	out := []models.ContentSummary{}

	withRotation(m.registry, provider.DomainMovies, m.log, "search", func(p string) error {
		u := fmt.Sprintf("%s/movies/%s/search?q=%s&page=%d", m.consumetBase, p, url.QueryEscape(query), page)
		key := fmt.Sprintf("movies_search_%s_%s_%d", p, query, page)

		raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLSearch))
		if err != nil {
			return err
		}

		var resp models.ConsumetSearchResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return err
		}

		results := make([]models.ContentSummary, 0, len(resp.Results))
		for _, r := range resp.Results {
			results = append(results, models.ContentSummary{
				ID:     r.ID,
				Title:  r.Title,
				Image:  r.Image,
				Year:   yearOf(r.ReleaseDate.String()),
				Rating: normalizeRating(r.Rating.String()),
				Domain: movieDomainOf(r.Type),
			})
		}
		out = results
		return nil
	})

	return out
}

// movieDomainOf distinguishes series from movies in provider list items.
func movieDomainOf(rawType string) models.ContentDomain {
	t := strings.ToLower(rawType)
	if strings.Contains(t, "tv") || strings.Contains(t, "series") {
		return models.DomainTV
	}
	return models.DomainMovie
}

// Details returns the full record with its episode list, or nil when both
// providers fail. Movies without episodes get an empty episode list.
func (m *Movies) Details(ctx context.Context, id string) *models.ContentDetail {
	var out *models.ContentDetail

	withRotation(m.registry, provider.DomainMovies, m.log, "details", func(p string) error {
		u := fmt.Sprintf("%s/movies/%s/info?id=%s", m.consumetBase, p, url.QueryEscape(id))
		key := fmt.Sprintf("movies_details_%s_%s", p, id)

		raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLDetails))
		if err != nil {
			return err
		}

		var info models.ConsumetInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return err
		}

		episodes := make([]models.EpisodeRef, 0, len(info.Episodes))
		for _, ep := range info.Episodes {
			episodes = append(episodes, models.EpisodeRef{
				ID:       ep.ID,
				Number:   ep.Number,
				Title:    ep.Title,
				Duration: ep.Duration.String(),
			})
		}

		out = &models.ContentDetail{
			ContentSummary: models.ContentSummary{
				ID:          info.ID,
				Title:       info.Title,
				Image:       info.Image,
				Year:        yearOf(info.ReleaseDate.String()),
				Rating:      normalizeRating(info.Rating.String()),
				Domain:      movieDomainOf(info.Type),
				Description: info.Description,
			},
			Genres:   info.Genres,
			Status:   info.Status,
			Cover:    firstNonEmpty(info.Cover, info.Image),
			Episodes: episodes,
			Chapters: []models.ChapterRef{},
		}
		return nil
	})

	return out
}

// StreamingSources returns the stream variants for a movie or an episode.
// Both IDs must come from this adapter's Details call. server selects the
// upstream streaming host and defaults to upcloud.
func (m *Movies) StreamingSources(ctx context.Context, episodeID, mediaID, server string) models.StreamData {
	if server == "" {
		server = defaultStreamServer
	}
	out := models.EmptyStreamData()

	withRotation(m.registry, provider.DomainMovies, m.log, "sources", func(p string) error {
		u := fmt.Sprintf("%s/movies/%s/watch?episodeId=%s&mediaId=%s&server=%s",
			m.consumetBase, p, url.QueryEscape(episodeID), url.QueryEscape(mediaID), url.QueryEscape(server))
		key := fmt.Sprintf("movies_sources_%s_%s_%s_%s", p, episodeID, mediaID, server)

		raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLSources))
		if err != nil {
			return err
		}

		var resp models.ConsumetWatchResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return err
		}

		out = streamDataFromConsumet(resp)
		return nil
	})

	return out
}
