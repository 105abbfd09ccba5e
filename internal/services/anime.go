package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/vrickster/vault/internal/constants"
	"github.com/vrickster/vault/internal/fetch"
	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/pkg/logger"
	"github.com/vrickster/vault/pkg/ratelimiter"
)

// anilistTrendingQuery fetches the trending page from the AniList
// metadata API.
const anilistTrendingQuery = `
query ($page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    media(type: ANIME, sort: TRENDING_DESC) {
      id
      title { romaji english native }
      coverImage { large extraLarge }
      bannerImage
      genres
      seasonYear
      episodes
      averageScore
      description
      status
    }
  }
}`

const trendingPerPage = 20

// Anime aggregates anime metadata and streaming links. Trending always
// prefers the AniList metadata source and only falls back to the current
// REST provider's top-airing feed when AniList is down; search, details
// and episode sources go straight to the REST providers with rotation.
type Anime struct {
	executor     *fetch.Executor
	registry     *provider.Registry
	limiter      ratelimiter.RateLimiter
	log          logger.Logger
	consumetBase string
	anilistBase  string
}

// NewAnime creates the anime adapter. consumetBase and anilistBase may
// point at a local reverse proxy instead of the upstream origins.
func NewAnime(executor *fetch.Executor, registry *provider.Registry, log logger.Logger, consumetBase, anilistBase string) *Anime {
	return &Anime{
		executor:     executor,
		registry:     registry,
		limiter:      ratelimiter.NewTokenBucket(constants.MetadataRateLimit, constants.MetadataRateBurst),
		log:          log,
		consumetBase: consumetBase,
		anilistBase:  anilistBase,
	}
}

// Trending returns the trending anime page, or an empty list once every
// tier (AniList, then the current REST provider) has failed.
func (a *Anime) Trending(ctx context.Context, page int) []models.ContentSummary {
	if out, ok := a.trendingFromAniList(ctx, page); ok {
		return out
	}

	p := a.registry.Current(provider.DomainAnime)
	a.log.Warnf("[anime] metadata source unavailable, falling back to %s top-airing", p)

	if out, ok := a.trendingFromProvider(ctx, p, page); ok {
		return out
	}
	return []models.ContentSummary{}
}

func (a *Anime) trendingFromAniList(ctx context.Context, page int) ([]models.ContentSummary, bool) {
	body, err := json.Marshal(models.AniListRequest{
		Query: anilistTrendingQuery,
		Variables: map[string]interface{}{
			"page":    page,
			"perPage": trendingPerPage,
		},
	})
	if err != nil {
		return nil, false
	}

	a.limiter.Wait()

	req := fetch.NewRequest(a.anilistBase, fmt.Sprintf("anime_trending_%d", page), constants.TTLTrending)
	req.Method = "POST"
	req.Body = body

	raw, err := a.executor.Do(ctx, req)
	if err != nil {
		return nil, false
	}

	var resp models.AniListPageResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		a.log.Warnf("[anime] unexpected AniList trending shape: %v", err)
		return nil, false
	}

	out := make([]models.ContentSummary, 0, len(resp.Data.Page.Media))
	for _, m := range resp.Data.Page.Media {
		out = append(out, a.summaryFromAniList(m))
	}
	return out, true
}

func (a *Anime) summaryFromAniList(m models.AniListMedia) models.ContentSummary {
	year := ratingNA
	if m.SeasonYear > 0 {
		year = fmt.Sprintf("%d", m.SeasonYear)
	}
	return models.ContentSummary{
		ID:          fmt.Sprintf("%d", m.ID),
		Title:       firstNonEmpty(m.Title.English, m.Title.Romaji, m.Title.Native),
		Image:       firstNonEmpty(m.CoverImage.Large, m.CoverImage.ExtraLarge),
		Year:        year,
		Rating:      normalizeScore(m.AverageScore),
		Domain:      models.DomainAnime,
		Description: shorten(stripHTML(m.Description), 200),
	}
}

func (a *Anime) trendingFromProvider(ctx context.Context, providerName string, page int) ([]models.ContentSummary, bool) {
	u := fmt.Sprintf("%s/anime/%s/top-airing?page=%d", a.consumetBase, providerName, page)
	key := fmt.Sprintf("anime_trending_backup_%s_%d", providerName, page)

	raw, err := a.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLTrending))
	if err != nil {
		return nil, false
	}

	var resp models.ConsumetSearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		a.log.Warnf("[anime] unexpected %s top-airing shape: %v", providerName, err)
		return nil, false
	}

	out := make([]models.ContentSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, models.ContentSummary{
			ID:     r.ID,
			Title:  r.Title,
			Image:  r.Image,
			Year:   yearOf(r.ReleaseDate.String()),
			Rating: normalizeRating(r.Rating.String()),
			Domain: models.DomainAnime,
		})
	}
	return out, true
}

// Search queries the current REST provider, rotating once on failure.
// Returns an empty list when both providers fail.
func (a *Anime) Search(ctx context.Context, query string, page int) []models.ContentSummary {
	out := []models.ContentSummary{}

	withRotation(a.registry, provider.DomainAnime, a.log, "search", func(p string) error {
		u := fmt.Sprintf("%s/anime/%s/search?q=%s&page=%d", a.consumetBase, p, url.QueryEscape(query), page)
		key := fmt.Sprintf("anime_search_%s_%s_%d", p, query, page)

		raw, err := a.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLSearch))
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
				Domain: models.DomainAnime,
			})
		}
		out = results
		return nil
	})

	return out
}

// Details returns the full record with its episode list, or nil when both
// providers fail.
func (a *Anime) Details(ctx context.Context, id string) *models.ContentDetail {
	var out *models.ContentDetail

	withRotation(a.registry, provider.DomainAnime, a.log, "details", func(p string) error {
		u := fmt.Sprintf("%s/anime/%s/info?id=%s", a.consumetBase, p, url.QueryEscape(id))
		key := fmt.Sprintf("anime_details_%s_%s", p, id)

		raw, err := a.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLDetails))
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
				Domain:      models.DomainAnime,
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

// EpisodeSources returns the stream variants for one episode. The episode
// ID must come from this adapter's Details call. The sentinel
// {sources: [], subtitles: []} is returned when both providers fail.
func (a *Anime) EpisodeSources(ctx context.Context, episodeID string) models.StreamData {
	out := models.EmptyStreamData()

	withRotation(a.registry, provider.DomainAnime, a.log, "sources", func(p string) error {
		u := fmt.Sprintf("%s/anime/%s/watch?episodeId=%s", a.consumetBase, p, url.QueryEscape(episodeID))
		key := fmt.Sprintf("anime_sources_%s_%s", p, episodeID)

		raw, err := a.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLSources))
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
