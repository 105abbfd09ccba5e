package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/vrickster/vault/internal/constants"
	"github.com/vrickster/vault/internal/fetch"
	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/pkg/logger"
)

// Manga aggregates manga metadata and chapter pages from the REST
// providers; the manga domain has no separate metadata tier.
type Manga struct {
	executor     *fetch.Executor
	registry     *provider.Registry
	log          logger.Logger
	consumetBase string
}

func NewManga(executor *fetch.Executor, registry *provider.Registry, log logger.Logger, consumetBase string) *Manga {
	return &Manga{
		executor:     executor,
		registry:     registry,
		log:          log,
		consumetBase: consumetBase,
	}
}

// Trending returns the trending manga page, rotating providers once on
// failure.
func (m *Manga) Trending(ctx context.Context, page int) []models.ContentSummary {
	out := []models.ContentSummary{}

	withRotation(m.registry, provider.DomainManga, m.log, "trending", func(p string) error {
		u := fmt.Sprintf("%s/manga/%s/trending?page=%d", m.consumetBase, p, page)
		key := fmt.Sprintf("manga_trending_%s_%d", p, page)

		results, err := m.fetchList(ctx, u, key, constants.TTLTrending)
		if err != nil {
			return err
		}
		out = results
		return nil
	})

	return out
}

// Search queries the current REST provider, rotating once on failure.
func (m *Manga) Search(ctx context.Context, query string, page int) []models.ContentSummary {
	out := []models.ContentSummary{}

	withRotation(m.registry, provider.DomainManga, m.log, "search", func(p string) error {
		u := fmt.Sprintf("%s/manga/%s/search?q=%s&page=%d", m.consumetBase, p, url.QueryEscape(query), page)
		key := fmt.Sprintf("manga_search_%s_%s_%d", p, query, page)

		results, err := m.fetchList(ctx, u, key, constants.TTLSearch)
		if err != nil {
			return err
		}
		out = results
		return nil
	})

	return out
}

func (m *Manga) fetchList(ctx context.Context, u, key string, ttl time.Duration) ([]models.ContentSummary, error) {
	raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, ttl))
	if err != nil {
		return nil, err
	}

	var resp models.ConsumetSearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}

	results := make([]models.ContentSummary, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, models.ContentSummary{
			ID:          r.ID,
			Title:       r.Title,
			Image:       r.Image,
			Year:        yearOf(r.ReleaseDate.String()),
			Rating:      normalizeRating(r.Rating.String()),
			Domain:      models.DomainManga,
			Description: shorten(r.Description, 200),
		})
	}
	return results, nil
}

// Details returns the full record with its chapter list, or nil when both
// providers fail. Manga never carries episodes.
func (m *Manga) Details(ctx context.Context, id string) *models.ContentDetail {
	var out *models.ContentDetail

	withRotation(m.registry, provider.DomainManga, m.log, "details", func(p string) error {
		u := fmt.Sprintf("%s/manga/%s/info/%s", m.consumetBase, p, url.PathEscape(id))
		key := fmt.Sprintf("manga_details_%s_%s", p, id)

		raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLDetails))
		if err != nil {
			return err
		}

		var info models.ConsumetInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return err
		}

		chapters := make([]models.ChapterRef, 0, len(info.Chapters))
		for _, ch := range info.Chapters {
			chapters = append(chapters, models.ChapterRef{
				ID:         ch.ID,
				Number:     ch.ChapterNumber.String(),
				Title:      ch.Title,
				ReleasedAt: ch.ReleaseDate,
			})
		}

		out = &models.ContentDetail{
			ContentSummary: models.ContentSummary{
				ID:          info.ID,
				Title:       info.Title,
				Image:       info.Image,
				Year:        yearOf(info.ReleaseDate.String()),
				Rating:      normalizeRating(info.Rating.String()),
				Domain:      models.DomainManga,
				Description: info.Description,
			},
			Genres:   info.Genres,
			Status:   info.Status,
			Cover:    firstNonEmpty(info.Cover, info.Image),
			Episodes: []models.EpisodeRef{},
			Chapters: chapters,
		}
		return nil
	})

	return out
}

// ChapterPages returns the page image URLs for one chapter. Providers
// disagree on the response shape: some serve {"pages": [...]}, others a
// bare array of {img, page} objects; both decode to the same list.
func (m *Manga) ChapterPages(ctx context.Context, chapterID string) []string {
	out := []string{}

	withRotation(m.registry, provider.DomainManga, m.log, "chapter", func(p string) error {
		u := fmt.Sprintf("%s/manga/%s/chapter/%s", m.consumetBase, p, url.PathEscape(chapterID))
		key := fmt.Sprintf("manga_chapter_%s_%s", p, chapterID)

		raw, err := m.executor.Do(ctx, fetch.NewRequest(u, key, constants.TTLChapterPages))
		if err != nil {
			return err
		}

		pages, err := decodeChapterPages(raw)
		if err != nil {
			return err
		}
		out = pages
		return nil
	})

	return out
}

func decodeChapterPages(raw json.RawMessage) ([]string, error) {
	var wrapped models.ConsumetChapterPages
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Pages != nil {
		return wrapped.Pages, nil
	}

	var pages []models.ConsumetPage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Img)
	}
	return out, nil
}
