package services

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/vrickster/vault/internal/constants"
	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/pkg/logger"
)

// Aggregator fans a query out to every domain adapter concurrently and
// merges the results. Adapters are fail-soft, so one domain exhausting its
// retries shows up as an empty slice and never cancels or fails the others.
type Aggregator struct {
	anime  AnimeService
	movies MovieService
	manga  MangaService
	log    logger.Logger
}

func NewAggregator(anime AnimeService, movies MovieService, manga MangaService, log logger.Logger) *Aggregator {
	return &Aggregator{
		anime:  anime,
		movies: movies,
		manga:  manga,
		log:    log,
	}
}

// SearchAll runs the three domain searches in parallel, waits for all of
// them to settle, keeps the top results per domain and merges them into
// the combined list. Completion order between domains is unspecified.
func (a *Aggregator) SearchAll(ctx context.Context, query string, page int) models.SearchResults {
	results := models.SearchResults{
		Anime:  []models.ContentSummary{},
		Movies: []models.ContentSummary{},
		Manga:  []models.ContentSummary{},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(3)
	go func() {
		defer wg.Done()
		found := a.anime.Search(ctx, query, page)
		mu.Lock()
		results.Anime = topN(found)
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		found := a.movies.Search(ctx, query, page)
		mu.Lock()
		results.Movies = topN(found)
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		found := a.manga.Search(ctx, query, page)
		mu.Lock()
		results.Manga = topN(found)
		mu.Unlock()
	}()
	wg.Wait()

	results.All = lo.Flatten([][]models.ContentSummary{results.Anime, results.Movies, results.Manga})
	return results
}

func topN(items []models.ContentSummary) []models.ContentSummary {
	if items == nil {
		return []models.ContentSummary{}
	}
	return lo.Slice(items, 0, constants.SearchResultsPerDomain)
}
