package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/provider"
)

func newMangaRegistry() *provider.Registry {
	return provider.NewRegistryWith(map[provider.Domain][]string{
		provider.DomainManga: {"alpha", "beta"},
	})
}

func TestMangaTrendingRotatesOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manga/alpha/trending", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/manga/beta/trending", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"id": "berserk", "title": "Berserk", "releaseDate": 1989, "description": "A lone swordsman."}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newMangaRegistry()
	manga := NewManga(newTestExecutor(), registry, testLogger(), server.URL)

	got := manga.Trending(context.Background(), 1)

	require.Len(t, got, 1)
	assert.Equal(t, "berserk", got[0].ID)
	assert.Equal(t, "1989", got[0].Year)
	assert.Equal(t, models.DomainManga, got[0].Domain)
	assert.Equal(t, "beta", registry.Current(provider.DomainManga))
}

func TestMangaDetailsMapsChapters(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manga/alpha/info/berserk", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "berserk",
			"title": "Berserk",
			"genres": ["Dark Fantasy"],
			"status": "Hiatus",
			"chapters": [
				{"id": "berserk-ch-376", "title": "The Trial", "chapterNumber": 376, "releaseDate": "2024-01-26"},
				{"id": "berserk-ch-375", "title": "Tides", "chapterNumber": "375", "releaseDate": "2023-10-27"}
			]
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	manga := NewManga(newTestExecutor(), newMangaRegistry(), testLogger(), server.URL)

	got := manga.Details(context.Background(), "berserk")

	require.NotNil(t, got)
	assert.Equal(t, models.DomainManga, got.Domain)
	assert.NotNil(t, got.Episodes)
	assert.Empty(t, got.Episodes)
	require.Len(t, got.Chapters, 2)

	// Numeric and string chapter numbers normalize to the same shape
	assert.Equal(t, "376", got.Chapters[0].Number)
	assert.Equal(t, "375", got.Chapters[1].Number)
	assert.Equal(t, "2024-01-26", got.Chapters[0].ReleasedAt)
}

func TestMangaChapterPagesWrappedShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manga/alpha/chapter/ch-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pages": ["https://cdn/p1.jpg", "https://cdn/p2.jpg"]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	manga := NewManga(newTestExecutor(), newMangaRegistry(), testLogger(), server.URL)

	got := manga.ChapterPages(context.Background(), "ch-1")

	assert.Equal(t, []string{"https://cdn/p1.jpg", "https://cdn/p2.jpg"}, got)
}

func TestMangaChapterPagesBareArrayShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/manga/alpha/chapter/ch-2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"img": "https://cdn/p1.jpg", "page": 1},
			{"img": "https://cdn/p2.jpg", "page": 2}
		]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	manga := NewManga(newTestExecutor(), newMangaRegistry(), testLogger(), server.URL)

	got := manga.ChapterPages(context.Background(), "ch-2")

	assert.Equal(t, []string{"https://cdn/p1.jpg", "https://cdn/p2.jpg"}, got)
}

func TestMangaChapterPagesBothProvidersDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	manga := NewManga(newTestExecutor(), newMangaRegistry(), testLogger(), server.URL)

	got := manga.ChapterPages(context.Background(), "ch-3")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
