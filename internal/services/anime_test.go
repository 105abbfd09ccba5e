package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrickster/vault/internal/cache"
	"github.com/vrickster/vault/internal/events"
	"github.com/vrickster/vault/internal/fetch"
	"github.com/vrickster/vault/internal/provider"
	"github.com/vrickster/vault/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, io.Discard)
}

// newTestExecutor builds an executor with a millisecond backoff so failing
// providers exhaust their retries quickly.
func newTestExecutor() *fetch.Executor {
	e := fetch.New(http.DefaultClient, cache.New(nil, testLogger()), events.NewBus(), testLogger())
	e.SetBackoffBase(time.Millisecond)
	return e
}

func newAnimeRegistry() *provider.Registry {
	return provider.NewRegistryWith(map[provider.Domain][]string{
		provider.DomainAnime: {"alpha", "beta"},
	})
}

func TestAnimeTrendingPrefersAniList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{
			"data": {"Page": {"media": [
				{
					"id": 21,
					"title": {"romaji": "One Piece", "english": "ONE PIECE"},
					"coverImage": {"large": "https://img/op.jpg"},
					"seasonYear": 1999,
					"averageScore": 88,
					"description": "Pirates.<br><b>Adventure.</b>"
				}
			]}}
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	got := anime.Trending(context.Background(), 1)

	require.Len(t, got, 1)
	assert.Equal(t, "21", got[0].ID)
	assert.Equal(t, "ONE PIECE", got[0].Title)
	assert.Equal(t, "https://img/op.jpg", got[0].Image)
	assert.Equal(t, "1999", got[0].Year)
	assert.Equal(t, "88%", got[0].Rating)
	assert.Equal(t, "Pirates. Adventure.", got[0].Description)
}

func TestAnimeTrendingFallsBackToProvider(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/anime/alpha/top-airing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"id": "op-1", "title": "One Piece", "image": "https://img/op.jpg", "releaseDate": 1999}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	got := anime.Trending(context.Background(), 1)

	require.Len(t, got, 1)
	assert.Equal(t, "op-1", got[0].ID)
	assert.Equal(t, "1999", got[0].Year)
	assert.Equal(t, "N/A", got[0].Rating)
}

func TestAnimeTrendingAllTiersDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	got := anime.Trending(context.Background(), 1)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAnimeSearchRotatesOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/anime/alpha/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/anime/beta/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "naruto", r.URL.Query().Get("q"))
		w.Write([]byte(`{"results": [
			{"id": "naruto-1", "title": "Naruto", "rating": 8.2, "releaseDate": "2002-10-03"}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	registry := newAnimeRegistry()
	anime := NewAnime(newTestExecutor(), registry, testLogger(), server.URL, server.URL+"/graphql")

	got := anime.Search(context.Background(), "naruto", 1)

	require.Len(t, got, 1)
	assert.Equal(t, "naruto-1", got[0].ID)
	assert.Equal(t, "82%", got[0].Rating)
	assert.Equal(t, "2002", got[0].Year)

	// The rotation sticks for subsequent calls
	assert.Equal(t, "beta", registry.Current(provider.DomainAnime))
}

func TestAnimeSearchBothProvidersDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	registry := newAnimeRegistry()
	anime := NewAnime(newTestExecutor(), registry, testLogger(), server.URL, server.URL+"/graphql")

	got := anime.Search(context.Background(), "naruto", 1)

	assert.NotNil(t, got)
	assert.Empty(t, got)

	// Rotated exactly once, not back to the start
	assert.Equal(t, "beta", registry.Current(provider.DomainAnime))
}

func TestAnimeDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/anime/alpha/info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "spy-x-family", r.URL.Query().Get("id"))
		w.Write([]byte(`{
			"id": "spy-x-family",
			"title": "Spy x Family",
			"image": "https://img/sxf.jpg",
			"description": "A spy builds a family.",
			"genres": ["Action", "Comedy"],
			"status": "Ongoing",
			"releaseDate": "2022",
			"rating": 86,
			"episodes": [
				{"id": "sxf-ep-1", "number": 1, "title": "Operation Strix", "duration": 24}
			]
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	got := anime.Details(context.Background(), "spy-x-family")

	require.NotNil(t, got)
	assert.Equal(t, "Spy x Family", got.Title)
	assert.Equal(t, "2022", got.Year)
	assert.Equal(t, "86%", got.Rating)
	assert.Equal(t, []string{"Action", "Comedy"}, got.Genres)
	require.Len(t, got.Episodes, 1)
	assert.Equal(t, "sxf-ep-1", got.Episodes[0].ID)
	assert.Equal(t, float64(1), got.Episodes[0].Number)
	assert.Equal(t, "24", got.Episodes[0].Duration)
	assert.NotNil(t, got.Chapters)
	assert.Empty(t, got.Chapters)
}

func TestAnimeDetailsBothProvidersDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	assert.Nil(t, anime.Details(context.Background(), "unknown"))
}

func TestAnimeEpisodeSources(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/anime/alpha/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sxf-ep-1", r.URL.Query().Get("episodeId"))
		w.Write([]byte(`{
			"sources": [
				{"url": "https://cdn/master.m3u8", "quality": "1080p", "isM3U8": true},
				{"url": "https://cdn/ep1.mp4", "quality": "720p", "isM3U8": false}
			],
			"subtitles": [{"url": "https://cdn/en.vtt", "lang": "English"}]
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	got := anime.EpisodeSources(context.Background(), "sxf-ep-1")

	require.Len(t, got.Sources, 2)
	assert.Equal(t, "application/x-mpegURL", got.Sources[0].MimeType)
	assert.True(t, got.Sources[0].IsM3U8)
	assert.Equal(t, "video/mp4", got.Sources[1].MimeType)
	require.Len(t, got.Subtitles, 1)
	assert.Equal(t, "English", got.Subtitles[0].Lang)
}

func TestAnimeEpisodeSourcesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	anime := NewAnime(newTestExecutor(), newAnimeRegistry(), testLogger(), server.URL, server.URL+"/graphql")

	got := anime.EpisodeSources(context.Background(), "missing-ep")

	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
	assert.NotNil(t, got.Subtitles)
	assert.Empty(t, got.Subtitles)
}
