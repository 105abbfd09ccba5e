package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/provider"
)

func newMovieRegistry() *provider.Registry {
	return provider.NewRegistryWith(map[provider.Domain][]string{
		provider.DomainMovies: {"alpha", "beta"},
	})
}

func TestMoviesTrendingWithoutAPIKey(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "")

	got := movies.Trending(context.Background(), 1)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, calls.Load())
}

func TestMoviesTrendingFromTMDB(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/trending/all/week", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Write([]byte(`{"results": [
			{
				"id": 603,
				"title": "The Matrix",
				"poster_path": "/matrix.jpg",
				"release_date": "1999-03-31",
				"vote_average": 8.2,
				"media_type": "movie",
				"overview": "A hacker learns the truth."
			},
			{
				"id": 1396,
				"name": "Breaking Bad",
				"poster_path": "/bb.jpg",
				"first_air_date": "2008-01-20",
				"vote_average": 8.9,
				"media_type": "tv"
			}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "test-key")

	got := movies.Trending(context.Background(), 1)

	require.Len(t, got, 2)
	assert.Equal(t, "603", got[0].ID)
	assert.Equal(t, "The Matrix", got[0].Title)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/matrix.jpg", got[0].Image)
	assert.Equal(t, "1999", got[0].Year)
	assert.Equal(t, "82%", got[0].Rating)
	assert.Equal(t, models.DomainMovie, got[0].Domain)

	assert.Equal(t, "Breaking Bad", got[1].Title)
	assert.Equal(t, "2008", got[1].Year)
	assert.Equal(t, models.DomainTV, got[1].Domain)
}

func TestMoviesTrendingUpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "test-key")

	got := movies.Trending(context.Background(), 1)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMoviesSearchTagsSeriesAsTV(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movies/alpha/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"id": "movie/watch-inception", "title": "Inception", "type": "Movie", "releaseDate": "2010"},
			{"id": "tv/watch-dark", "title": "Dark", "type": "TV Series", "releaseDate": "2017"}
		]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "")

	got := movies.Search(context.Background(), "x", 1)

	require.Len(t, got, 2)
	assert.Equal(t, models.DomainMovie, got[0].Domain)
	assert.Equal(t, models.DomainTV, got[1].Domain)
}

func TestMoviesDetailsWithoutEpisodes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movies/alpha/info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "movie/watch-inception", r.URL.Query().Get("id"))
		w.Write([]byte(`{
			"id": "movie/watch-inception",
			"title": "Inception",
			"type": "Movie",
			"releaseDate": "2010-07-16",
			"rating": 8.8
		}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "")

	got := movies.Details(context.Background(), "movie/watch-inception")

	require.NotNil(t, got)
	assert.Equal(t, "Inception", got.Title)
	assert.Equal(t, "88%", got.Rating)
	assert.NotNil(t, got.Episodes)
	assert.Empty(t, got.Episodes)
}

func TestMoviesStreamingSourcesDefaultsServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movies/alpha/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ep-1", r.URL.Query().Get("episodeId"))
		assert.Equal(t, "movie/watch-inception", r.URL.Query().Get("mediaId"))
		assert.Equal(t, "upcloud", r.URL.Query().Get("server"))
		w.Write([]byte(`{"sources": [{"url": "https://cdn/m.m3u8", "quality": "auto", "isM3U8": true}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "")

	got := movies.StreamingSources(context.Background(), "ep-1", "movie/watch-inception", "")

	require.Len(t, got.Sources, 1)
	assert.Equal(t, "application/x-mpegURL", got.Sources[0].MimeType)
}

func TestMoviesStreamingSourcesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	movies := NewMovies(newTestExecutor(), newMovieRegistry(), testLogger(), server.URL, server.URL, "")

	got := movies.StreamingSources(context.Background(), "ep-1", "m-1", "vidcloud")

	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
	assert.NotNil(t, got.Subtitles)
	assert.Empty(t, got.Subtitles)
}
