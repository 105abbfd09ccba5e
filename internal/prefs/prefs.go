// Package prefs persists user state: watch history, bookmarks and
// settings. Everything lives in single blobs on the shared persistent
// store; a persistence failure is logged and the in-memory copy stays
// authoritative for the session.
package prefs

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/vrickster/vault/internal/constants"
	"github.com/vrickster/vault/internal/models"
	"github.com/vrickster/vault/internal/storage"
	"github.com/vrickster/vault/pkg/logger"
)

const (
	historyKey   = "vault_prefs_history"
	bookmarksKey = "vault_prefs_bookmarks"
	settingsKey  = "vault_prefs_settings"
)

// HistoryItem records one watched title. Items are keyed by (ID, Domain).
type HistoryItem struct {
	ID        string               `json:"id"`
	Domain    models.ContentDomain `json:"domain"`
	Title     string               `json:"title"`
	Image     string               `json:"image,omitempty"`
	EpisodeID string               `json:"episodeId,omitempty"`
	WatchedAt time.Time            `json:"watchedAt"`
}

// Settings is the flat user configuration record.
type Settings struct {
	AnimeProvider    string `json:"animeProvider" mapstructure:"anime_provider"`
	MovieProvider    string `json:"movieProvider" mapstructure:"movie_provider"`
	MangaProvider    string `json:"mangaProvider" mapstructure:"manga_provider"`
	PlaybackQuality  string `json:"playbackQuality" mapstructure:"playback_quality"`
	Autoplay         bool   `json:"autoplay" mapstructure:"autoplay"`
	Theme            string `json:"theme" mapstructure:"theme"`
	SubtitleLanguage string `json:"subtitleLanguage" mapstructure:"subtitle_language"`
}

// Store manages preference blobs. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	store storage.Store
	log   logger.Logger
	v     *viper.Viper

	// session copies, authoritative when persistence is failing
	history   []HistoryItem
	bookmarks []models.ContentSummary
	loaded    bool
}

// New creates a preference store with the documented setting defaults.
func New(store storage.Store, log logger.Logger) *Store {
	v := viper.New()
	v.SetDefault("anime_provider", constants.ProviderZoro)
	v.SetDefault("movie_provider", constants.ProviderFlixHQ)
	v.SetDefault("manga_provider", constants.ProviderMangaDex)
	v.SetDefault("playback_quality", "auto")
	v.SetDefault("autoplay", false)
	v.SetDefault("theme", "dark")
	v.SetDefault("subtitle_language", "English")

	return &Store{
		store: store,
		log:   log,
		v:     v,
	}
}

// SaveWatchHistory upserts the item by (ID, Domain): an existing entry
// moves to the front rather than duplicating, and the list is capped at
// the history limit with the oldest entries evicted.
func (s *Store) SaveWatchHistory(item HistoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if item.WatchedAt.IsZero() {
		item.WatchedAt = time.Now()
	}

	s.history = lo.Reject(s.history, func(h HistoryItem, _ int) bool {
		return h.ID == item.ID && h.Domain == item.Domain
	})
	s.history = append([]HistoryItem{item}, s.history...)
	s.history = lo.Slice(s.history, 0, constants.WatchHistoryLimit)

	s.persist(historyKey, s.history)
}

// WatchHistory returns the most-recent-first history list.
func (s *Store) WatchHistory() []HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	return append([]HistoryItem(nil), s.history...)
}

// ToggleBookmark adds the item when absent and removes it when present,
// keyed by (ID, Domain). Returns true when the item is now bookmarked.
func (s *Store) ToggleBookmark(item models.ContentSummary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	_, idx, found := lo.FindIndexOf(s.bookmarks, func(b models.ContentSummary) bool {
		return b.ID == item.ID && b.Domain == item.Domain
	})
	if found {
		s.bookmarks = append(s.bookmarks[:idx], s.bookmarks[idx+1:]...)
	} else {
		s.bookmarks = append([]models.ContentSummary{item}, s.bookmarks...)
	}

	s.persist(bookmarksKey, s.bookmarks)
	return !found
}

// Bookmarks returns the bookmark list, most recent first.
func (s *Store) Bookmarks() []models.ContentSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	return append([]models.ContentSummary(nil), s.bookmarks...)
}

// Settings returns the persisted settings merged over the defaults.
// An absent or corrupt blob yields the pure defaults.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	for key, val := range s.v.AllSettings() {
		v.SetDefault(key, val)
	}

	if data := s.read(settingsKey); data != nil {
		var stored map[string]interface{}
		if err := json.Unmarshal(data, &stored); err != nil {
			s.log.Warnf("[Prefs] corrupt settings blob, using defaults: %v", err)
		} else if err := v.MergeConfigMap(stored); err != nil {
			s.log.Warnf("[Prefs] failed to merge stored settings: %v", err)
		}
	}

	var out Settings
	if err := v.Unmarshal(&out); err != nil {
		s.log.Warnf("[Prefs] failed to decode settings, using defaults: %v", err)
		s.v.Unmarshal(&out)
	}
	return out
}

// SaveSettings persists the full settings record.
func (s *Store) SaveSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(map[string]interface{}{
		"anime_provider":    settings.AnimeProvider,
		"movie_provider":    settings.MovieProvider,
		"manga_provider":    settings.MangaProvider,
		"playback_quality":  settings.PlaybackQuality,
		"autoplay":          settings.Autoplay,
		"theme":             settings.Theme,
		"subtitle_language": settings.SubtitleLanguage,
	})
	if err != nil {
		s.log.Warnf("[Prefs] failed to encode settings: %v", err)
		return
	}
	if s.store == nil {
		return
	}
	if err := s.store.Set(settingsKey, data); err != nil {
		s.log.Warnf("[Prefs] failed to persist settings: %v", err)
	}
}

// load hydrates history and bookmarks from the store once per process.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	if data := s.read(historyKey); data != nil {
		if err := json.Unmarshal(data, &s.history); err != nil {
			s.log.Warnf("[Prefs] corrupt history blob, starting empty: %v", err)
			s.history = nil
		}
	}
	if data := s.read(bookmarksKey); data != nil {
		if err := json.Unmarshal(data, &s.bookmarks); err != nil {
			s.log.Warnf("[Prefs] corrupt bookmarks blob, starting empty: %v", err)
			s.bookmarks = nil
		}
	}
}

func (s *Store) read(key string) []byte {
	if s.store == nil {
		return nil
	}
	data, err := s.store.Get(key)
	if err != nil {
		s.log.Warnf("[Prefs] failed to read %s: %v", key, err)
		return nil
	}
	return data
}

func (s *Store) persist(key string, value interface{}) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf("[Prefs] failed to encode %s: %v", key, err)
		return
	}
	if err := s.store.Set(key, data); err != nil {
		s.log.Warnf("[Prefs] failed to persist %s: %v", key, err)
	}
}
