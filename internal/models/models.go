// Package models defines the unified content schema that every domain
// adapter normalizes into, plus the raw response shapes of each upstream
// API family.
package models

// ContentDomain tags a normalized record with its content category.
type ContentDomain string

const (
	DomainAnime ContentDomain = "anime"
	DomainMovie ContentDomain = "movie"
	DomainTV    ContentDomain = "tv"
	DomainManga ContentDomain = "manga"
)

// ContentSummary is the unified list-view record. IDs are opaque and
// provider-scoped: unique only within one provider+domain pair.
type ContentSummary struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Image       string        `json:"image"`
	Year        string        `json:"year"`
	Rating      string        `json:"rating"`
	Domain      ContentDomain `json:"domain"`
	Description string        `json:"description,omitempty"`
}

// EpisodeRef identifies one episode to the adapter that produced it.
// Passing it to a different adapter's source fetch is undefined behavior.
type EpisodeRef struct {
	ID       string  `json:"id"`
	Number   float64 `json:"number"`
	Title    string  `json:"title"`
	Duration string  `json:"duration,omitempty"`
}

// ChapterRef identifies one manga chapter.
type ChapterRef struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	Title      string `json:"title"`
	ReleasedAt string `json:"releasedAt,omitempty"`
}

// ContentDetail is the unified detail-view record, constructed fresh per
// request and never mutated in place.
type ContentDetail struct {
	ContentSummary
	Genres   []string     `json:"genres"`
	Status   string       `json:"status,omitempty"`
	Cover    string       `json:"cover,omitempty"`
	Episodes []EpisodeRef `json:"episodes"`
	Chapters []ChapterRef `json:"chapters"`
}

// StreamSource is one playable stream variant. Upstream URLs are signed
// and expire, so cached StreamData carries a short TTL.
type StreamSource struct {
	URL      string `json:"url"`
	Quality  string `json:"quality"`
	MimeType string `json:"mimeType"`
	IsM3U8   bool   `json:"isM3U8"`
}

// Subtitle is one caption track.
type Subtitle struct {
	URL   string `json:"url"`
	Lang  string `json:"lang"`
	Label string `json:"label,omitempty"`
}

// StreamData is the normalized watch response. The empty value
// (both slices non-nil, zero length) is the soft-failure sentinel.
type StreamData struct {
	Sources   []StreamSource `json:"sources"`
	Subtitles []Subtitle     `json:"subtitles"`
}

// EmptyStreamData returns the soft-failure sentinel for source lookups.
func EmptyStreamData() StreamData {
	return StreamData{Sources: []StreamSource{}, Subtitles: []Subtitle{}}
}

// SearchResults groups the unified search output per domain. All holds the
// merged, domain-tagged top results.
type SearchResults struct {
	Anime  []ContentSummary `json:"anime"`
	Movies []ContentSummary `json:"movies"`
	Manga  []ContentSummary `json:"manga"`
	All    []ContentSummary `json:"all"`
}
