package models

// Raw shapes served by Consumet-compatible REST providers. Optional fields
// are routinely absent and differ per provider; normalization lives in the
// services package.

// ConsumetSearchResponse is the /search and /trending list envelope.
type ConsumetSearchResponse struct {
	CurrentPage int              `json:"currentPage"`
	HasNextPage bool             `json:"hasNextPage"`
	Results     []ConsumetResult `json:"results"`
}

// ConsumetResult is one list item. ReleaseDate arrives as a year string,
// a full date, or a bare number depending on the provider.
type ConsumetResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	ReleaseDate FlexString `json:"releaseDate"`
	SubOrDub    string     `json:"subOrDub"`
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Rating      FlexString `json:"rating"`
}

// ConsumetInfo is the /info detail shape shared by the anime, movie and
// manga provider families.
type ConsumetInfo struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Image       string            `json:"image"`
	Cover       string            `json:"cover"`
	Description string            `json:"description"`
	Genres      []string          `json:"genres"`
	Status      string            `json:"status"`
	ReleaseDate FlexString        `json:"releaseDate"`
	Type        string            `json:"type"`
	Duration    FlexString        `json:"duration"`
	Rating      FlexString        `json:"rating"`
	Episodes    []ConsumetEpisode `json:"episodes"`
	Chapters    []ConsumetChapter `json:"chapters"`
}

type ConsumetEpisode struct {
	ID       string     `json:"id"`
	Number   float64    `json:"number"`
	Title    string     `json:"title"`
	Duration FlexString `json:"duration"`
}

type ConsumetChapter struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	ChapterNumber FlexString `json:"chapterNumber"`
	VolumeNumber  FlexString `json:"volumeNumber"`
	ReleaseDate   string     `json:"releaseDate"`
}

// ConsumetWatchResponse is the /watch streaming-source shape.
type ConsumetWatchResponse struct {
	Sources   []ConsumetSource   `json:"sources"`
	Subtitles []ConsumetSubtitle `json:"subtitles"`
}

type ConsumetSource struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	IsM3U8  bool   `json:"isM3U8"`
}

type ConsumetSubtitle struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// ConsumetChapterPages is the object form of a chapter-pages response.
// Some providers instead serve a bare array of ConsumetPage.
type ConsumetChapterPages struct {
	Pages []string `json:"pages"`
}

type ConsumetPage struct {
	Img  string `json:"img"`
	Page int    `json:"page"`
}
