package models

// Raw shapes for the AniList GraphQL API (POST {query, variables}).

// AniListRequest is the GraphQL request body.
type AniListRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// AniListPageResponse is the envelope of a Page(media: ...) query.
type AniListPageResponse struct {
	Data struct {
		Page struct {
			Media []AniListMedia `json:"media"`
		} `json:"Page"`
	} `json:"data"`
}

// AniListMedia is one media record. AverageScore is on a 0-100 scale and
// may be absent for unrated titles.
type AniListMedia struct {
	ID    int64 `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		Large      string `json:"large"`
		ExtraLarge string `json:"extraLarge"`
	} `json:"coverImage"`
	BannerImage  string   `json:"bannerImage"`
	Genres       []string `json:"genres"`
	SeasonYear   int      `json:"seasonYear"`
	Episodes     int      `json:"episodes"`
	AverageScore int      `json:"averageScore"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`
}
