package models

// Raw shapes for the TMDb REST API.

// TMDBTrendingResponse is the /trending list envelope.
type TMDBTrendingResponse struct {
	Page    int          `json:"page"`
	Results []TMDBResult `json:"results"`
}

// TMDBResult is one trending item. Movies carry title/release_date, TV
// shows carry name/first_air_date; MediaType distinguishes them.
type TMDBResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	MediaType    string  `json:"media_type"`
	Overview     string  `json:"overview"`
}
