package constants

// Provider name constants for consistent usage across internal packages
const (
	ProviderZoro         = "zoro"
	ProviderGogoanime    = "gogoanime"
	ProviderFlixHQ       = "flixhq"
	ProviderDramaCool    = "dramacool"
	ProviderMangaDex     = "mangadex"
	ProviderMangaKakalot = "mangakakalot"
)

// Upstream API bases. ConsumetBase may be swapped for a local reverse
// proxy via configuration; only the base changes, never the paths.
const (
	ConsumetBase = "https://api.consumet.org"
	AniListBase  = "https://graphql.anilist.co"
	TMDBBase     = "https://api.themoviedb.org/3"

	TMDBImageBase = "https://image.tmdb.org/t/p/w500"
)

// AnimeProviders is the rotation order for the anime domain.
var AnimeProviders = []string{ProviderZoro, ProviderGogoanime}

// MovieProviders is the rotation order for the movie/TV domain.
var MovieProviders = []string{ProviderFlixHQ, ProviderDramaCool}

// MangaProviders is the rotation order for the manga domain.
var MangaProviders = []string{ProviderMangaDex, ProviderMangaKakalot}
