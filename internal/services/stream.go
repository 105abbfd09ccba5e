package services

import "github.com/vrickster/vault/internal/models"

const (
	mimeHLS = "application/x-mpegURL"
	mimeMP4 = "video/mp4"
)

// streamDataFromConsumet maps a raw watch response onto the unified
// stream shape, deriving the mime type from the HLS flag.
func streamDataFromConsumet(resp models.ConsumetWatchResponse) models.StreamData {
	out := models.EmptyStreamData()

	for _, s := range resp.Sources {
		mime := mimeMP4
		if s.IsM3U8 {
			mime = mimeHLS
		}
		out.Sources = append(out.Sources, models.StreamSource{
			URL:      s.URL,
			Quality:  s.Quality,
			MimeType: mime,
			IsM3U8:   s.IsM3U8,
		})
	}
	for _, s := range resp.Subtitles {
		out.Subtitles = append(out.Subtitles, models.Subtitle{
			URL:   s.URL,
			Lang:  s.Lang,
			Label: s.Lang,
		})
	}
	return out
}
