package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vrickster/vault/internal/constants"
)

const ratingNA = "N/A"

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// normalizeRating maps the rating scales served by different providers
// onto one textual form. A 0-10 score, a 0-100 score and an "NN%" token
// all render as "NN%" (integer, rounded); anything absent or unusable
// renders as "N/A".
func normalizeRating(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ratingNA
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return ratingNA
	}
	if v <= 10 {
		v *= 10
	}
	if v > 100 {
		return ratingNA
	}
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}

// normalizeVote handles TMDb's numeric 0-10 vote_average, where zero means
// unrated rather than a true score.
func normalizeVote(vote float64) string {
	if vote <= 0 {
		return ratingNA
	}
	return fmt.Sprintf("%d%%", int(math.Round(vote*10)))
}

// normalizeScore handles AniList's integer 0-100 averageScore.
func normalizeScore(score int) string {
	if score <= 0 {
		return ratingNA
	}
	return fmt.Sprintf("%d%%", score)
}

// yearOf extracts a four-digit year from a date or year token, falling
// back to "N/A" when the field is absent.
func yearOf(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ratingNA
	}
	if len(s) >= 4 && isDigits(s[:4]) {
		return s[:4]
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// stripHTML flattens the markup AniList embeds in descriptions.
func stripHTML(s string) string {
	s = strings.ReplaceAll(s, "<br>", " ")
	s = htmlTagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// shorten truncates a description for list views.
func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// tmdbImage resolves a TMDb poster path against the image CDN.
func tmdbImage(path string) string {
	if path == "" {
		return ""
	}
	return constants.TMDBImageBase + path
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
