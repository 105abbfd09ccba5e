package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrickster/vault/internal/models"
)

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ten point scale", "8.4", "84%"},
		{"hundred point scale", "84", "84%"},
		{"percent token", "84%", "84%"},
		{"percent with decimal", "84.6%", "85%"},
		{"boundary ten", "10", "100%"},
		{"boundary hundred", "100", "100%"},
		{"rounding", "7.35", "74%"},
		{"absent", "", "N/A"},
		{"whitespace", "   ", "N/A"},
		{"non numeric", "Excellent", "N/A"},
		{"negative", "-5", "N/A"},
		{"out of range", "120", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeRating(tt.raw))
		})
	}
}

func TestNormalizeVote(t *testing.T) {
	assert.Equal(t, "84%", normalizeVote(8.4))
	assert.Equal(t, "73%", normalizeVote(7.25))

	// TMDb serves zero for unrated titles
	assert.Equal(t, "N/A", normalizeVote(0))
}

func TestNormalizeScore(t *testing.T) {
	assert.Equal(t, "84%", normalizeScore(84))
	assert.Equal(t, "N/A", normalizeScore(0))
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, "2021", yearOf("2021-05-01"))
	assert.Equal(t, "2021", yearOf("2021"))
	assert.Equal(t, "N/A", yearOf(""))
	assert.Equal(t, "N/A", yearOf("   "))

	// Non-date tokens pass through untouched
	assert.Equal(t, "TV", yearOf("TV"))
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "A hero rises. The end.",
		stripHTML("A hero rises.<br><i>The end.</i>"))
	assert.Equal(t, "plain", stripHTML("plain"))
	assert.Empty(t, stripHTML("<b></b>"))
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 10))
	assert.Equal(t, "abcde…", shorten("abcdefgh", 5))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Empty(t, firstNonEmpty("", ""))
}

func TestMovieDomainOf(t *testing.T) {
	assert.Equal(t, models.DomainTV, movieDomainOf("TV Series"))
	assert.Equal(t, models.DomainTV, movieDomainOf("tv"))
	assert.Equal(t, models.DomainMovie, movieDomainOf("Movie"))
	assert.Equal(t, models.DomainMovie, movieDomainOf(""))
}
