package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	for duration, want := range map[string]int{
		"120":       120,
		"":          0,
		"two hours": 0,
		"-30":       0,
	} {
		m := Movie{Duration: duration}
		assert.Equal(t, want, m.DurationMinutes(), duration)
	}
}

func TestSchedulableOnIsDateInclusive(t *testing.T) {
	m := Movie{StartAt: "2024-03-01", EndAt: "2024-03-10"}

	assert.True(t, m.SchedulableOn("2024-03-01"))
	assert.True(t, m.SchedulableOn("2024-03-05"))
	assert.True(t, m.SchedulableOn("2024-03-10"))

	assert.False(t, m.SchedulableOn("2024-02-29"))
	assert.False(t, m.SchedulableOn("2024-03-11"))

	// Unparseable window or date fails closed.
	assert.False(t, m.SchedulableOn("bad date"))
	broken := Movie{StartAt: "soon", EndAt: "2024-03-10"}
	assert.False(t, broken.SchedulableOn("2024-03-05"))
}

func TestNormalizeMovieCoalescesLegacyAliases(t *testing.T) {
	m := NormalizeMovie(&MoviePayload{
		Name:        "Inception",
		Type:        "2D",
		Length:      "148",
		Rating:      "PG-13",
		Description: "  a heist inside dreams  ",
		StartAt:     "2024-03-01",
		EndAt:       "2024-03-31",
	})
	assert.Equal(t, "Inception", m.MovieName)
	assert.Equal(t, "2D", m.FilmType)
	assert.Equal(t, "148", m.Duration)
	assert.Equal(t, "PG-13", m.Category)
	assert.Equal(t, "a heist inside dreams", m.Describe)

	// Current field names win over their aliases.
	m = NormalizeMovie(&MoviePayload{MovieName: "New", Name: "Old", Duration: "90", Length: "80"})
	assert.Equal(t, "New", m.MovieName)
	assert.Equal(t, "90", m.Duration)
}

func TestTheaterTypeValid(t *testing.T) {
	for _, typ := range TheaterTypeOrder {
		assert.True(t, typ.Valid(), string(typ))
	}
	assert.False(t, TheaterType("Laser").Valid())
	assert.False(t, TheaterType("").Valid())
}
