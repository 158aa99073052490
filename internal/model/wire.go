package model

import "strings"

// MoviePayload is the raw movie shape accepted at the boundary.  Two
// generations of the admin frontend are still in use and name several
// fields differently; each legacy alias is coalesced here so the rest
// of the service only ever sees the canonical Movie entity.
type MoviePayload struct {
	MovieName   string `json:"movieName"`
	Name        string `json:"name"` // legacy alias for movieName
	FilmType    string `json:"filmType"`
	Type        string `json:"type"` // legacy alias for filmType
	Duration    string `json:"duration"`
	Length      string `json:"length"` // legacy alias for duration
	Category    string `json:"category"`
	Rating      string `json:"rating"` // legacy alias for category
	Director    string `json:"director"`
	Actors      string `json:"actors"`
	Describe    string `json:"describe"`
	Description string `json:"description"` // legacy alias for describe
	TrailerLink string `json:"trailerLink"`
	Poster      string `json:"poster"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
}

// NormalizeMovie maps a raw payload to the canonical Movie, preferring
// current field names and falling back to their legacy aliases.
func NormalizeMovie(p *MoviePayload) *Movie {
	return &Movie{
		MovieName:   coalesce(p.MovieName, p.Name),
		FilmType:    coalesce(p.FilmType, p.Type),
		Duration:    coalesce(p.Duration, p.Length),
		Category:    coalesce(p.Category, p.Rating),
		Director:    strings.TrimSpace(p.Director),
		Actors:      strings.TrimSpace(p.Actors),
		Describe:    coalesce(p.Describe, p.Description),
		TrailerLink: strings.TrimSpace(p.TrailerLink),
		Poster:      strings.TrimSpace(p.Poster),
		StartAt:     strings.TrimSpace(p.StartAt),
		EndAt:       strings.TrimSpace(p.EndAt),
	}
}

// coalesce returns the first non-blank value after trimming.
func coalesce(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
