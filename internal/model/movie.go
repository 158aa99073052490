package model

import (
	"strconv"
	"time"
)

// DateLayout is the canonical date format used for schedule keys and
// movie play windows.
const DateLayout = "2006-01-02"

// Movie is a catalog entry managed by the back office.  Duration is a
// string-encoded integer of minutes, kept as received from the catalog
// collaborator; StartAt and EndAt bound the calendar dates on which the
// movie may be scheduled (inclusive on both ends).
//
// Fields:
//  ID          – primary key identifier.
//  MovieName   – localized display title.
//  FilmType    – projection format of the print (e.g. Digital, IMAX).
//  Duration    – running time in minutes, string-encoded.
//  Category    – audience rating.
//  Director    – director credit.
//  Actors      – cast credit line.
//  Describe    – synopsis text.
//  TrailerLink – external trailer URL.
//  Poster      – external poster URL.
//  StartAt     – first schedulable calendar date (DateLayout).
//  EndAt       – last schedulable calendar date (DateLayout).
type Movie struct {
	ID          uint64 `json:"id"`
	MovieName   string `json:"movieName"`
	FilmType    string `json:"filmType"`
	Duration    string `json:"duration"`
	Category    string `json:"category"`
	Director    string `json:"director"`
	Actors      string `json:"actors"`
	Describe    string `json:"describe"`
	TrailerLink string `json:"trailerLink"`
	Poster      string `json:"poster"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
}

// DurationMinutes decodes the string-encoded duration.  A missing or
// malformed duration yields zero minutes rather than an error; callers
// that require a positive duration validate separately.
func (m *Movie) DurationMinutes() int {
	n, err := strconv.Atoi(m.Duration)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SchedulableOn reports whether the movie's play window covers the
// given calendar date.  The comparison is date-only; both window ends
// are inclusive, so a movie may be scheduled exactly on StartAt and on
// EndAt.  An unparsable window field fails closed.
func (m *Movie) SchedulableOn(date string) bool {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	start, err := time.Parse(DateLayout, m.StartAt)
	if err != nil {
		return false
	}
	end, err := time.Parse(DateLayout, m.EndAt)
	if err != nil {
		return false
	}
	return !d.Before(start) && !d.After(end)
}
