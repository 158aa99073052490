package model

// ScheduleStatus tracks the lifecycle of a daily schedule.  The only
// transition is DRAFT → ON_SALE; once on sale a schedule is immutable.
type ScheduleStatus string

const (
	StatusDraft  ScheduleStatus = "DRAFT"
	StatusOnSale ScheduleStatus = "ON_SALE"
)

// Showtime is a single scheduled screening: one movie, one theater,
// one start time on a 15-minute grid.  EndTime is always derived from
// the movie's duration, never supplied by a caller.  MovieName is a
// denormalized display reference so preview projections do not need a
// catalog lookup per entry.
//
// Fields:
//  ID        – opaque identifier, unique within a daily schedule.
//  MovieID   – catalog reference of the scheduled movie.
//  MovieName – denormalized movie title at placement time.
//  TheaterID – theater the screening takes place in.
//  StartTime – "HH:MM", constrained to 15-minute increments.
//  EndTime   – "HH:MM", StartTime plus the movie duration.
type Showtime struct {
	ID        string `json:"id"`
	MovieID   uint64 `json:"movieId"`
	MovieName string `json:"movieName,omitempty"`
	TheaterID uint64 `json:"theaterId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DailySchedule holds every showtime of one calendar date together
// with its publication status.  The showtime list is treated as a
// value: read, mutated and written back atomically per user action.
type DailySchedule struct {
	Date      string         `json:"date"`
	Status    ScheduleStatus `json:"status"`
	Showtimes []Showtime     `json:"showtimes"`
}

// Published reports whether the schedule has crossed the one-way
// DRAFT → ON_SALE gate.
func (s *DailySchedule) Published() bool {
	return s.Status == StatusOnSale
}
