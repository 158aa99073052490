package schedule

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the store.  Conflict rejections are NOT
// errors: a conflicting placement is a designed no-op reported through
// Place's boolean result, while these represent validation and state
// failures that abort before any mutation.
var (
	// ErrSchedulePublished guards the one-way DRAFT → ON_SALE gate:
	// any mutating operation against an on-sale date fails with it,
	// checked before any conflict resolution runs.
	ErrSchedulePublished = errors.New("schedule is on sale and can no longer be modified")

	// ErrEmptySchedule is returned when publishing a date that has no
	// showtimes.
	ErrEmptySchedule = errors.New("schedule has no showtimes to publish")

	// ErrShowtimeNotFound is returned when removing or moving a
	// showtime id that is not on the date's schedule.
	ErrShowtimeNotFound = errors.New("showtime not found")

	// ErrMovieNotFound is returned when a placement references an
	// unknown catalog movie.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrShowtimeConflict is returned by full-replace saves whose
	// payload contains a conflicting pair.  Drag-and-drop placement
	// never returns it; only the wire PUT does, since a bulk payload
	// cannot be partially no-op'd.
	ErrShowtimeConflict = errors.New("showtimes conflict")
)

// PlayWindowError rejects a placement whose target date falls outside
// the movie's [StartAt, EndAt] window.  It carries the window so the
// caller can cite the valid range in its message.
type PlayWindowError struct {
	MovieName string
	StartAt   string
	EndAt     string
	Date      string
}

func (e *PlayWindowError) Error() string {
	return fmt.Sprintf("%s can only be scheduled between %s and %s (got %s)",
		e.MovieName, e.StartAt, e.EndAt, e.Date)
}
