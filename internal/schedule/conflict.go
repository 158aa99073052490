package schedule

import "github.com/iliyamo/cinema-scheduler/internal/model"

// MinSameMovieGap is the minimum start-time distance, in minutes,
// between two showings of the same movie across theaters of one type.
// Sibling theaters of a type share a print window, so starts closer
// than this are rejected.
const MinSameMovieGap = 15

// Candidate is a proposed placement checked against a date's existing
// showtimes.  ExcludeID names the showtime being moved, if any, so a
// move does not conflict with itself at its old slot.
type Candidate struct {
	TheaterID uint64
	MovieID   uint64
	StartTime string
	EndTime   string
	ExcludeID string
}

// HasConflict reports whether the candidate collides with any existing
// showtime of the same calendar date.  types maps theater ids to their
// projection format; an unknown candidate theater fails open (no
// conflict reported) since that is a data-lookup problem, not a
// scheduling judgment.
//
// Two rules apply, and the first hit wins:
//
//  1. Same theater: the half-open intervals [start, end) overlap.
//     Touching intervals, where one starts exactly as the other ends,
//     do not conflict.
//  2. Different theater, same movie: the other theater has the same
//     type and the start times are less than MinSameMovieGap minutes
//     apart.  The rule never applies across different theater types
//     or to different movies.
func HasConflict(existing []model.Showtime, cand Candidate, types map[uint64]model.TheaterType) bool {
	candType, ok := types[cand.TheaterID]
	if !ok {
		return false
	}
	candStart, err := ParseClock(cand.StartTime)
	if err != nil {
		return false
	}
	candEnd, err := ParseClock(cand.EndTime)
	if err != nil {
		return false
	}
	if candEnd <= candStart {
		// End time wrapped past midnight; treat the screening as
		// running to the end of the day for overlap purposes.
		candEnd += 24 * 60
	}

	for _, st := range existing {
		if cand.ExcludeID != "" && st.ID == cand.ExcludeID {
			continue
		}
		start, err := ParseClock(st.StartTime)
		if err != nil {
			continue
		}
		if st.TheaterID == cand.TheaterID {
			end, err := ParseClock(st.EndTime)
			if err != nil {
				continue
			}
			if end <= start {
				end += 24 * 60
			}
			if candStart < end && candEnd > start {
				return true
			}
			continue
		}
		if st.MovieID != cand.MovieID {
			continue
		}
		if t, ok := types[st.TheaterID]; !ok || t != candType {
			continue
		}
		diff := candStart - start
		if diff < 0 {
			diff = -diff
		}
		if diff < MinSameMovieGap {
			return true
		}
	}
	return false
}
