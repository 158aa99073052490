package schedule

import (
	"sort"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// MovieTypeGroup is one row of the schedule preview: a single movie in
// a single theater type with every start time of that pairing, sorted
// ascending.
type MovieTypeGroup struct {
	TheaterType model.TheaterType `json:"theaterType"`
	MovieID     uint64            `json:"movieId"`
	MovieName   string            `json:"movieName"`
	StartTimes  []string          `json:"startTimes"`
}

// GroupForPreview partitions a flat showtime list first by theater
// type in the fixed priority order (Digital, then the premium
// formats), then by movie in first-seen order within each type.  The
// double grouping is ordering-stable so the preview lays out the same
// way on every render.  Showtimes in theaters missing from the type
// map are not displayable and are left out.
func GroupForPreview(showtimes []model.Showtime, types map[uint64]model.TheaterType) []MovieTypeGroup {
	byType := make(map[model.TheaterType][]model.Showtime)
	for _, st := range showtimes {
		t, ok := types[st.TheaterID]
		if !ok {
			continue
		}
		byType[t] = append(byType[t], st)
	}

	var groups []MovieTypeGroup
	for _, t := range model.TheaterTypeOrder {
		var order []uint64
		byMovie := make(map[uint64]*MovieTypeGroup)
		for _, st := range byType[t] {
			g, ok := byMovie[st.MovieID]
			if !ok {
				g = &MovieTypeGroup{
					TheaterType: t,
					MovieID:     st.MovieID,
					MovieName:   st.MovieName,
				}
				byMovie[st.MovieID] = g
				order = append(order, st.MovieID)
			}
			g.StartTimes = append(g.StartTimes, st.StartTime)
		}
		for _, id := range order {
			g := byMovie[id]
			sort.Strings(g.StartTimes)
			groups = append(groups, *g)
		}
	}
	return groups
}
