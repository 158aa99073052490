package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-scheduler/internal/kvstore"
	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// keyPrefix namespaces daily schedules inside the key-value store.
const keyPrefix = "schedule:"

// ErrBadStartTime rejects placements whose start time is not a valid
// clock on the 15-minute grid.
var ErrBadStartTime = errors.New("start time must be HH:MM on a 15-minute boundary")

// TheaterDirectory resolves theater ids to projection formats.  The
// store snapshots the full mapping once per operation so the pure
// conflict resolver never performs I/O.
type TheaterDirectory interface {
	TheaterTypes(ctx context.Context) (map[uint64]model.TheaterType, error)
}

// MovieCatalog looks up catalog movies for duration and play-window
// checks.  Implementations return (nil, nil) for an unknown id.
type MovieCatalog interface {
	MovieByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// Placement is one requested showtime: the explicit dragged item
// passed down the drop-handling chain.  ExcludeID is set when the
// dragged item is an already-placed showtime being moved.
type Placement struct {
	MovieID   uint64 `json:"movieId"`
	TheaterID uint64 `json:"theaterId"`
	StartTime string `json:"startTime"`
	ExcludeID string `json:"excludeId,omitempty"`
}

// CopyResult reports the outcome of duplicating a schedule to another
// date.  Skipped counts showtimes whose movie is outside its play
// window at the target date; those are dropped, not errors.
type CopyResult struct {
	Copied  int `json:"copiedCount"`
	Skipped int `json:"skippedCount"`
}

// StatusDates buckets every stored date for the calendar overview.  A
// date appears in exactly one bucket: selling once published, draft
// while it holds any unpublished showtimes, absent otherwise.
type StatusDates struct {
	DraftDates   []string `json:"draftDates"`
	SellingDates []string `json:"sellingDates"`
}

// Store keeps one DailySchedule per calendar date in the key-value
// port.  Each date's showtime list is read, mutated and written back
// under a per-date mutex so two user-triggered writes cannot
// interleave on the same key.
type Store struct {
	kv       kvstore.Store
	theaters TheaterDirectory
	movies   MovieCatalog

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore wires the schedule store to its persistence port and the
// two catalog collaborators.
func NewStore(kv kvstore.Store, theaters TheaterDirectory, movies MovieCatalog) *Store {
	if kv == nil || theaters == nil || movies == nil {
		panic("nil dependency passed to schedule.NewStore")
	}
	return &Store{
		kv:       kv,
		theaters: theaters,
		movies:   movies,
		locks:    make(map[string]*sync.Mutex),
	}
}

// dateLock returns the mutex guarding one date key, creating it on
// first use.
func (s *Store) dateLock(date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[date]
	if !ok {
		l = &sync.Mutex{}
		s.locks[date] = l
	}
	return l
}

// load reads and decodes one date's schedule.  A date that was never
// written is an empty draft, not an error.
func (s *Store) load(ctx context.Context, date string) (*model.DailySchedule, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+date)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return &model.DailySchedule{Date: date, Status: model.StatusDraft}, nil
		}
		return nil, fmt.Errorf("load schedule %s: %w", date, err)
	}
	var ds model.DailySchedule
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode schedule %s: %w", date, err)
	}
	ds.Date = date
	return &ds, nil
}

func (s *Store) persist(ctx context.Context, ds *model.DailySchedule) error {
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode schedule %s: %w", ds.Date, err)
	}
	if err := s.kv.Set(ctx, keyPrefix+ds.Date, raw); err != nil {
		return fmt.Errorf("save schedule %s: %w", ds.Date, err)
	}
	return nil
}

// Get returns the schedule of one date, empty draft included.
func (s *Store) Get(ctx context.Context, date string) (*model.DailySchedule, error) {
	d, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, d)
}

// Place handles one drop: validate, derive the end time, resolve
// conflicts and insert.  The boolean result reports whether the
// showtime was placed; a conflicting placement returns (nil, false,
// nil) because conflicts are designed no-ops, not failures.  All other
// rejections are errors and leave the stored list untouched.
func (s *Store) Place(ctx context.Context, date string, p Placement) (*model.Showtime, bool, error) {
	d, err := NormalizeDate(date)
	if err != nil {
		return nil, false, err
	}
	l := s.dateLock(d)
	l.Lock()
	defer l.Unlock()

	ds, err := s.load(ctx, d)
	if err != nil {
		return nil, false, err
	}
	if ds.Published() {
		return nil, false, ErrSchedulePublished
	}
	if p.ExcludeID != "" {
		// A move must reference a showtime that is actually on this
		// date's schedule; otherwise the window skip below would let a
		// fabricated id smuggle in an out-of-window placement.
		found := false
		for _, existing := range ds.Showtimes {
			if existing.ID == p.ExcludeID {
				found = true
				break
			}
		}
		if !found {
			return nil, false, ErrShowtimeNotFound
		}
	}

	movie, err := s.movies.MovieByID(ctx, p.MovieID)
	if err != nil {
		return nil, false, err
	}
	if movie == nil {
		return nil, false, ErrMovieNotFound
	}
	// Moves stay on the same date, so the play window was validated
	// when the showtime first landed; only new drops are checked.
	if p.ExcludeID == "" && !movie.SchedulableOn(d) {
		return nil, false, &PlayWindowError{
			MovieName: movie.MovieName,
			StartAt:   movie.StartAt,
			EndAt:     movie.EndAt,
			Date:      d,
		}
	}
	if !OnSlotGrid(p.StartTime) {
		return nil, false, ErrBadStartTime
	}
	end, err := AddMinutes(p.StartTime, movie.DurationMinutes())
	if err != nil {
		return nil, false, ErrBadStartTime
	}

	types, err := s.theaters.TheaterTypes(ctx)
	if err != nil {
		return nil, false, err
	}
	cand := Candidate{
		TheaterID: p.TheaterID,
		MovieID:   p.MovieID,
		StartTime: p.StartTime,
		EndTime:   end,
		ExcludeID: p.ExcludeID,
	}
	if HasConflict(ds.Showtimes, cand, types) {
		return nil, false, nil
	}

	st := model.Showtime{
		ID:        uuid.NewString(),
		MovieID:   p.MovieID,
		MovieName: movie.MovieName,
		TheaterID: p.TheaterID,
		StartTime: p.StartTime,
		EndTime:   end,
	}
	if p.ExcludeID != "" {
		// Move: drop the old slot and keep the identity.
		kept := ds.Showtimes[:0]
		for _, existing := range ds.Showtimes {
			if existing.ID == p.ExcludeID {
				st.ID = existing.ID
				continue
			}
			kept = append(kept, existing)
		}
		ds.Showtimes = kept
	}
	ds.Showtimes = append(ds.Showtimes, st)
	if err := s.persist(ctx, ds); err != nil {
		return nil, false, err
	}
	return &st, true, nil
}

// Save replaces one date's showtime list wholesale.  Every entry is
// re-validated from scratch; unlike drag-and-drop placement, a
// conflicting pair inside a bulk payload is a hard ErrShowtimeConflict
// because a full replace cannot silently drop part of its input.
func (s *Store) Save(ctx context.Context, date string, entries []Placement) (*model.DailySchedule, error) {
	d, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	l := s.dateLock(d)
	l.Lock()
	defer l.Unlock()

	cur, err := s.load(ctx, d)
	if err != nil {
		return nil, err
	}
	if cur.Published() {
		return nil, ErrSchedulePublished
	}

	types, err := s.theaters.TheaterTypes(ctx)
	if err != nil {
		return nil, err
	}
	ds := &model.DailySchedule{Date: d, Status: model.StatusDraft}
	for _, p := range entries {
		movie, err := s.movies.MovieByID(ctx, p.MovieID)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, ErrMovieNotFound
		}
		if !movie.SchedulableOn(d) {
			return nil, &PlayWindowError{
				MovieName: movie.MovieName,
				StartAt:   movie.StartAt,
				EndAt:     movie.EndAt,
				Date:      d,
			}
		}
		if !OnSlotGrid(p.StartTime) {
			return nil, ErrBadStartTime
		}
		end, err := AddMinutes(p.StartTime, movie.DurationMinutes())
		if err != nil {
			return nil, ErrBadStartTime
		}
		cand := Candidate{
			TheaterID: p.TheaterID,
			MovieID:   p.MovieID,
			StartTime: p.StartTime,
			EndTime:   end,
		}
		if HasConflict(ds.Showtimes, cand, types) {
			return nil, ErrShowtimeConflict
		}
		ds.Showtimes = append(ds.Showtimes, model.Showtime{
			ID:        uuid.NewString(),
			MovieID:   p.MovieID,
			MovieName: movie.MovieName,
			TheaterID: p.TheaterID,
			StartTime: p.StartTime,
			EndTime:   end,
		})
	}
	if err := s.persist(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Remove deletes one showtime from a draft date, the "drag off the
// board" action.
func (s *Store) Remove(ctx context.Context, date, id string) error {
	d, err := NormalizeDate(date)
	if err != nil {
		return err
	}
	l := s.dateLock(d)
	l.Lock()
	defer l.Unlock()

	ds, err := s.load(ctx, d)
	if err != nil {
		return err
	}
	if ds.Published() {
		return ErrSchedulePublished
	}
	kept := ds.Showtimes[:0]
	found := false
	for _, st := range ds.Showtimes {
		if st.ID == id {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return ErrShowtimeNotFound
	}
	ds.Showtimes = kept
	return s.persist(ctx, ds)
}

// Copy duplicates the source date's showtimes onto the target date,
// overwriting whatever the target held.  Showtimes whose movie cannot
// play on the target date are skipped rather than failing the whole
// copy.  Copies receive fresh ids; the target must not be published.
func (s *Store) Copy(ctx context.Context, srcDate, dstDate string) (CopyResult, error) {
	var res CopyResult
	src, err := NormalizeDate(srcDate)
	if err != nil {
		return res, err
	}
	dst, err := NormalizeDate(dstDate)
	if err != nil {
		return res, err
	}
	l := s.dateLock(dst)
	l.Lock()
	defer l.Unlock()

	target, err := s.load(ctx, dst)
	if err != nil {
		return res, err
	}
	if target.Published() {
		return res, ErrSchedulePublished
	}
	source, err := s.load(ctx, src)
	if err != nil {
		return res, err
	}

	out := &model.DailySchedule{Date: dst, Status: model.StatusDraft}
	for _, st := range source.Showtimes {
		movie, err := s.movies.MovieByID(ctx, st.MovieID)
		if err != nil {
			return res, err
		}
		if movie == nil || !movie.SchedulableOn(dst) {
			res.Skipped++
			continue
		}
		cp := st
		cp.ID = uuid.NewString()
		out.Showtimes = append(out.Showtimes, cp)
		res.Copied++
	}
	if err := s.persist(ctx, out); err != nil {
		return CopyResult{}, err
	}
	return res, nil
}

// Publish flips a date from DRAFT to ON_SALE.  The transition is
// one-way: publishing twice fails, and every later mutation against
// the date fails at the gate.  Empty schedules cannot be published.
func (s *Store) Publish(ctx context.Context, date string) (*model.DailySchedule, error) {
	d, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	l := s.dateLock(d)
	l.Lock()
	defer l.Unlock()

	ds, err := s.load(ctx, d)
	if err != nil {
		return nil, err
	}
	if ds.Published() {
		return nil, ErrSchedulePublished
	}
	if len(ds.Showtimes) == 0 {
		return nil, ErrEmptySchedule
	}
	ds.Status = model.StatusOnSale
	if err := s.persist(ctx, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// HasDraft reports whether a date holds unpublished showtimes.
func (s *Store) HasDraft(ctx context.Context, date string) (bool, error) {
	ds, err := s.Get(ctx, date)
	if err != nil {
		return false, err
	}
	return !ds.Published() && len(ds.Showtimes) > 0, nil
}

// StatusDates walks every stored date and buckets it for the calendar
// overview.  Dates come back sorted because the key listing is sorted.
func (s *Store) StatusDates(ctx context.Context) (StatusDates, error) {
	var out StatusDates
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return out, fmt.Errorf("list schedules: %w", err)
	}
	for _, key := range keys {
		date := key[len(keyPrefix):]
		ds, err := s.load(ctx, date)
		if err != nil {
			return StatusDates{}, err
		}
		switch {
		case ds.Published():
			out.SellingDates = append(out.SellingDates, date)
		case len(ds.Showtimes) > 0:
			out.DraftDates = append(out.DraftDates, date)
		}
	}
	return out, nil
}
