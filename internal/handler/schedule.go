package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

// ScheduleHandler serves the daily showtime scheduler: fetch, full
// save, single-drop placement, drag-off removal, copy, publish and the
// grouped preview.
type ScheduleHandler struct {
	Store    *schedule.Store
	Theaters schedule.TheaterDirectory

	// InvalidateCache, when set, is called after every successful
	// mutation so the response cache for schedule reads is bumped.
	InvalidateCache func(ctx context.Context)

	// PublishEvent, when set, delivers broker events after a
	// successful publish or verify; main wires it to queue.Publish.
	// Failures are the broker's problem, never the user's.
	PublishEvent func(ctx context.Context, queueName string, event any) error
}

// NewScheduleHandler constructs a ScheduleHandler around the store.
func NewScheduleHandler(store *schedule.Store, theaters schedule.TheaterDirectory) *ScheduleHandler {
	if store == nil || theaters == nil {
		panic("nil dependency passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Store: store, Theaters: theaters}
}

// scheduleError maps store errors to the uniform error envelope.
func scheduleError(c echo.Context, err error) error {
	var window *schedule.PlayWindowError
	switch {
	case errors.Is(err, schedule.ErrSchedulePublished):
		// State error: the one-way publish gate, not a per-placement
		// judgment, hence forbidden rather than a validation reply.
		return fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, schedule.ErrMovieNotFound),
		errors.Is(err, schedule.ErrShowtimeNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.As(err, &window),
		errors.Is(err, schedule.ErrBadStartTime),
		errors.Is(err, schedule.ErrEmptySchedule),
		errors.Is(err, schedule.ErrShowtimeConflict):
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if _, dateErr := schedule.NormalizeDate(c.Param("date")); dateErr != nil {
		return fail(c, http.StatusBadRequest, "invalid date")
	}
	return fail(c, http.StatusInternalServerError, "schedule store error")
}

func (h *ScheduleHandler) invalidate(ctx context.Context) {
	if h.InvalidateCache != nil {
		h.InvalidateCache(ctx)
	}
}

// GetSchedule handles GET /v1/schedules/:date.
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	ds, err := h.Store.Get(c.Request().Context(), c.Param("date"))
	if err != nil {
		return scheduleError(c, err)
	}
	if ds.Showtimes == nil {
		ds.Showtimes = []model.Showtime{} // empty drafts serialize with an empty list
	}
	return c.JSON(http.StatusOK, ds)
}

// SaveSchedule handles PUT /v1/schedules/:date: a full replace of the
// date's showtime list, re-validated entry by entry.
func (h *ScheduleHandler) SaveSchedule(c echo.Context) error {
	var body struct {
		Showtimes []schedule.Placement `json:"showtimes"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	ds, err := h.Store.Save(c.Request().Context(), c.Param("date"), body.Showtimes)
	if err != nil {
		return scheduleError(c, err)
	}
	h.invalidate(c.Request().Context())
	return c.JSON(http.StatusOK, ds)
}

// PlaceShowtime handles POST /v1/schedules/:date/showtimes: one drop
// on the scheduling board.  A conflicting drop is not an error; the
// response reports placed=false and the board stays unchanged.
func (h *ScheduleHandler) PlaceShowtime(c echo.Context) error {
	var body schedule.Placement
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	st, placed, err := h.Store.Place(c.Request().Context(), c.Param("date"), body)
	if err != nil {
		return scheduleError(c, err)
	}
	if !placed {
		return c.JSON(http.StatusOK, echo.Map{"placed": false})
	}
	h.invalidate(c.Request().Context())
	return c.JSON(http.StatusCreated, echo.Map{"placed": true, "showtime": st})
}

// RemoveShowtime handles DELETE /v1/schedules/:date/showtimes/:id,
// the drag-off-the-board removal.
func (h *ScheduleHandler) RemoveShowtime(c echo.Context) error {
	err := h.Store.Remove(c.Request().Context(), c.Param("date"), c.Param("id"))
	if err != nil {
		return scheduleError(c, err)
	}
	h.invalidate(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// CopySchedule handles POST /v1/schedules/:date/copy.  Showtimes whose
// movie cannot play on the target date are counted as skipped, not
// failed.
func (h *ScheduleHandler) CopySchedule(c echo.Context) error {
	var body struct {
		TargetDate string `json:"targetDate"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	res, err := h.Store.Copy(c.Request().Context(), c.Param("date"), body.TargetDate)
	if err != nil {
		if _, dateErr := schedule.NormalizeDate(body.TargetDate); dateErr != nil {
			return fail(c, http.StatusBadRequest, "invalid targetDate")
		}
		return scheduleError(c, err)
	}
	h.invalidate(c.Request().Context())
	return c.JSON(http.StatusOK, res)
}

// PublishSchedule handles POST /v1/schedules/:date/publish: the
// one-way DRAFT → ON_SALE transition.  On success a broker event is
// emitted best-effort.
func (h *ScheduleHandler) PublishSchedule(c echo.Context) error {
	ds, err := h.Store.Publish(c.Request().Context(), c.Param("date"))
	if err != nil {
		return scheduleError(c, err)
	}
	h.invalidate(c.Request().Context())
	if h.PublishEvent != nil {
		userID, _ := getUserID(c)
		ev := queue.SchedulePublishedEvent{
			Date:          ds.Date,
			ShowtimeCount: len(ds.Showtimes),
			PublishedBy:   userID,
			PublishedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.PublishEvent(context.Background(), queue.SchedulePublishedQueue, ev) }()
	}
	return c.JSON(http.StatusOK, ds)
}

// PreviewSchedule handles GET /v1/schedules/:date/preview and returns
// the movie-by-theater-type grouping.
func (h *ScheduleHandler) PreviewSchedule(c echo.Context) error {
	ctx := c.Request().Context()
	ds, err := h.Store.Get(ctx, c.Param("date"))
	if err != nil {
		return scheduleError(c, err)
	}
	types, err := h.Theaters.TheaterTypes(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not resolve theaters")
	}
	groups := schedule.GroupForPreview(ds.Showtimes, types)
	if groups == nil {
		groups = []schedule.MovieTypeGroup{}
	}
	return c.JSON(http.StatusOK, groups)
}

// ListScheduleDates handles GET /v1/schedules for the calendar
// overview: which dates hold drafts and which are on sale.
func (h *ScheduleHandler) ListScheduleDates(c echo.Context) error {
	out, err := h.Store.StatusDates(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "schedule store error")
	}
	if out.DraftDates == nil {
		out.DraftDates = []string{}
	}
	if out.SellingDates == nil {
		out.SellingDates = []string{}
	}
	return c.JSON(http.StatusOK, out)
}
