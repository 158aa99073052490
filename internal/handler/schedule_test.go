package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/kvstore"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

type stubDirectory map[uint64]model.TheaterType

func (d stubDirectory) TheaterTypes(context.Context) (map[uint64]model.TheaterType, error) {
	return d, nil
}

type stubCatalog map[uint64]*model.Movie

func (c stubCatalog) MovieByID(_ context.Context, id uint64) (*model.Movie, error) {
	return c[id], nil
}

func newScheduleHandler() *ScheduleHandler {
	dir := stubDirectory{1: model.TheaterDigital, 2: model.TheaterDigital}
	store := schedule.NewStore(kvstore.NewMemory(), dir, stubCatalog{
		10: {ID: 10, MovieName: "Inception", Duration: "45",
			StartAt: "2024-03-01", EndAt: "2024-03-31"},
	})
	return NewScheduleHandler(store, dir)
}

// request runs one handler method through a fresh echo context and
// decodes the JSON reply into out when it is non-nil.
func request(t *testing.T, h echo.HandlerFunc, method, body string, params map[string]string, out any) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names []string
	var values []string
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func dateParams(date string) map[string]string {
	return map[string]string{"date": date}
}

func TestPlaceShowtimeEndpoint(t *testing.T) {
	h := newScheduleHandler()

	var placed struct {
		Placed   bool            `json:"placed"`
		Showtime *model.Showtime `json:"showtime"`
	}
	rec := request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-05"), &placed)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, placed.Placed)
	require.NotNil(t, placed.Showtime)
	assert.Equal(t, "09:45", placed.Showtime.EndTime)

	// Conflicting drop: 200 with placed=false, not an error.
	var rejected struct {
		Placed bool `json:"placed"`
	}
	rec = request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:30"}`,
		dateParams("2024-03-05"), &rejected)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, rejected.Placed)
}

func TestPlaceShowtimeErrors(t *testing.T) {
	h := newScheduleHandler()

	var env struct {
		Error    string `json:"error"`
		Category string `json:"category"`
	}

	rec := request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":99,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-05"), &env)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not-found", env.Category)

	rec = request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:10"}`,
		dateParams("2024-03-05"), &env)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", env.Category)

	// Outside the play window.
	rec = request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-05-01"), &env)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "Inception")
}

func TestGetScheduleReturnsEmptyDraft(t *testing.T) {
	h := newScheduleHandler()

	var ds model.DailySchedule
	rec := request(t, h.GetSchedule, http.MethodGet, "", dateParams("2024-03-05"), &ds)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusDraft, ds.Status)
	assert.NotNil(t, ds.Showtimes)
	assert.Empty(t, ds.Showtimes)
	// The list must serialize as [] rather than null.
	assert.Contains(t, rec.Body.String(), `"showtimes":[]`)
}

func TestPublishGateOverHTTP(t *testing.T) {
	h := newScheduleHandler()

	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-05"), nil)

	var ds model.DailySchedule
	rec := request(t, h.PublishSchedule, http.MethodPost, "", dateParams("2024-03-05"), &ds)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusOnSale, ds.Status)

	// Any mutation after publish is forbidden.
	var env struct {
		Category string `json:"category"`
	}
	rec = request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":2,"startTime":"14:00"}`,
		dateParams("2024-03-05"), &env)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", env.Category)

	rec = request(t, h.PublishSchedule, http.MethodPost, "", dateParams("2024-03-05"), &env)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublishEmptyScheduleRejected(t *testing.T) {
	h := newScheduleHandler()

	var env struct {
		Category string `json:"category"`
	}
	rec := request(t, h.PublishSchedule, http.MethodPost, "", dateParams("2024-03-05"), &env)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", env.Category)
}

func TestRemoveShowtimeEndpoint(t *testing.T) {
	h := newScheduleHandler()

	var placed struct {
		Showtime model.Showtime `json:"showtime"`
	}
	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-05"), &placed)

	rec := request(t, h.RemoveShowtime, http.MethodDelete, "",
		map[string]string{"date": "2024-03-05", "id": placed.Showtime.ID}, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var env struct {
		Category string `json:"category"`
	}
	rec = request(t, h.RemoveShowtime, http.MethodDelete, "",
		map[string]string{"date": "2024-03-05", "id": placed.Showtime.ID}, &env)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not-found", env.Category)
}

func TestCopyScheduleEndpoint(t *testing.T) {
	h := newScheduleHandler()

	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-05"), nil)

	var res schedule.CopyResult
	rec := request(t, h.CopySchedule, http.MethodPost,
		`{"targetDate":"2024-03-06"}`, dateParams("2024-03-05"), &res)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, schedule.CopyResult{Copied: 1}, res)

	rec = request(t, h.CopySchedule, http.MethodPost,
		`{"targetDate":"garbage"}`, dateParams("2024-03-05"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewScheduleEndpoint(t *testing.T) {
	h := newScheduleHandler()

	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"12:00"}`,
		dateParams("2024-03-05"), nil)
	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":2,"startTime":"09:00"}`,
		dateParams("2024-03-05"), nil)

	var groups []schedule.MovieTypeGroup
	rec := request(t, h.PreviewSchedule, http.MethodGet, "", dateParams("2024-03-05"), &groups)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, groups, 1)
	assert.Equal(t, model.TheaterDigital, groups[0].TheaterType)
	assert.Equal(t, []string{"09:00", "12:00"}, groups[0].StartTimes)

	// Empty date previews as an empty array.
	rec = request(t, h.PreviewSchedule, http.MethodGet, "", dateParams("2024-03-09"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestListScheduleDatesEndpoint(t *testing.T) {
	h := newScheduleHandler()

	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-05"), nil)
	request(t, h.PlaceShowtime, http.MethodPost,
		`{"movieId":10,"theaterId":1,"startTime":"09:00"}`,
		dateParams("2024-03-06"), nil)
	request(t, h.PublishSchedule, http.MethodPost, "", dateParams("2024-03-06"), nil)

	var out schedule.StatusDates
	rec := request(t, h.ListScheduleDates, http.MethodGet, "", nil, &out)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"2024-03-05"}, out.DraftDates)
	assert.Equal(t, []string{"2024-03-06"}, out.SellingDates)
}

func TestSaveScheduleEndpoint(t *testing.T) {
	h := newScheduleHandler()

	var ds model.DailySchedule
	rec := request(t, h.SaveSchedule, http.MethodPut,
		`{"showtimes":[{"movieId":10,"theaterId":1,"startTime":"09:00"},{"movieId":10,"theaterId":1,"startTime":"10:00"}]}`,
		dateParams("2024-03-05"), &ds)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, ds.Showtimes, 2)

	// Internal conflict in a bulk save is a hard validation error.
	var env struct {
		Category string `json:"category"`
	}
	rec = request(t, h.SaveSchedule, http.MethodPut,
		`{"showtimes":[{"movieId":10,"theaterId":1,"startTime":"09:00"},{"movieId":10,"theaterId":1,"startTime":"09:30"}]}`,
		dateParams("2024-03-05"), &env)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", env.Category)
}
