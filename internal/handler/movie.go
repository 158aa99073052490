package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
)

// MovieCatalog is the persistence surface the movie handlers need.
type MovieCatalog interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// MovieHandler serves the movie catalog collaborator: a thin CRUD
// surface whose only real rules are a decodable duration and a sane
// play window.
type MovieHandler struct {
	Movies MovieCatalog
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(movies MovieCatalog) *MovieHandler {
	if movies == nil {
		panic("nil catalog passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies}
}

// CreateMovie handles POST /v1/movies.  The payload passes through the
// normalization adapter first so legacy field aliases from the older
// admin frontend are coalesced before validation.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var payload model.MoviePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	m := model.NormalizeMovie(&payload)
	if m.MovieName == "" {
		return fail(c, http.StatusBadRequest, "movieName is required")
	}
	if n, err := strconv.Atoi(m.Duration); err != nil || n <= 0 {
		return fail(c, http.StatusBadRequest, "duration must be a positive integer of minutes")
	}
	start, err := time.Parse(model.DateLayout, m.StartAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "startAt must be YYYY-MM-DD")
	}
	end, err := time.Parse(model.DateLayout, m.EndAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "endAt must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fail(c, http.StatusBadRequest, "endAt must not be before startAt")
	}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create movie")
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMovies handles GET /v1/movies.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list movies")
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return c.JSON(http.StatusOK, movies)
}

// GetMovie handles GET /v1/movies/:id.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return fail(c, http.StatusNotFound, "movie not found")
		}
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/movies/:id.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Movies.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return fail(c, http.StatusNotFound, "movie not found")
		}
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return c.NoContent(http.StatusNoContent)
}
