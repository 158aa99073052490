package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/seatmap"
)

// TheaterCatalog is the persistence surface the theater handlers need.
// *repository.TheaterRepo satisfies it; tests provide a fake.
type TheaterCatalog interface {
	Create(ctx context.Context, t *model.Theater) error
	GetByID(ctx context.Context, id uint64) (*model.Theater, error)
	List(ctx context.Context) ([]model.Theater, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// TheaterHandler serves the seat-map builder submissions and the
// theater list the scheduler drags onto.
type TheaterHandler struct {
	Theaters TheaterCatalog
}

// NewTheaterHandler constructs a TheaterHandler.
func NewTheaterHandler(theaters TheaterCatalog) *TheaterHandler {
	if theaters == nil {
		panic("nil catalog passed to NewTheaterHandler")
	}
	return &TheaterHandler{Theaters: theaters}
}

// CreateTheater handles POST /v1/theaters: the submission of the seat
// builder.  The seat matrix arrives as the wire cell literals; seat
// statistics are re-derived server-side, and a layout with zero
// assigned cells is rejected the same way the builder disables its
// submit button.
func (h *TheaterHandler) CreateTheater(c echo.Context) error {
	var body struct {
		Name        string     `json:"name"`
		Type        string     `json:"type"`
		Floor       string     `json:"floor"`
		RowCount    int        `json:"rowCount"`
		ColumnCount int        `json:"columnCount"`
		Seats       [][]string `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	typ := model.TheaterType(strings.TrimSpace(body.Type))
	if !typ.Valid() {
		return fail(c, http.StatusBadRequest, "type must be one of Digital, IMAX, 4DX")
	}
	grid, err := seatmap.FromMatrix(body.Seats)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if body.RowCount != grid.Rows() || body.ColumnCount != grid.Cols() {
		return fail(c, http.StatusBadRequest, "rowCount/columnCount do not match the seat matrix")
	}
	stats := grid.Stats()
	if stats.TotalAssigned == 0 {
		return fail(c, http.StatusBadRequest, "at least one cell must be assigned")
	}

	theater := &model.Theater{
		Name:            name,
		Type:            typ,
		Floor:           strings.TrimSpace(body.Floor),
		RowCount:        grid.Rows(),
		ColumnCount:     grid.Cols(),
		SeatMap:         grid.Matrix(),
		NormalSeats:     stats.NormalSeats,
		AccessibleSeats: stats.AccessibleSeats,
	}
	if err := h.Theaters.Create(c.Request().Context(), theater); err != nil {
		return fail(c, http.StatusInternalServerError, "could not create theater")
	}
	return c.JSON(http.StatusCreated, theater)
}

// ListTheaters handles GET /v1/theaters.
func (h *TheaterHandler) ListTheaters(c echo.Context) error {
	theaters, err := h.Theaters.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not list theaters")
	}
	if theaters == nil {
		theaters = []model.Theater{}
	}
	return c.JSON(http.StatusOK, theaters)
}

// GetTheater handles GET /v1/theaters/:id and returns the full record
// including the seat matrix.
func (h *TheaterHandler) GetTheater(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	theater, err := h.Theaters.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return fail(c, http.StatusNotFound, "theater not found")
		}
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, theater)
}

// DeleteTheater handles DELETE /v1/theaters/:id.
func (h *TheaterHandler) DeleteTheater(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Theaters.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return fail(c, http.StatusNotFound, "theater not found")
		}
		return fail(c, http.StatusInternalServerError, "db error")
	}
	return c.NoContent(http.StatusNoContent)
}
