package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
	"github.com/iliyamo/cinema-scheduler/internal/ticket"
)

// TicketHandler issues signed ticket tokens for sold seats and
// verifies them at the scanning gate.
type TicketHandler struct {
	Tickets *ticket.Service
	Store   *schedule.Store

	// PublishEvent mirrors ScheduleHandler's hook; scans emit a
	// broker event best-effort.
	PublishEvent func(ctx context.Context, queueName string, event any) error
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(tickets *ticket.Service, store *schedule.Store) *TicketHandler {
	if tickets == nil || store == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Store: store}
}

// IssueTicket handles POST /v1/tickets: sign a token for one seat of
// one showtime on an on-sale date.
func (h *TicketHandler) IssueTicket(c echo.Context) error {
	var body struct {
		Date       string `json:"date"`
		ShowtimeID string `json:"showtimeId"`
		Seat       string `json:"seat"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	ctx := c.Request().Context()
	ds, err := h.Store.Get(ctx, body.Date)
	if err != nil {
		if _, dateErr := schedule.NormalizeDate(body.Date); dateErr != nil {
			return fail(c, http.StatusBadRequest, "invalid date")
		}
		return fail(c, http.StatusInternalServerError, "schedule store error")
	}
	if !ds.Published() {
		return fail(c, http.StatusForbidden, "schedule is not on sale")
	}
	for _, st := range ds.Showtimes {
		if st.ID == body.ShowtimeID {
			token, tk, err := h.Tickets.Issue(ds.Date, &st, body.Seat)
			if err != nil {
				return fail(c, http.StatusInternalServerError, "could not sign ticket")
			}
			return c.JSON(http.StatusCreated, echo.Map{"token": token, "ticket": tk})
		}
	}
	return fail(c, http.StatusNotFound, "showtime not found")
}

// VerifyTicket handles POST /v1/tickets/verify: the gate scan.  Every
// failure reason maps to its own status so the scanner UI can show a
// precise rejection.
func (h *TicketHandler) VerifyTicket(c echo.Context) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&body); err != nil || body.Token == "" {
		return fail(c, http.StatusBadRequest, "token is required")
	}
	ctx := c.Request().Context()
	tk, err := h.Tickets.Verify(ctx, body.Token)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrBadToken):
			return fail(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, ticket.ErrAlreadyUsed),
			errors.Is(err, ticket.ErrNotOnSale):
			return fail(c, http.StatusForbidden, err.Error())
		case errors.Is(err, ticket.ErrUnknownShowtime):
			return fail(c, http.StatusNotFound, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "ticket verification failed")
	}
	if h.PublishEvent != nil {
		ev := queue.TicketScannedEvent{
			TicketID:   tk.ID,
			Date:       tk.Date,
			ShowtimeID: tk.ShowtimeID,
			MovieID:    tk.MovieID,
			TheaterID:  tk.TheaterID,
			Seat:       tk.Seat,
			ScannedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		go func() { _ = h.PublishEvent(context.Background(), queue.TicketScannedQueue, ev) }()
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "ticket": tk})
}
