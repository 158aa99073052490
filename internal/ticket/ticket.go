// Package ticket issues and verifies signed ticket tokens for the
// scanning gate.  A token is an HS256 JWT carrying the screening it
// admits to; scanning verifies the signature, re-checks the screening
// against the published daily schedule and enforces single use through
// the key-value store.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iliyamo/cinema-scheduler/internal/kvstore"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

// usedKeyPrefix namespaces the scan marks inside the key-value store.
const usedKeyPrefix = "ticket:used:"

// Verification failure reasons.  Scans fail closed: any doubt about a
// token keeps the gate shut.
var (
	ErrBadToken        = errors.New("ticket token is invalid")
	ErrUnknownShowtime = errors.New("ticket references a showtime not on the schedule")
	ErrNotOnSale       = errors.New("schedule for the ticket date is not on sale")
	ErrAlreadyUsed     = errors.New("ticket was already scanned")
)

// Ticket is the verified content of a scanned token.
type Ticket struct {
	ID         string `json:"ticketId"`
	Date       string `json:"date"`
	ShowtimeID string `json:"showtimeId"`
	MovieID    uint64 `json:"movieId"`
	TheaterID  uint64 `json:"theaterId"`
	Seat       string `json:"seat"`
}

// Service signs and verifies ticket tokens.
type Service struct {
	secret    string
	kv        kvstore.Store
	schedules *schedule.Store
}

// NewService wires the ticket service to its signing secret, the scan
// mark store and the schedule store it validates against.
func NewService(secret string, kv kvstore.Store, schedules *schedule.Store) *Service {
	if secret == "" || kv == nil || schedules == nil {
		panic("nil dependency passed to ticket.NewService")
	}
	return &Service{secret: secret, kv: kv, schedules: schedules}
}

// Issue signs a token admitting one seat to one showtime.  The token
// expires at the end of the day after the screening date so clock skew
// at the gate cannot void a same-day ticket.
func (s *Service) Issue(date string, st *model.Showtime, seat string) (string, *Ticket, error) {
	d, err := schedule.NormalizeDate(date)
	if err != nil {
		return "", nil, err
	}
	day, err := time.Parse(model.DateLayout, d)
	if err != nil {
		return "", nil, err
	}
	t := &Ticket{
		ID:         uuid.NewString(),
		Date:       d,
		ShowtimeID: st.ID,
		MovieID:    st.MovieID,
		TheaterID:  st.TheaterID,
		Seat:       seat,
	}
	claims := jwt.MapClaims{
		"jti":      t.ID,
		"date":     t.Date,
		"showtime": t.ShowtimeID,
		"movie":    t.MovieID,
		"theater":  t.TheaterID,
		"seat":     t.Seat,
		"iat":      time.Now().UTC().Unix(),
		"exp":      day.AddDate(0, 0, 2).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", nil, err
	}
	return signed, t, nil
}

// Verify checks a scanned token end to end: signature, schedule
// presence, on-sale status and single use.  On success the ticket is
// marked used so a second scan of the same token fails.
func (s *Service) Verify(ctx context.Context, token string) (*Ticket, error) {
	t, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	ds, err := s.schedules.Get(ctx, t.Date)
	if err != nil {
		return nil, err
	}
	if !ds.Published() {
		return nil, ErrNotOnSale
	}
	found := false
	for _, st := range ds.Showtimes {
		if st.ID == t.ShowtimeID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnknownShowtime
	}

	usedKey := usedKeyPrefix + t.ID
	if _, err := s.kv.Get(ctx, usedKey); err == nil {
		return nil, ErrAlreadyUsed
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		return nil, fmt.Errorf("check scan mark: %w", err)
	}
	if err := s.kv.Set(ctx, usedKey, []byte(time.Now().UTC().Format(time.RFC3339))); err != nil {
		return nil, fmt.Errorf("mark ticket used: %w", err)
	}
	return t, nil
}

// parse validates the signature and extracts the ticket claims.
func (s *Service) parse(token string) (*Ticket, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(s.secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrBadToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrBadToken
	}
	t := &Ticket{
		ID:         stringClaim(claims, "jti"),
		Date:       stringClaim(claims, "date"),
		ShowtimeID: stringClaim(claims, "showtime"),
		MovieID:    uintClaim(claims, "movie"),
		TheaterID:  uintClaim(claims, "theater"),
		Seat:       stringClaim(claims, "seat"),
	}
	if t.ID == "" || t.Date == "" || t.ShowtimeID == "" {
		return nil, ErrBadToken
	}
	return t, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// uintClaim tolerates the float64 representation JSON decoding gives
// numeric claims.
func uintClaim(claims jwt.MapClaims, key string) uint64 {
	switch v := claims[key].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case uint64:
		return v
	case int64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	}
	return 0
}
