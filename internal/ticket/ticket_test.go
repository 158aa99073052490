package ticket

import (
	"context"
	"strings"
	"testing"

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

// Dates live far in the future so token expiry never trips the tests.
const showDate = "2030-06-15"

func newTestService(t *testing.T) (*Service, *schedule.Store, *model.Showtime) {
	t.Helper()
	kv := kvstore.NewMemory()
	schedules := schedule.NewStore(kv,
		stubDirectory{1: model.TheaterDigital},
		stubCatalog{10: {ID: 10, MovieName: "Inception", Duration: "45",
			StartAt: "2030-06-01", EndAt: "2030-06-30"}},
	)
	st, placed, err := schedules.Place(context.Background(), showDate, schedule.Placement{
		MovieID: 10, TheaterID: 1, StartTime: "09:00",
	})
	require.NoError(t, err)
	require.True(t, placed)
	return NewService("test-secret", kv, schedules), schedules, st
}

func TestIssueAndVerify(t *testing.T) {
	svc, schedules, st := newTestService(t)
	ctx := context.Background()
	_, err := schedules.Publish(ctx, showDate)
	require.NoError(t, err)

	token, issued, err := svc.Issue(showDate, st, "A5")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, st.ID, issued.ShowtimeID)
	assert.Equal(t, "A5", issued.Seat)

	got, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)
	assert.Equal(t, showDate, got.Date)
	assert.Equal(t, uint64(10), got.MovieID)
	assert.Equal(t, uint64(1), got.TheaterID)
}

func TestVerifyIsSingleUse(t *testing.T) {
	svc, schedules, st := newTestService(t)
	ctx := context.Background()
	_, err := schedules.Publish(ctx, showDate)
	require.NoError(t, err)

	token, _, err := svc.Issue(showDate, st, "A5")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	require.NoError(t, err)
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrAlreadyUsed)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc, schedules, st := newTestService(t)
	ctx := context.Background()
	_, err := schedules.Publish(ctx, showDate)
	require.NoError(t, err)

	token, _, err := svc.Issue(showDate, st, "A5")
	require.NoError(t, err)

	// Break the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	_, err = svc.Verify(ctx, tampered)
	assert.ErrorIs(t, err, ErrBadToken)

	_, err = svc.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc, schedules, st := newTestService(t)
	ctx := context.Background()
	_, err := schedules.Publish(ctx, showDate)
	require.NoError(t, err)

	other := NewService("other-secret", kvstore.NewMemory(), schedules)
	token, _, err := other.Issue(showDate, st, "A5")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestVerifyRequiresOnSaleSchedule(t *testing.T) {
	svc, _, st := newTestService(t)
	ctx := context.Background()

	token, _, err := svc.Issue(showDate, st, "A5")
	require.NoError(t, err)

	// Schedule still in draft.
	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrNotOnSale)
}

func TestVerifyRejectsUnknownShowtime(t *testing.T) {
	svc, schedules, _ := newTestService(t)
	ctx := context.Background()
	_, err := schedules.Publish(ctx, showDate)
	require.NoError(t, err)

	ghost := &model.Showtime{
		ID: "no-such-showtime", MovieID: 10, TheaterID: 1,
		StartTime: "09:00", EndTime: "09:45",
	}
	token, _, err := svc.Issue(showDate, ghost, "A5")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrUnknownShowtime)
}
