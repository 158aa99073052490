package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
)

type fakeTheaterCatalog struct {
	nextID   uint64
	theaters map[uint64]*model.Theater
}

func newFakeTheaterCatalog() *fakeTheaterCatalog {
	return &fakeTheaterCatalog{theaters: make(map[uint64]*model.Theater)}
}

func (f *fakeTheaterCatalog) Create(_ context.Context, t *model.Theater) error {
	f.nextID++
	t.ID = f.nextID
	t.IsActive = true
	f.theaters[t.ID] = t
	return nil
}

func (f *fakeTheaterCatalog) GetByID(_ context.Context, id uint64) (*model.Theater, error) {
	t, ok := f.theaters[id]
	if !ok {
		return nil, repository.ErrTheaterNotFound
	}
	return t, nil
}

func (f *fakeTheaterCatalog) List(context.Context) ([]model.Theater, error) {
	out := make([]model.Theater, 0, len(f.theaters))
	for _, t := range f.theaters {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTheaterCatalog) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := f.theaters[id]; !ok {
		return repository.ErrTheaterNotFound
	}
	delete(f.theaters, id)
	return nil
}

func TestCreateTheaterDerivesStats(t *testing.T) {
	h := NewTheaterHandler(newFakeTheaterCatalog())

	body, err := json.Marshal(map[string]any{
		"name": "龍廳", "type": "Digital", "floor": "3F",
		"rowCount": 2, "columnCount": 3,
		"seats": [][]string{
			{"一般座位", "走道", "殘障座位"},
			{"一般座位", "走道", "Empty"},
		},
	})
	require.NoError(t, err)

	var created model.Theater
	rec := request(t, h.CreateTheater, http.MethodPost, string(body), nil, &created)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "龍廳", created.Name)
	assert.Equal(t, 2, created.NormalSeats)
	assert.Equal(t, 1, created.AccessibleSeats)
	assert.NotZero(t, created.ID)
}

func TestCreateTheaterValidation(t *testing.T) {
	h := NewTheaterHandler(newFakeTheaterCatalog())

	seats := `[["一般座位"]]`
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"name":"  ","type":"Digital","rowCount":1,"columnCount":1,"seats":` + seats + `}`},
		{"bad type", `{"name":"A","type":"Laser","rowCount":1,"columnCount":1,"seats":` + seats + `}`},
		{"count mismatch", `{"name":"A","type":"Digital","rowCount":2,"columnCount":1,"seats":` + seats + `}`},
		{"unknown cell literal", `{"name":"A","type":"Digital","rowCount":1,"columnCount":1,"seats":[["seat"]]}`},
		{"all cells empty", `{"name":"A","type":"Digital","rowCount":1,"columnCount":2,"seats":[["Empty","Empty"]]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var env struct {
				Category string `json:"category"`
			}
			rec := request(t, h.CreateTheater, http.MethodPost, tc.body, nil, &env)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation", env.Category)
		})
	}
}

func TestGetTheaterNotFound(t *testing.T) {
	h := NewTheaterHandler(newFakeTheaterCatalog())

	var env struct {
		Category string `json:"category"`
	}
	rec := request(t, h.GetTheater, http.MethodGet, "",
		map[string]string{"id": "42"}, &env)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not-found", env.Category)

	rec = request(t, h.GetTheater, http.MethodGet, "",
		map[string]string{"id": "abc"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTheater(t *testing.T) {
	catalog := newFakeTheaterCatalog()
	h := NewTheaterHandler(catalog)
	require.NoError(t, catalog.Create(context.Background(), &model.Theater{Name: "A"}))

	rec := request(t, h.DeleteTheater, http.MethodDelete, "",
		map[string]string{"id": "1"}, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = request(t, h.DeleteTheater, http.MethodDelete, "",
		map[string]string{"id": "1"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
