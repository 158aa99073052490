package repository // repository holds data access logic for the catalog collaborators

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// TheaterRepo persists theaters created through the seat-map builder.
// The seat matrix is stored as a JSON text column; the derived seat
// counts are denormalized so list queries never decode it.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo {
	return &TheaterRepo{db: db}
}

// Create inserts a theater and reads the row back so the timestamp
// and active-flag fields are populated.  The caller provides the frozen
// seat matrix and the seat counts derived from it.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	seatJSON, err := json.Marshal(t.SeatMap)
	if err != nil {
		return fmt.Errorf("encode seat map: %w", err)
	}
	const qInsert = `INSERT INTO theaters (name, type, floor, row_count, column_count, seat_map, normal_seats, accessible_seats)
	                 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		t.Name, string(t.Type), t.Floor, t.RowCount, t.ColumnCount, seatJSON, t.NormalSeats, t.AccessibleSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const qSelect = `SELECT is_active, created_at, updated_at FROM theaters WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(&t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves one theater including its decoded seat matrix.
// It returns ErrTheaterNotFound when no row exists.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	const q = `SELECT id, name, type, floor, row_count, column_count, seat_map, normal_seats, accessible_seats, is_active, created_at, updated_at
	           FROM theaters WHERE id = ?`
	var (
		t       model.Theater
		typ     string
		seatRaw []byte
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.Name, &typ, &t.Floor, &t.RowCount, &t.ColumnCount, &seatRaw,
		&t.NormalSeats, &t.AccessibleSeats, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	t.Type = model.TheaterType(typ)
	if len(seatRaw) > 0 {
		if err := json.Unmarshal(seatRaw, &t.SeatMap); err != nil {
			return nil, fmt.Errorf("decode seat map: %w", err)
		}
	}
	return &t, nil
}

// List returns all active theaters without their seat matrices; the
// drag targets of the scheduler only need names, types and counts.
func (r *TheaterRepo) List(ctx context.Context) ([]model.Theater, error) {
	const q = `SELECT id, name, type, floor, row_count, column_count, normal_seats, accessible_seats, is_active, created_at, updated_at
	           FROM theaters WHERE is_active = 1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Theater
	for rows.Next() {
		var (
			t   model.Theater
			typ string
		)
		if err := rows.Scan(&t.ID, &t.Name, &typ, &t.Floor, &t.RowCount, &t.ColumnCount,
			&t.NormalSeats, &t.AccessibleSeats, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Type = model.TheaterType(typ)
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteByID removes a theater.  ErrTheaterNotFound is returned when
// nothing was deleted.
func (r *TheaterRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM theaters WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTheaterNotFound
	}
	return nil
}

// TheaterTypes snapshots the id → projection format mapping of every
// active theater.  The schedule store takes this once per operation so
// the pure conflict resolver never touches the database.
func (r *TheaterRepo) TheaterTypes(ctx context.Context) (map[uint64]model.TheaterType, error) {
	const q = `SELECT id, type FROM theaters WHERE is_active = 1`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	types := make(map[uint64]model.TheaterType)
	for rows.Next() {
		var (
			id  uint64
			typ string
		)
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, err
		}
		types[id] = model.TheaterType(typ)
	}
	return types, rows.Err()
}
