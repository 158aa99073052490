package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// MovieRepo persists the movie catalog.  Duration stays string-encoded
// exactly as received; the schedule engine decodes it on demand.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, movie_name, film_type, duration, category, director, actors, describe_text, trailer_link, poster, start_at, end_at`

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.MovieName, &m.FilmType, &m.Duration, &m.Category,
		&m.Director, &m.Actors, &m.Describe, &m.TrailerLink, &m.Poster, &m.StartAt, &m.EndAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a movie and sets its generated ID.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (movie_name, film_type, duration, category, director, actors, describe_text, trailer_link, poster, start_at, end_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		m.MovieName, m.FilmType, m.Duration, m.Category, m.Director, m.Actors,
		m.Describe, m.TrailerLink, m.Poster, m.StartAt, m.EndAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID returns one movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// MovieByID implements the schedule store's catalog port: an unknown
// id yields (nil, nil) so the store can report its own sentinel.
func (r *MovieRepo) MovieByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrMovieNotFound) {
		return nil, nil
	}
	return m, err
}

// List returns the full catalog ordered by id.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// DeleteByID removes a movie or returns ErrMovieNotFound.
func (r *MovieRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM movies WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
