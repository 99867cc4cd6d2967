package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/moviweb/moviweb/internal/model"
)

// MovieRepo provides CRUD operations for the movies table. All
// timestamp fields are stored in UTC. The update statement is
// deliberately narrow: external_rating, poster_url and external_id
// are written once at creation and no update path in this repository
// can touch them afterwards.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = "id, title, director, year, external_rating, user_rating, poster_url, external_id, owner_id, created_at, updated_at"

// CreateTx inserts a movie within an existing transaction and
// populates the generated ID plus column defaults on the provided
// record. The caller must commit or rollback the transaction.
func (r *MovieRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.Movie) error {
	const q = `INSERT INTO movies (title, director, year, external_rating, user_rating, poster_url, external_id, owner_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		m.Title, m.Director, m.Year, m.ExternalRating,
		nullFloat(m.UserRating), nullString(m.PosterURL), nullString(m.ExternalID),
		m.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	row := tx.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id=?", m.ID)
	stored, err := scanMovie(row)
	if err != nil {
		return err
	}
	*m = *stored
	return nil
}

// GetByID fetches a movie by id. ErrMovieNotFound when no row exists.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByOwner returns all movies owned by the given user in insertion
// order. An unknown owner simply yields an empty slice.
func (r *MovieRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE owner_id=? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// Update overwrites the user-editable columns of a movie: title,
// director, year and user_rating. No other column appears in the
// statement, so enrichment fields cannot be modified through this
// path no matter what the caller supplies.
func (r *MovieRepo) Update(ctx context.Context, id uint64, title, director string, year int, userRating *float64) error {
	const q = `UPDATE movies SET title=?, director=?, year=?, user_rating=? WHERE id=?`
	_, err := r.DB.ExecContext(ctx, q, title, director, year, nullFloat(userRating), id)
	return err
}

// Delete removes a movie and reports whether a row was deleted.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByOwnerTx removes every movie owned by the given user within
// a transaction and returns how many rows were deleted. Part of the
// two-phase cascade delete: movies first, then the user.
func (r *MovieRepo) DeleteByOwnerTx(ctx context.Context, tx *sql.Tx, ownerID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE owner_id=?", ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*model.Movie, error) {
	var m model.Movie
	var userRating sql.NullFloat64
	var posterURL, externalID sql.NullString
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.ExternalRating,
		&userRating, &posterURL, &externalID, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userRating.Valid {
		v := userRating.Float64
		m.UserRating = &v
	}
	if posterURL.Valid {
		v := posterURL.String
		m.PosterURL = &v
	}
	if externalID.Valid {
		v := externalID.String
		m.ExternalID = &v
	}
	return &m, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
