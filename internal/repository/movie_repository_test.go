package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviweb/moviweb/internal/model"
)

func movieRows(id uint64, title, director string, year int, externalRating float64, userRating any, posterURL, externalID any, ownerID uint64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "director", "year", "external_rating",
		"user_rating", "poster_url", "external_id", "owner_id",
		"created_at", "updated_at",
	}).AddRow(id, title, director, year, externalRating, userRating, posterURL, externalID, ownerID, now, now)
}

func TestMovieRepoCreateTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	poster := "https://img.omdbapi.com/inception.jpg"
	imdbID := "tt1375666"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO movies").
		WithArgs("Inception", "Christopher Nolan", 2010, 8.8, nil, poster, imdbID, uint64(1)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM movies WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(movieRows(7, "Inception", "Christopher Nolan", 2010, 8.8, nil, poster, imdbID, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	m := &model.Movie{
		Title:          "Inception",
		Director:       "Christopher Nolan",
		Year:           2010,
		ExternalRating: 8.8,
		PosterURL:      &poster,
		ExternalID:     &imdbID,
		OwnerID:        1,
	}
	require.NoError(t, repo.CreateTx(context.Background(), tx, m))
	require.NoError(t, tx.Commit())

	assert.Equal(t, uint64(7), m.ID)
	assert.Nil(t, m.UserRating)
	require.NotNil(t, m.PosterURL)
	assert.Equal(t, poster, *m.PosterURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepoGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM movies WHERE id=").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepoListByOwnerEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM movies WHERE owner_id=").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "director", "year", "external_rating",
			"user_rating", "poster_url", "external_id", "owner_id",
			"created_at", "updated_at",
		}))

	movies, err := repo.ListByOwner(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestMovieRepoUpdateStatement pins the exact update statement: only
// title, director, year and user_rating may appear in it. A change
// that lets external_rating, poster_url or external_id slip into the
// update path fails this expectation.
func TestMovieRepoUpdateStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	rating := 9.0
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET title=?, director=?, year=?, user_rating=? WHERE id=?")).
		WithArgs("Inception", "Christopher Nolan", 2010, 9.0, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, "Inception", "Christopher Nolan", 2010, &rating)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepoUpdateClearsUserRating(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectExec("UPDATE movies SET title=").
		WithArgs("Inception", "Christopher Nolan", 2010, nil, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, "Inception", "Christopher Nolan", 2010, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepoDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectExec("DELETE FROM movies WHERE id=").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM movies WHERE id=").
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepoDeleteByOwnerTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM movies WHERE owner_id=").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	n, err := repo.DeleteByOwnerTx(context.Background(), tx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
