// Package store implements the data access core of the service. The
// Store is the sole owner of persisted user/movie state: it enforces
// referential integrity, runs every multi-step mutation inside a
// single transaction, and decides how external lookup results (or
// their absence) merge into persisted records. Handlers stay thin and
// call into this package; nothing HTTP-specific leaks in.
package store

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/moviweb/moviweb/internal/model"
	"github.com/moviweb/moviweb/internal/omdb"
	"github.com/moviweb/moviweb/internal/queue"
	"github.com/moviweb/moviweb/internal/repository"
)

// Lookup is the slice of the metadata client the store depends on.
// omdb.Client satisfies it; tests substitute a fake.
type Lookup interface {
	LookupByTitle(ctx context.Context, title string) (omdb.Result, bool)
	LookupByID(ctx context.Context, externalID string) (omdb.Result, bool)
	Search(ctx context.Context, query string) []omdb.SearchHit
}

// Publisher delivers activity events after a mutation commits.
// Implementations must be safe to call with a background context and
// may fail; the store logs and moves on. A nil Publisher disables
// eventing entirely.
type Publisher interface {
	MovieAdded(ctx context.Context, ev queue.MovieAddedEvent) error
	UserDeleted(ctx context.Context, ev queue.UserDeletedEvent) error
}

// Store bundles the database handle, repositories and the lookup
// client behind the caller-facing operation set.
type Store struct {
	db     *sql.DB
	users  *repository.UserRepo
	movies *repository.MovieRepo
	lookup Lookup
	events Publisher
}

// New constructs a Store. lookup must not be nil; events may be nil.
func New(db *sql.DB, lookup Lookup, events Publisher) *Store {
	if lookup == nil {
		panic("nil lookup passed to store.New")
	}
	return &Store{
		db:     db,
		users:  repository.NewUserRepo(db),
		movies: repository.NewMovieRepo(db),
		lookup: lookup,
		events: events,
	}
}

// CreateUser persists a new user. repository.ErrEmptyName when the
// name is blank after trimming.
func (s *Store) CreateUser(ctx context.Context, name string) (*model.User, error) {
	return s.users.Create(ctx, name)
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// GetUser fetches a user by id. repository.ErrUserNotFound on miss.
func (s *Store) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// DeleteUser removes a user together with every movie they own in a
// single transaction, so a partial delete is never observable. It
// reports false without error when the user does not exist.
func (s *Store) DeleteUser(ctx context.Context, id uint64) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	u, err := s.users.GetTx(ctx, tx, id)
	if err == repository.ErrUserNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	removed, err := s.movies.DeleteByOwnerTx(ctx, tx, id)
	if err != nil {
		return false, err
	}
	if _, err := s.users.DeleteTx(ctx, tx, id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true

	s.publishUserDeleted(queue.UserDeletedEvent{
		UserID:        u.ID,
		Name:          u.Name,
		MoviesRemoved: removed,
		DeletedAt:     time.Now().UTC().Format(time.RFC3339),
	})
	return true, nil
}

// ListMovies returns every movie owned by the given user. An unknown
// owner yields an empty slice, not an error.
func (s *Store) ListMovies(ctx context.Context, ownerID uint64) ([]model.Movie, error) {
	return s.movies.ListByOwner(ctx, ownerID)
}

// AddMovieByTitle resolves the title against the metadata service and
// persists the result. Enrichment is best-effort: when the lookup
// comes back absent the movie is stored anyway with the title as
// given, director "Unknown" and the current calendar year. The
// operation fails only when the owner does not exist or the write
// itself fails; never because of the lookup.
func (s *Store) AddMovieByTitle(ctx context.Context, ownerID uint64, title string) (*model.Movie, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	res, found := s.lookup.LookupByTitle(ctx, title)

	m := &model.Movie{OwnerID: ownerID}
	source := "fallback"
	if found {
		source = "omdb"
		m.Title = res.Title
		m.Director = res.Director
		m.Year = res.Year
		m.ExternalRating = res.Rating
		if res.PosterURL != "" {
			m.PosterURL = &res.PosterURL
		}
		if res.ImdbID != "" {
			m.ExternalID = &res.ImdbID
		}
	} else {
		m.Title = title
		m.Director = "Unknown"
		m.Year = time.Now().Year()
	}

	if err := s.insertMovie(ctx, m); err != nil {
		return nil, err
	}
	s.publishMovieAdded(m, source)
	return m, nil
}

// AddMovieByID persists a movie from an exact external identifier,
// typically one selected from search results. Unlike the by-title
// path there is no fallback: when the lookup cannot resolve the id
// the method returns (nil, nil) and no row is created, so the caller
// can report that details could not be fetched.
func (s *Store) AddMovieByID(ctx context.Context, ownerID uint64, externalID string) (*model.Movie, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	res, found := s.lookup.LookupByID(ctx, externalID)
	if !found {
		return nil, nil
	}

	m := &model.Movie{
		Title:          res.Title,
		Director:       res.Director,
		Year:           res.Year,
		ExternalRating: res.Rating,
		OwnerID:        ownerID,
	}
	if res.PosterURL != "" {
		m.PosterURL = &res.PosterURL
	}
	if res.ImdbID != "" {
		m.ExternalID = &res.ImdbID
	}

	if err := s.insertMovie(ctx, m); err != nil {
		return nil, err
	}
	s.publishMovieAdded(m, "omdb")
	return m, nil
}

// insertMovie checks the owner and writes the row inside one
// transaction, so the movie can never outlive (or predate) its user.
func (s *Store) insertMovie(ctx context.Context, m *model.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ok, err := s.users.ExistsTx(ctx, tx, m.OwnerID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrUserNotFound
	}
	if err := s.movies.CreateTx(ctx, tx, m); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateMovie overwrites title, director, year and the user's
// personal rating. The externally sourced fields (external_rating,
// poster_url, external_id) are not part of the operation and keep
// their stored values unconditionally. A nil userRating clears the
// personal rating back to unset.
func (s *Store) UpdateMovie(ctx context.Context, movieID uint64, title, director string, year int, userRating *float64) (*model.Movie, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	if err := s.movies.Update(ctx, movieID, title, director, year, userRating); err != nil {
		return nil, err
	}
	return s.movies.GetByID(ctx, movieID)
}

// DeleteMovie removes a single movie, reporting false when it does
// not exist.
func (s *Store) DeleteMovie(ctx context.Context, id uint64) (bool, error) {
	return s.movies.Delete(ctx, id)
}

// SearchMovies returns up to ten candidate movies for the query, in
// service-provided order. Lookup failures surface as an empty slice.
func (s *Store) SearchMovies(ctx context.Context, query string) []omdb.SearchHit {
	return s.lookup.Search(ctx, query)
}

func (s *Store) publishMovieAdded(m *model.Movie, source string) {
	if s.events == nil {
		return
	}
	ev := queue.MovieAddedEvent{
		MovieID:        m.ID,
		OwnerID:        m.OwnerID,
		Title:          m.Title,
		Director:       m.Director,
		Year:           m.Year,
		ExternalRating: m.ExternalRating,
		Source:         source,
		AddedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.MovieAdded(context.Background(), ev); err != nil {
		log.Printf("store: publish movie.added failed: %v", err)
	}
}

func (s *Store) publishUserDeleted(ev queue.UserDeletedEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.UserDeleted(context.Background(), ev); err != nil {
		log.Printf("store: publish user.deleted failed: %v", err)
	}
}
