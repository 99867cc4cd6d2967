package model

import "time"

// Movie represents a row in the `movies` table. A movie belongs to
// exactly one user. Two rating columns coexist on purpose:
// ExternalRating is sourced from the metadata service when the movie
// is added and is never written again, while UserRating is the
// owner's personal score and may be changed freely. UserRating,
// PosterURL and ExternalID are pointers because NULL ("unset") is a
// meaningful state distinct from zero or empty.
//
// Fields:
//  ID             – primary key identifier.
//  Title          – movie title, never empty.
//  Director       – director name, "Unknown" when not resolvable.
//  Year           – release year, 0 when unknown.
//  ExternalRating – rating from the metadata service, 0 when no lookup succeeded.
//  UserRating     – the owner's personal rating, nil until set.
//  PosterURL      – poster image URL, nil when the service had none.
//  ExternalID     – the metadata service's identifier, nil for fallback records.
//  OwnerID        – owning user, immutable after creation.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Movie struct {
	ID             uint64    // movies.id
	Title          string    // movies.title
	Director       string    // movies.director
	Year           int       // movies.year
	ExternalRating float64   // movies.external_rating
	UserRating     *float64  // movies.user_rating (nullable)
	PosterURL      *string   // movies.poster_url (nullable)
	ExternalID     *string   // movies.external_id (nullable)
	OwnerID        uint64    // movies.owner_id
	CreatedAt      time.Time // movies.created_at
	UpdatedAt      time.Time // movies.updated_at
}
