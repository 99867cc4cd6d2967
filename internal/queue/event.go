// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue all activity events go to.
const ActivityQueueName = "movie.activity"

// MovieAddedEvent is published after a movie is persisted. Source
// records whether the fields came from the metadata service ("omdb")
// or from the lookup-miss defaults ("fallback"), so downstream
// consumers can tell enriched records from placeholders without
// querying the primary database.
type MovieAddedEvent struct {
	MovieID        uint64  `json:"movie_id"`
	OwnerID        uint64  `json:"owner_id"`
	Title          string  `json:"title"`
	Director       string  `json:"director"`
	Year           int     `json:"year"`
	ExternalRating float64 `json:"external_rating"`
	Source         string  `json:"source"`
	AddedAt        string  `json:"added_at"`
}

// UserDeletedEvent is published after a user and their movies are
// removed. MoviesRemoved carries the cascade count.
type UserDeletedEvent struct {
	UserID        uint64 `json:"user_id"`
	Name          string `json:"name"`
	MoviesRemoved int64  `json:"movies_removed"`
	DeletedAt     string `json:"deleted_at"`
}
