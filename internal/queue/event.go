// Package queue defines message payloads exchanged over the message broker
// plus the publisher and background consumer for them.
package queue

// RatingRefreshedEvent is published after any mutation that recomputes a
// movie's rating aggregate: a rating or review created, updated or
// deleted, or a user removed along with their scores. It carries enough
// for downstream consumers to log or trigger analytics without querying
// the primary database. MovieID is 0 when the handler only knows the
// affected entity by its own id.
type RatingRefreshedEvent struct {
	MovieID uint64 `json:"movie_id,omitempty"`
	UserID  uint64 `json:"user_id"`
	Trigger string `json:"trigger"`
	At      string `json:"at"`
}
