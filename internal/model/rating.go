package model

// Rating is a single user's score for a movie, stored in the `ratings`
// table. At most one rating exists per (UserID, MovieID) pair. ReviewID
// is set when the rating was created or adopted by a review; a rating
// with a nil ReviewID is standalone.
type Rating struct {
	ID       uint64  // ratings.id
	Score    int     // ratings.score, integer 1..5
	UserID   uint64  // ratings.user_id
	MovieID  uint64  // ratings.movie_id
	ReviewID *uint64 // ratings.review_id (nullable)
}

// Review is a written review in the `reviews` table. At most one review
// exists per (UserID, MovieID) pair, and every review has exactly one
// linked rating carrying its score.
type Review struct {
	ID         uint64 // reviews.id
	Title      string // reviews.title
	Text       string // reviews.text
	HasSpoiler bool   // reviews.has_spoiler
	UserID     uint64 // reviews.user_id
	MovieID    uint64 // reviews.movie_id
}
