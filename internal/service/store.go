package service

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// Store is the persistence surface the services run against. The MySQL
// implementation lives in internal/repository; tests substitute an
// in-memory fake. Lookup methods return ErrNotFound when no row matches.
//
// InTx runs fn against a transaction-bound Store and commits when fn
// returns nil, rolling back otherwise. Every mutate-then-refresh sequence
// in this package runs inside one such scope so a mid-sequence failure
// aborts the whole mutation.
type Store interface {
	InTx(ctx context.Context, fn func(Store) error) error

	// users
	UserByID(ctx context.Context, id uint64) (model.User, error)
	UserByEmail(ctx context.Context, email string) (model.User, error)
	InsertUser(ctx context.Context, u *model.User) error
	UpdateUserProfile(ctx context.Context, id uint64, email, passwordHash string) error
	// DeleteUser removes the user row; the schema cascades the user's
	// reviews and ratings.
	DeleteUser(ctx context.Context, id uint64) error

	// movies
	MovieByID(ctx context.Context, id uint64) (model.Movie, error)
	ListMovies(ctx context.Context, offset, limit int) ([]model.Movie, error)
	InsertMovie(ctx context.Context, m *model.Movie) error
	UpdateMovie(ctx context.Context, m *model.Movie) error
	SetMovieRating(ctx context.Context, movieID uint64, rating float64) error
	SearchMovies(ctx context.Context, text string, offset, limit int) ([]model.Movie, int, error)

	// cast and crew
	ReplaceCast(ctx context.Context, movieID uint64, entries []model.CastAndCrew) error
	CastByMovie(ctx context.Context, movieID uint64) ([]model.CastMember, error)
	CreditsByName(ctx context.Context, nameID uint64) ([]model.Credit, error)

	// names
	NameByID(ctx context.Context, id uint64) (model.Name, error)
	InsertName(ctx context.Context, n *model.Name) error
	UpdateName(ctx context.Context, n *model.Name) error
	SearchNames(ctx context.Context, text string, offset, limit int) ([]model.Name, int, error)

	// ratings
	RatingByID(ctx context.Context, id uint64) (model.Rating, error)
	RatingByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Rating, error)
	RatingByReview(ctx context.Context, reviewID uint64) (model.Rating, error)
	InsertRating(ctx context.Context, r *model.Rating) error
	UpdateRating(ctx context.Context, r *model.Rating) error
	DeleteRating(ctx context.Context, id uint64) error
	ScoresByMovie(ctx context.Context, movieID uint64) ([]int, error)
	RatedMovieIDs(ctx context.Context, userID uint64) ([]uint64, error)

	// reviews
	ReviewByID(ctx context.Context, id uint64) (model.Review, error)
	ReviewByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Review, error)
	InsertReview(ctx context.Context, rv *model.Review) error
	UpdateReview(ctx context.Context, rv *model.Review) error
	DeleteReview(ctx context.Context, id uint64) error
	ListReviews(ctx context.Context, f ReviewFilter) ([]ReviewRow, int, error)
}

// ReviewFilter narrows and pages the review listing. Zero IDs mean no
// filter; HideSpoilers drops reviews flagged as spoilers.
type ReviewFilter struct {
	UserID       uint64
	MovieID      uint64
	HideSpoilers bool
	Offset       int
	Limit        int
}

// ReviewRow is a review joined with its author, movie and linked rating
// for listing.
type ReviewRow struct {
	CreatorName string
	MovieTitle  string
	ReviewTitle string
	Text        string
	HasSpoiler  bool
	Score       int
}

// refreshMovieRating recomputes a movie's denormalized aggregate from
// every current score and writes it back. An empty score set resets the
// aggregate to 0 rather than leaving it stale. Callers invoke this inside
// the same transaction as the triggering rating mutation.
func refreshMovieRating(ctx context.Context, st Store, movieID uint64) error {
	scores, err := st.ScoresByMovie(ctx, movieID)
	if err != nil {
		return err
	}
	return st.SetMovieRating(ctx, movieID, averageScore(scores))
}

// averageScore returns the arithmetic mean of scores, or 0 for an empty
// set.
func averageScore(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
