package service

import (
	"context"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// RatingService implements standalone score mutations. Linked scores are
// managed through ReviewService; the two share the invariant that a user
// holds at most one rating per movie.
type RatingService struct {
	store Store
}

func NewRatingService(store Store) *RatingService {
	return &RatingService{store: store}
}

// Create inserts a standalone rating for the calling user. A user who has
// already scored the movie (standalone or via a review) gets
// ErrRatingExists and the existing rating is left untouched; there are no
// update-in-place semantics on this path. The movie aggregate is
// refreshed in the same transaction.
func (s *RatingService) Create(ctx context.Context, userID, movieID uint64, score int) error {
	return s.store.InTx(ctx, func(st Store) error {
		if _, err := st.MovieByID(ctx, movieID); err != nil {
			return err
		}
		_, err := st.RatingByUserAndMovie(ctx, userID, movieID)
		if err == nil {
			return ErrRatingExists
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		r := model.Rating{Score: score, UserID: userID, MovieID: movieID}
		if err := st.InsertRating(ctx, &r); err != nil {
			return err
		}
		return refreshMovieRating(ctx, st, movieID)
	})
}

// Update changes the score of a rating owned by the caller. A missing
// rating and someone else's rating produce the same ErrNotFound so that
// non-owners never learn the rating exists.
func (s *RatingService) Update(ctx context.Context, userID, ratingID uint64, score int) error {
	return s.store.InTx(ctx, func(st Store) error {
		r, err := st.RatingByID(ctx, ratingID)
		if err != nil {
			return err
		}
		if r.UserID != userID {
			return ErrNotFound
		}
		r.Score = score
		if err := st.UpdateRating(ctx, &r); err != nil {
			return err
		}
		return refreshMovieRating(ctx, st, r.MovieID)
	})
}

// Delete removes a rating regardless of owner. Route policy restricts it
// to moderator and admin callers. A linked review survives its rating's
// deletion; the cascade only runs the other way.
func (s *RatingService) Delete(ctx context.Context, ratingID uint64) error {
	return s.store.InTx(ctx, func(st Store) error {
		r, err := st.RatingByID(ctx, ratingID)
		if err != nil {
			return err
		}
		if err := st.DeleteRating(ctx, r.ID); err != nil {
			return err
		}
		return refreshMovieRating(ctx, st, r.MovieID)
	})
}
