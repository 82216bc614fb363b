package service

import (
	"context"
	"errors"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// ReviewService implements the review lifecycle and the co-mutation of
// each review's linked rating. Per (user, movie) pair the combined state
// only ever moves between: no rating and no review, a standalone rating,
// and a rating linked to a review.
type ReviewService struct {
	store Store
}

func NewReviewService(store Store) *ReviewService {
	return &ReviewService{store: store}
}

// ReviewInput carries the writable fields of a review plus the score for
// its linked rating.
type ReviewInput struct {
	MovieID    uint64
	Title      string
	Text       string
	HasSpoiler bool
	Score      int
}

// Create inserts a review and binds a rating to it. When the user already
// holds a standalone rating for the movie that rating is updated in place
// to carry the new score and the review link; otherwise a fresh linked
// rating is inserted. This merge is what keeps the one-rating-per-pair
// invariant across both entry points. A second review for the same pair
// is rejected with ErrReviewExists.
func (s *ReviewService) Create(ctx context.Context, userID uint64, in ReviewInput) error {
	return s.store.InTx(ctx, func(st Store) error {
		if _, err := st.MovieByID(ctx, in.MovieID); err != nil {
			return err
		}
		_, err := st.ReviewByUserAndMovie(ctx, userID, in.MovieID)
		if err == nil {
			return ErrReviewExists
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		rv := model.Review{
			Title:      in.Title,
			Text:       in.Text,
			HasSpoiler: in.HasSpoiler,
			UserID:     userID,
			MovieID:    in.MovieID,
		}
		if err := st.InsertReview(ctx, &rv); err != nil {
			return err
		}

		existing, err := st.RatingByUserAndMovie(ctx, userID, in.MovieID)
		switch {
		case err == nil:
			existing.Score = in.Score
			existing.ReviewID = &rv.ID
			if err := st.UpdateRating(ctx, &existing); err != nil {
				return err
			}
		case errors.Is(err, ErrNotFound):
			r := model.Rating{
				Score:    in.Score,
				UserID:   userID,
				MovieID:  in.MovieID,
				ReviewID: &rv.ID,
			}
			if err := st.InsertRating(ctx, &r); err != nil {
				return err
			}
		default:
			return err
		}
		return refreshMovieRating(ctx, st, in.MovieID)
	})
}

// Update rewrites a review owned by the caller together with its linked
// rating's score and movie, then refreshes the affected aggregates.
// A MovieID of 0 keeps the review on its current movie; a different
// MovieID moves review and rating together, so the one-per-pair
// invariant is checked against the target movie first and both the old
// and the new aggregate are recomputed. Non-owners get ErrNotFound,
// same as a missing review.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint64, in ReviewInput) error {
	return s.store.InTx(ctx, func(st Store) error {
		rv, err := st.ReviewByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if rv.UserID != userID {
			return ErrNotFound
		}

		oldMovieID := rv.MovieID
		if in.MovieID != 0 && in.MovieID != oldMovieID {
			if _, err := st.MovieByID(ctx, in.MovieID); err != nil {
				return err
			}
			if _, err := st.ReviewByUserAndMovie(ctx, userID, in.MovieID); err == nil {
				return ErrReviewExists
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
			// A standalone rating on the target movie would collide
			// with the moved one.
			if _, err := st.RatingByUserAndMovie(ctx, userID, in.MovieID); err == nil {
				return ErrRatingExists
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
			rv.MovieID = in.MovieID
		}

		rv.Title = in.Title
		rv.Text = in.Text
		rv.HasSpoiler = in.HasSpoiler
		if err := st.UpdateReview(ctx, &rv); err != nil {
			return err
		}

		r, err := st.RatingByReview(ctx, reviewID)
		if err != nil {
			return err
		}
		r.Score = in.Score
		r.MovieID = rv.MovieID
		if err := st.UpdateRating(ctx, &r); err != nil {
			return err
		}
		if err := refreshMovieRating(ctx, st, rv.MovieID); err != nil {
			return err
		}
		if rv.MovieID != oldMovieID {
			return refreshMovieRating(ctx, st, oldMovieID)
		}
		return nil
	})
}

// Delete removes a review for its owner or for any moderator. The linked
// rating goes with it, and the movie aggregate is refreshed in the same
// transaction so it never reflects the deleted score.
func (s *ReviewService) Delete(ctx context.Context, userID uint64, role model.Role, reviewID uint64) error {
	return s.store.InTx(ctx, func(st Store) error {
		rv, err := st.ReviewByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if rv.UserID != userID && role != model.RoleModerator {
			return ErrNotFound
		}
		r, err := st.RatingByReview(ctx, reviewID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := st.DeleteReview(ctx, rv.ID); err != nil {
			return err
		}
		if err == nil {
			if delErr := st.DeleteRating(ctx, r.ID); delErr != nil && !errors.Is(delErr, ErrNotFound) {
				return delErr
			}
		}
		return refreshMovieRating(ctx, st, rv.MovieID)
	})
}

// List returns reviews joined with author, movie and score, plus the
// total match count for paging.
func (s *ReviewService) List(ctx context.Context, f ReviewFilter) ([]ReviewRow, int, error) {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	return s.store.ListReviews(ctx, f)
}
