package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

const ratingColumns = "id, score, user_id, movie_id, review_id"

func scanRating(row interface{ Scan(...any) error }, r *model.Rating) error {
	var reviewID sql.NullInt64
	if err := row.Scan(&r.ID, &r.Score, &r.UserID, &r.MovieID, &reviewID); err != nil {
		return err
	}
	if reviewID.Valid {
		id := uint64(reviewID.Int64)
		r.ReviewID = &id
	}
	return nil
}

// RatingByID fetches one rating by primary key.
func (s *Store) RatingByID(ctx context.Context, id uint64) (model.Rating, error) {
	var r model.Rating
	err := scanRating(s.q.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings WHERE id = ?", id), &r)
	return r, mapNoRows(err)
}

// RatingByUserAndMovie fetches the single rating a user holds on a
// movie, if any.
func (s *Store) RatingByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Rating, error) {
	var r model.Rating
	err := scanRating(s.q.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings WHERE user_id = ? AND movie_id = ? LIMIT 1",
		userID, movieID), &r)
	return r, mapNoRows(err)
}

// RatingByReview fetches the rating linked to a review.
func (s *Store) RatingByReview(ctx context.Context, reviewID uint64) (model.Rating, error) {
	var r model.Rating
	err := scanRating(s.q.QueryRowContext(ctx,
		"SELECT "+ratingColumns+" FROM ratings WHERE review_id = ? LIMIT 1", reviewID), &r)
	return r, mapNoRows(err)
}

// InsertRating inserts a rating and populates its generated ID. The
// unique key on (user_id, movie_id) backs the service-level pre-check
// under concurrent requests.
func (s *Store) InsertRating(ctx context.Context, r *model.Rating) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO ratings (score, user_id, movie_id, review_id) VALUES (?,?,?,?)",
		r.Score, r.UserID, r.MovieID, reviewIDArg(r))
	if err != nil {
		if isDuplicate(err) {
			return service.ErrRatingExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return nil
}

// UpdateRating rewrites a rating's score, movie and review link. The
// unique key on (user_id, movie_id) catches a move that collides with
// another rating by the same user.
func (s *Store) UpdateRating(ctx context.Context, r *model.Rating) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE ratings SET score = ?, movie_id = ?, review_id = ? WHERE id = ?",
		r.Score, r.MovieID, reviewIDArg(r), r.ID)
	if isDuplicate(err) {
		return service.ErrRatingExists
	}
	return err
}

// DeleteRating removes one rating row. Deleting a rating that is already
// gone (for example removed by the review cascade) reports not-found.
func (s *Store) DeleteRating(ctx context.Context, id uint64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM ratings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// ScoresByMovie returns every current score for a movie; the rating
// refresher averages these.
func (s *Store) ScoresByMovie(ctx context.Context, movieID uint64) ([]int, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT score FROM ratings WHERE movie_id = ?", movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var scores []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// RatedMovieIDs returns the distinct movies a user has rated. Used to
// refresh aggregates after the user's ratings cascade away.
func (s *Store) RatedMovieIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT DISTINCT movie_id FROM ratings WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func reviewIDArg(r *model.Rating) any {
	if r.ReviewID == nil {
		return nil
	}
	return *r.ReviewID
}
