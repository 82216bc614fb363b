package repository

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

const reviewColumns = "id, title, text, has_spoiler, user_id, movie_id"

func scanReview(row interface{ Scan(...any) error }, rv *model.Review) error {
	return row.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.HasSpoiler, &rv.UserID, &rv.MovieID)
}

// ReviewByID fetches one review by primary key.
func (s *Store) ReviewByID(ctx context.Context, id uint64) (model.Review, error) {
	var rv model.Review
	err := scanReview(s.q.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id = ?", id), &rv)
	return rv, mapNoRows(err)
}

// ReviewByUserAndMovie fetches the single review a user holds on a
// movie, if any.
func (s *Store) ReviewByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Review, error) {
	var rv model.Review
	err := scanReview(s.q.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE user_id = ? AND movie_id = ? LIMIT 1",
		userID, movieID), &rv)
	return rv, mapNoRows(err)
}

// InsertReview inserts a review and populates its generated ID. The
// unique key on (user_id, movie_id) backs the service-level pre-check.
func (s *Store) InsertReview(ctx context.Context, rv *model.Review) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO reviews (title, text, has_spoiler, user_id, movie_id) VALUES (?,?,?,?,?)",
		rv.Title, rv.Text, rv.HasSpoiler, rv.UserID, rv.MovieID)
	if err != nil {
		if isDuplicate(err) {
			return service.ErrReviewExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// UpdateReview rewrites a review's writable fields, movie included. The
// unique key on (user_id, movie_id) catches a move onto an already
// reviewed movie that raced past the service pre-check.
func (s *Store) UpdateReview(ctx context.Context, rv *model.Review) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE reviews SET title = ?, text = ?, has_spoiler = ?, movie_id = ? WHERE id = ?",
		rv.Title, rv.Text, rv.HasSpoiler, rv.MovieID, rv.ID)
	if isDuplicate(err) {
		return service.ErrReviewExists
	}
	return err
}

// DeleteReview removes one review row. The foreign key from ratings
// cascades, removing the linked rating as well.
func (s *Store) DeleteReview(ctx context.Context, id uint64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// ListReviews pages the review feed joined with author, movie and linked
// rating, returning the total match count alongside the page.
func (s *Store) ListReviews(ctx context.Context, f service.ReviewFilter) ([]service.ReviewRow, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if f.UserID != 0 {
		where += " AND r.user_id = ?"
		args = append(args, f.UserID)
	}
	if f.MovieID != 0 {
		where += " AND r.movie_id = ?"
		args = append(args, f.MovieID)
	}
	if f.HideSpoilers {
		where += " AND r.has_spoiler = 0"
	}

	base := `
		FROM reviews r
		INNER JOIN users u ON u.id = r.user_id
		INNER JOIN movies m ON m.id = r.movie_id
		INNER JOIN ratings rt ON rt.review_id = r.id
		` + where

	var total int
	if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.q.QueryContext(ctx,
		"SELECT u.nick_name, m.title, r.title, r.text, r.has_spoiler, rt.score "+base+
			" ORDER BY r.id LIMIT ? OFFSET ?",
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []service.ReviewRow
	for rows.Next() {
		var row service.ReviewRow
		if err := rows.Scan(&row.CreatorName, &row.MovieTitle, &row.ReviewTitle,
			&row.Text, &row.HasSpoiler, &row.Score); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}
