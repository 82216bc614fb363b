package repository

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
)

const movieColumns = "id, title, description, release_date, rating"

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.Description, &m.ReleaseDate, &m.Rating)
}

// MovieByID fetches one movie by primary key.
func (s *Store) MovieByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := scanMovie(s.q.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = ?", id), &m)
	return m, mapNoRows(err)
}

// ListMovies returns one page of the catalog ordered by id.
func (s *Store) ListMovies(ctx context.Context, offset, limit int) ([]model.Movie, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// InsertMovie inserts a movie and populates its generated ID.
func (s *Store) InsertMovie(ctx context.Context, m *model.Movie) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO movies (title, description, release_date, rating) VALUES (?,?,?,?)",
		m.Title, m.Description, m.ReleaseDate, m.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// UpdateMovie rewrites a movie's metadata. The rating column is left
// alone here; only SetMovieRating writes it.
func (s *Store) UpdateMovie(ctx context.Context, m *model.Movie) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE movies SET title = ?, description = ?, release_date = ? WHERE id = ?",
		m.Title, m.Description, m.ReleaseDate, m.ID)
	return err
}

// SetMovieRating writes the recomputed aggregate onto the movie row.
func (s *Store) SetMovieRating(ctx context.Context, movieID uint64, rating float64) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE movies SET rating = ? WHERE id = ?", rating, movieID)
	return err
}

// SearchMovies pages movies whose title contains text and returns the
// total match count alongside the page.
func (s *Store) SearchMovies(ctx context.Context, text string, offset, limit int) ([]model.Movie, int, error) {
	pattern := "%" + text + "%"
	var total int
	if err := s.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM movies WHERE title LIKE ?", pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.q.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE title LIKE ? ORDER BY id LIMIT ? OFFSET ?",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var movies []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, 0, err
		}
		movies = append(movies, m)
	}
	return movies, total, rows.Err()
}

// ReplaceCast deletes a movie's cast list and reinserts the given
// entries in one pass.
func (s *Store) ReplaceCast(ctx context.Context, movieID uint64, entries []model.CastAndCrew) error {
	if _, err := s.q.ExecContext(ctx,
		"DELETE FROM cast_and_crew WHERE movie_id = ?", movieID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	query := "INSERT INTO cast_and_crew (movie_id, name_id, role) VALUES "
	args := make([]any, 0, len(entries)*3)
	for i, e := range entries {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?)"
		args = append(args, movieID, e.NameID, string(e.Role))
	}
	_, err := s.q.ExecContext(ctx, query, args...)
	return err
}

// CastByMovie returns the joined cast list for a movie.
func (s *Store) CastByMovie(ctx context.Context, movieID uint64) ([]model.CastMember, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT c.name_id, n.full_name, c.role
		FROM cast_and_crew c
		INNER JOIN names n ON n.id = c.name_id
		WHERE c.movie_id = ?
		ORDER BY c.id`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cast []model.CastMember
	for rows.Next() {
		var cm model.CastMember
		if err := rows.Scan(&cm.NameID, &cm.FullName, &cm.Role); err != nil {
			return nil, err
		}
		cast = append(cast, cm)
	}
	return cast, rows.Err()
}

// CreditsByName returns the joined filmography for a person.
func (s *Store) CreditsByName(ctx context.Context, nameID uint64) ([]model.Credit, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT c.movie_id, m.title, c.role
		FROM cast_and_crew c
		INNER JOIN movies m ON m.id = c.movie_id
		WHERE c.name_id = ?
		ORDER BY c.id`, nameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var credits []model.Credit
	for rows.Next() {
		var cr model.Credit
		if err := rows.Scan(&cr.MovieID, &cr.MovieTitle, &cr.Role); err != nil {
			return nil, err
		}
		credits = append(credits, cr)
	}
	return credits, rows.Err()
}
