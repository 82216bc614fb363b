package repository

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// NameByID fetches one person by primary key.
func (s *Store) NameByID(ctx context.Context, id uint64) (model.Name, error) {
	var n model.Name
	err := s.q.QueryRowContext(ctx,
		"SELECT id, full_name, description FROM names WHERE id = ?", id).
		Scan(&n.ID, &n.FullName, &n.Description)
	return n, mapNoRows(err)
}

// InsertName inserts a person and populates its generated ID.
func (s *Store) InsertName(ctx context.Context, n *model.Name) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO names (full_name, description) VALUES (?,?)",
		n.FullName, n.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// UpdateName rewrites a person's fields.
func (s *Store) UpdateName(ctx context.Context, n *model.Name) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE names SET full_name = ?, description = ? WHERE id = ?",
		n.FullName, n.Description, n.ID)
	return err
}

// SearchNames pages persons whose full name contains text and returns
// the total match count alongside the page.
func (s *Store) SearchNames(ctx context.Context, text string, offset, limit int) ([]model.Name, int, error) {
	pattern := "%" + text + "%"
	var total int
	if err := s.q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM names WHERE full_name LIKE ?", pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, full_name, description FROM names WHERE full_name LIKE ? ORDER BY id LIMIT ? OFFSET ?",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var names []model.Name
	for rows.Next() {
		var n model.Name
		if err := rows.Scan(&n.ID, &n.FullName, &n.Description); err != nil {
			return nil, 0, err
		}
		names = append(names, n)
	}
	return names, total, rows.Err()
}
