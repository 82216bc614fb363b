package repository

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/service"
)

const userColumns = "id, nick_name, email, role, password_hash, created_at"

// UserByID fetches a user by primary key.
func (s *Store) UserByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := s.q.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.NickName, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, mapNoRows(err)
}

// UserByEmail fetches a user by normalized email.
func (s *Store) UserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.q.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email).
		Scan(&u.ID, &u.NickName, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, mapNoRows(err)
}

// InsertUser inserts a user and populates its generated ID. Duplicate
// emails surface as service.ErrEmailTaken via the unique key on email.
func (s *Store) InsertUser(ctx context.Context, u *model.User) error {
	res, err := s.q.ExecContext(ctx,
		"INSERT INTO users (nick_name, email, role, password_hash) VALUES (?,?,?,?)",
		u.NickName, u.Email, string(u.Role), u.PasswordHash)
	if err != nil {
		if isDuplicate(err) {
			return service.ErrEmailTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// UpdateUserProfile rewrites the self-serviceable columns.
func (s *Store) UpdateUserProfile(ctx context.Context, id uint64, email, passwordHash string) error {
	_, err := s.q.ExecContext(ctx,
		"UPDATE users SET email = ?, password_hash = ? WHERE id = ?",
		email, passwordHash, id)
	if isDuplicate(err) {
		return service.ErrEmailTaken
	}
	return err
}

// DeleteUser removes a user row. The foreign keys on reviews and ratings
// cascade, removing everything the user wrote.
func (s *Store) DeleteUser(ctx context.Context, id uint64) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return service.ErrNotFound
	}
	return nil
}
