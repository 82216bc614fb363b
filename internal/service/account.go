package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// AccountService covers signup, login, profile self-service and the
// moderation/administration operations on user accounts.
type AccountService struct {
	store      Store
	bcryptCost int
}

func NewAccountService(store Store, bcryptCost int) *AccountService {
	return &AccountService{store: store, bcryptCost: bcryptCost}
}

// SignUp registers a public account with role user. Duplicate emails are
// rejected with ErrEmailTaken; the pre-check is backed by the unique key
// on users.email.
func (s *AccountService) SignUp(ctx context.Context, nickName, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.store.InTx(ctx, func(st Store) error {
		_, err := st.UserByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		u := model.User{
			NickName:     nickName,
			Email:        email,
			Role:         model.RoleUser,
			PasswordHash: hash,
		}
		return st.InsertUser(ctx, &u)
	})
}

// Login verifies credentials and returns the matching user. Unknown email
// and wrong password collapse into ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CreateInternalMember creates an editorial account. Only editor and
// moderator are accepted here; admin accounts are seeded out of band and
// plain users come in via signup.
func (s *AccountService) CreateInternalMember(ctx context.Context, nickName, email, password string, role model.Role) error {
	if role != model.RoleEditor && role != model.RoleModerator {
		return errors.New("internal members must be editor or moderator")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.store.InTx(ctx, func(st Store) error {
		_, err := st.UserByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		u := model.User{
			NickName:     nickName,
			Email:        email,
			Role:         role,
			PasswordHash: hash,
		}
		return st.InsertUser(ctx, &u)
	})
}

// UpdateProfile lets a user change their own email and, when password is
// non-empty, their password.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint64, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.store.InTx(ctx, func(st Store) error {
		u, err := st.UserByID(ctx, userID)
		if err != nil {
			return err
		}
		hash := u.PasswordHash
		if password != "" {
			hash, err = utils.HashPassword(password, s.bcryptCost)
			if err != nil {
				return err
			}
		}
		return st.UpdateUserProfile(ctx, userID, email, hash)
	})
}

// DeleteUser removes a target account on behalf of a moderator. Admin
// accounts are not deletable through this path and answer ErrNotFound no
// matter who asks. The user's reviews and ratings cascade away, so every
// movie the user had rated gets its aggregate refreshed, once per movie.
func (s *AccountService) DeleteUser(ctx context.Context, targetID uint64) error {
	return s.store.InTx(ctx, func(st Store) error {
		u, err := st.UserByID(ctx, targetID)
		if err != nil {
			return err
		}
		if u.Role == model.RoleAdmin {
			return ErrNotFound
		}
		return deleteUserAndRefresh(ctx, st, targetID)
	})
}

// DeleteProfile removes the calling user's own account with the same
// cascade and refresh rules as DeleteUser.
func (s *AccountService) DeleteProfile(ctx context.Context, userID uint64) error {
	return s.store.InTx(ctx, func(st Store) error {
		if _, err := st.UserByID(ctx, userID); err != nil {
			return err
		}
		return deleteUserAndRefresh(ctx, st, userID)
	})
}

// deleteUserAndRefresh snapshots the movies the user has rated before the
// row (and, via cascade, the ratings) disappears, then refreshes each
// affected aggregate. The invariant of one rating per (user, movie) pair
// means each movie appears at most once in the snapshot.
func deleteUserAndRefresh(ctx context.Context, st Store, userID uint64) error {
	movieIDs, err := st.RatedMovieIDs(ctx, userID)
	if err != nil {
		return err
	}
	if err := st.DeleteUser(ctx, userID); err != nil {
		return err
	}
	for _, movieID := range movieIDs {
		if err := refreshMovieRating(ctx, st, movieID); err != nil {
			return err
		}
	}
	return nil
}
