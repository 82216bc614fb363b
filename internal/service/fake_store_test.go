package service

import (
	"context"
	"sort"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// fakeStore is an in-memory Store for service tests. It mirrors the
// MySQL schema's relevant behavior: unique (user_id, movie_id) pairs on
// ratings and reviews, and deleting a user cascades their ratings and
// reviews away.
type fakeStore struct {
	users   map[uint64]model.User
	movies  map[uint64]model.Movie
	names   map[uint64]model.Name
	cast    []model.CastAndCrew
	ratings map[uint64]model.Rating
	reviews map[uint64]model.Review
	nextID  uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[uint64]model.User{},
		movies:  map[uint64]model.Movie{},
		names:   map[uint64]model.Name{},
		ratings: map[uint64]model.Rating{},
		reviews: map[uint64]model.Review{},
	}
}

func (f *fakeStore) id() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addMovie(title string) uint64 {
	id := f.id()
	f.movies[id] = model.Movie{ID: id, Title: title}
	return id
}

func (f *fakeStore) addUser(role model.Role) uint64 {
	id := f.id()
	f.users[id] = model.User{ID: id, NickName: "u", Email: "u@example.com", Role: role}
	return id
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func (f *fakeStore) UserByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (f *fakeStore) InsertUser(ctx context.Context, u *model.User) error {
	for _, ex := range f.users {
		if ex.Email == u.Email {
			return ErrEmailTaken
		}
	}
	u.ID = f.id()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) UpdateUserProfile(ctx context.Context, id uint64, email, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Email = email
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id uint64) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	for rid, r := range f.ratings {
		if r.UserID == id {
			delete(f.ratings, rid)
		}
	}
	for rvid, rv := range f.reviews {
		if rv.UserID == id {
			delete(f.reviews, rvid)
		}
	}
	return nil
}

func (f *fakeStore) MovieByID(ctx context.Context, id uint64) (model.Movie, error) {
	m, ok := f.movies[id]
	if !ok {
		return model.Movie{}, ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) ListMovies(ctx context.Context, offset, limit int) ([]model.Movie, error) {
	ids := make([]uint64, 0, len(f.movies))
	for id := range f.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := []model.Movie{}
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		out = append(out, f.movies[id])
	}
	return out, nil
}

func (f *fakeStore) InsertMovie(ctx context.Context, m *model.Movie) error {
	m.ID = f.id()
	f.movies[m.ID] = *m
	return nil
}

func (f *fakeStore) UpdateMovie(ctx context.Context, m *model.Movie) error {
	ex, ok := f.movies[m.ID]
	if !ok {
		return ErrNotFound
	}
	// Only metadata columns; the rating column is written through
	// SetMovieRating alone, as in the SQL implementation.
	ex.Title = m.Title
	ex.Description = m.Description
	ex.ReleaseDate = m.ReleaseDate
	f.movies[m.ID] = ex
	return nil
}

func (f *fakeStore) SetMovieRating(ctx context.Context, movieID uint64, rating float64) error {
	m, ok := f.movies[movieID]
	if !ok {
		return ErrNotFound
	}
	m.Rating = rating
	f.movies[movieID] = m
	return nil
}

func (f *fakeStore) SearchMovies(ctx context.Context, text string, offset, limit int) ([]model.Movie, int, error) {
	matched := []model.Movie{}
	for _, m := range f.movies {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(text)) {
			matched = append(matched, m)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	if offset >= len(matched) {
		return []model.Movie{}, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeStore) ReplaceCast(ctx context.Context, movieID uint64, entries []model.CastAndCrew) error {
	kept := f.cast[:0]
	for _, c := range f.cast {
		if c.MovieID != movieID {
			kept = append(kept, c)
		}
	}
	f.cast = append(kept, entries...)
	return nil
}

func (f *fakeStore) CastByMovie(ctx context.Context, movieID uint64) ([]model.CastMember, error) {
	out := []model.CastMember{}
	for _, c := range f.cast {
		if c.MovieID != movieID {
			continue
		}
		n := f.names[c.NameID]
		out = append(out, model.CastMember{NameID: c.NameID, FullName: n.FullName, Role: c.Role})
	}
	return out, nil
}

func (f *fakeStore) CreditsByName(ctx context.Context, nameID uint64) ([]model.Credit, error) {
	out := []model.Credit{}
	for _, c := range f.cast {
		if c.NameID != nameID {
			continue
		}
		m := f.movies[c.MovieID]
		out = append(out, model.Credit{MovieID: c.MovieID, MovieTitle: m.Title, Role: c.Role})
	}
	return out, nil
}

func (f *fakeStore) NameByID(ctx context.Context, id uint64) (model.Name, error) {
	n, ok := f.names[id]
	if !ok {
		return model.Name{}, ErrNotFound
	}
	return n, nil
}

func (f *fakeStore) InsertName(ctx context.Context, n *model.Name) error {
	n.ID = f.id()
	f.names[n.ID] = *n
	return nil
}

func (f *fakeStore) UpdateName(ctx context.Context, n *model.Name) error {
	if _, ok := f.names[n.ID]; !ok {
		return ErrNotFound
	}
	f.names[n.ID] = *n
	return nil
}

func (f *fakeStore) SearchNames(ctx context.Context, text string, offset, limit int) ([]model.Name, int, error) {
	matched := []model.Name{}
	for _, n := range f.names {
		if strings.Contains(strings.ToLower(n.FullName), strings.ToLower(text)) {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	if offset >= len(matched) {
		return []model.Name{}, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeStore) RatingByID(ctx context.Context, id uint64) (model.Rating, error) {
	r, ok := f.ratings[id]
	if !ok {
		return model.Rating{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) RatingByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Rating, error) {
	for _, r := range f.ratings {
		if r.UserID == userID && r.MovieID == movieID {
			return r, nil
		}
	}
	return model.Rating{}, ErrNotFound
}

func (f *fakeStore) RatingByReview(ctx context.Context, reviewID uint64) (model.Rating, error) {
	for _, r := range f.ratings {
		if r.ReviewID != nil && *r.ReviewID == reviewID {
			return r, nil
		}
	}
	return model.Rating{}, ErrNotFound
}

func (f *fakeStore) InsertRating(ctx context.Context, r *model.Rating) error {
	for _, ex := range f.ratings {
		if ex.UserID == r.UserID && ex.MovieID == r.MovieID {
			return ErrRatingExists
		}
	}
	r.ID = f.id()
	f.ratings[r.ID] = *r
	return nil
}

func (f *fakeStore) UpdateRating(ctx context.Context, r *model.Rating) error {
	if _, ok := f.ratings[r.ID]; !ok {
		return ErrNotFound
	}
	f.ratings[r.ID] = *r
	return nil
}

func (f *fakeStore) DeleteRating(ctx context.Context, id uint64) error {
	if _, ok := f.ratings[id]; !ok {
		return ErrNotFound
	}
	delete(f.ratings, id)
	return nil
}

func (f *fakeStore) ScoresByMovie(ctx context.Context, movieID uint64) ([]int, error) {
	out := []int{}
	for _, r := range f.ratings {
		if r.MovieID == movieID {
			out = append(out, r.Score)
		}
	}
	return out, nil
}

func (f *fakeStore) RatedMovieIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	out := []uint64{}
	for _, r := range f.ratings {
		if r.UserID == userID {
			out = append(out, r.MovieID)
		}
	}
	return out, nil
}

func (f *fakeStore) ReviewByID(ctx context.Context, id uint64) (model.Review, error) {
	rv, ok := f.reviews[id]
	if !ok {
		return model.Review{}, ErrNotFound
	}
	return rv, nil
}

func (f *fakeStore) ReviewByUserAndMovie(ctx context.Context, userID, movieID uint64) (model.Review, error) {
	for _, rv := range f.reviews {
		if rv.UserID == userID && rv.MovieID == movieID {
			return rv, nil
		}
	}
	return model.Review{}, ErrNotFound
}

func (f *fakeStore) InsertReview(ctx context.Context, rv *model.Review) error {
	for _, ex := range f.reviews {
		if ex.UserID == rv.UserID && ex.MovieID == rv.MovieID {
			return ErrReviewExists
		}
	}
	rv.ID = f.id()
	f.reviews[rv.ID] = *rv
	return nil
}

func (f *fakeStore) UpdateReview(ctx context.Context, rv *model.Review) error {
	if _, ok := f.reviews[rv.ID]; !ok {
		return ErrNotFound
	}
	f.reviews[rv.ID] = *rv
	return nil
}

func (f *fakeStore) DeleteReview(ctx context.Context, id uint64) error {
	if _, ok := f.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeStore) ListReviews(ctx context.Context, filter ReviewFilter) ([]ReviewRow, int, error) {
	ids := make([]uint64, 0, len(f.reviews))
	for id := range f.reviews {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := []ReviewRow{}
	for _, id := range ids {
		rv := f.reviews[id]
		if filter.UserID != 0 && rv.UserID != filter.UserID {
			continue
		}
		if filter.MovieID != 0 && rv.MovieID != filter.MovieID {
			continue
		}
		if filter.HideSpoilers && rv.HasSpoiler {
			continue
		}
		score := 0
		if r, err := f.RatingByReview(ctx, rv.ID); err == nil {
			score = r.Score
		}
		matched = append(matched, ReviewRow{
			CreatorName: f.users[rv.UserID].NickName,
			MovieTitle:  f.movies[rv.MovieID].Title,
			ReviewTitle: rv.Title,
			Text:        rv.Text,
			HasSpoiler:  rv.HasSpoiler,
			Score:       score,
		})
	}
	total := len(matched)
	if filter.Offset >= len(matched) {
		return []ReviewRow{}, total, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}
