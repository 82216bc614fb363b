package service

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieService implements catalog reads and the editorial movie
// mutations. The derived rating column is owned by the rating refresher;
// Create pins it to 0 and Update never touches it.
type MovieService struct {
	store Store
}

func NewMovieService(store Store) *MovieService {
	return &MovieService{store: store}
}

// CastEntry pairs a person with their role for a movie's cast list.
type CastEntry struct {
	NameID uint64
	Role   model.CastRole
}

// Create inserts a movie with rating 0 and its initial cast list.
func (s *MovieService) Create(ctx context.Context, m model.Movie, cast []CastEntry) (uint64, error) {
	m.Rating = 0
	err := s.store.InTx(ctx, func(st Store) error {
		if err := st.InsertMovie(ctx, &m); err != nil {
			return err
		}
		return st.ReplaceCast(ctx, m.ID, castRows(m.ID, cast))
	})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

// Update rewrites a movie's metadata and replaces its entire cast list
// (delete-all-then-reinsert). The aggregate rating is preserved as-is.
func (s *MovieService) Update(ctx context.Context, id uint64, in model.Movie, cast []CastEntry) error {
	return s.store.InTx(ctx, func(st Store) error {
		m, err := st.MovieByID(ctx, id)
		if err != nil {
			return err
		}
		m.Title = in.Title
		m.Description = in.Description
		m.ReleaseDate = in.ReleaseDate
		if err := st.UpdateMovie(ctx, &m); err != nil {
			return err
		}
		return st.ReplaceCast(ctx, id, castRows(id, cast))
	})
}

// MovieDetails is a movie together with its cast and crew.
type MovieDetails struct {
	Movie model.Movie
	Cast  []model.CastMember
}

// Get returns one movie with its cast list.
func (s *MovieService) Get(ctx context.Context, id uint64) (MovieDetails, error) {
	m, err := s.store.MovieByID(ctx, id)
	if err != nil {
		return MovieDetails{}, err
	}
	cast, err := s.store.CastByMovie(ctx, id)
	if err != nil {
		return MovieDetails{}, err
	}
	return MovieDetails{Movie: m, Cast: cast}, nil
}

// List returns one page of the catalog.
func (s *MovieService) List(ctx context.Context, pageIndex, pageCount int) ([]model.Movie, error) {
	if pageCount <= 0 {
		pageCount = 30
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	return s.store.ListMovies(ctx, pageIndex*pageCount, pageCount)
}

// Search pages movies whose title contains text and reports the total
// match count.
func (s *MovieService) Search(ctx context.Context, text string, pageIndex, pageCount int) ([]model.Movie, int, error) {
	return s.store.SearchMovies(ctx, text, pageIndex*pageCount, pageCount)
}

func castRows(movieID uint64, cast []CastEntry) []model.CastAndCrew {
	rows := make([]model.CastAndCrew, 0, len(cast))
	for _, c := range cast {
		rows = append(rows, model.CastAndCrew{MovieID: movieID, NameID: c.NameID, Role: c.Role})
	}
	return rows
}
