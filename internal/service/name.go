package service

import (
	"context"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// NameService implements the editorial operations on cast/crew persons.
type NameService struct {
	store Store
}

func NewNameService(store Store) *NameService {
	return &NameService{store: store}
}

func (s *NameService) Create(ctx context.Context, fullName, description string) (uint64, error) {
	n := model.Name{FullName: fullName, Description: description}
	if err := s.store.InsertName(ctx, &n); err != nil {
		return 0, err
	}
	return n.ID, nil
}

func (s *NameService) Update(ctx context.Context, id uint64, fullName, description string) error {
	return s.store.InTx(ctx, func(st Store) error {
		n, err := st.NameByID(ctx, id)
		if err != nil {
			return err
		}
		n.FullName = fullName
		n.Description = description
		return st.UpdateName(ctx, &n)
	})
}

// NameDetails is a person together with their filmography.
type NameDetails struct {
	Name    model.Name
	Credits []model.Credit
}

// Get returns one person and every movie they are credited on.
func (s *NameService) Get(ctx context.Context, id uint64) (NameDetails, error) {
	n, err := s.store.NameByID(ctx, id)
	if err != nil {
		return NameDetails{}, err
	}
	credits, err := s.store.CreditsByName(ctx, id)
	if err != nil {
		return NameDetails{}, err
	}
	return NameDetails{Name: n, Credits: credits}, nil
}

// Search pages persons whose full name contains text and reports the
// total match count.
func (s *NameService) Search(ctx context.Context, text string, pageIndex, pageCount int) ([]model.Name, int, error) {
	return s.store.SearchNames(ctx, text, pageIndex*pageCount, pageCount)
}
