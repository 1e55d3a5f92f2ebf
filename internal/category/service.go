package category

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get for unknown ids. Update and Delete stay
// silent on unknown ids and on protected default categories.
var ErrNotFound = errors.New("category not found")

type Repository interface {
	AddCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, id string, params UpdateParams) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*Category, error)
	ReplaceAll(ctx context.Context, categories []*Category) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	Name  string
	Icon  string
	Color string
}

type UpdateParams struct {
	Name  *string
	Icon  *string
	Color *string
}

// Create appends a new custom category with a fresh id.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	c := &Category{
		ID:        fmt.Sprintf("custom_%d", s.now().UnixMilli()),
		Name:      params.Name,
		Icon:      params.Icon,
		Color:     params.Color,
		IsDefault: false,
	}
	if err := s.repo.AddCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// Update applies a partial update to a custom category. Default categories
// are protected; the store ignores the call.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) error {
	return s.repo.UpdateCategory(ctx, id, params)
}

// Delete removes a custom category. Default categories are protected and the
// call is a no-op. Reassigning expenses that referenced the deleted category
// is the caller's responsibility.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

// ResetToDefaults replaces the whole collection with the seeded set.
// Expenses are untouched; custom-category references left behind dangle and
// render as "Other".
func (s *Service) ResetToDefaults(ctx context.Context) error {
	return s.repo.ReplaceAll(ctx, Defaults())
}
