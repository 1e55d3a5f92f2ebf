package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no expense exists under the given id.
// Mutations on unknown ids are silent no-ops instead; deletes are idempotent.
var ErrNotFound = errors.New("expense not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	AddExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, params UpdateParams) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListExpenses(ctx context.Context) ([]*Expense, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount      float64
	Description string
	CategoryID  string
	Date        time.Time
}

// UpdateParams carries a partial update; nil fields are left untouched.
// An all-nil update still refreshes UpdatedAt.
type UpdateParams struct {
	Amount      *float64
	Description *string
	CategoryID  *string
	Date        *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	e := &Expense{
		ID:          uuid.New(),
		Amount:      params.Amount,
		Description: params.Description,
		CategoryID:  params.CategoryID,
		Date:        params.Date,
	}
	if err := s.repo.AddExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) error {
	return s.repo.UpdateExpense(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

// List returns every expense in display order (most recently added first).
// Filtering and aggregation over the returned snapshot live in internal/report.
func (s *Service) List(ctx context.Context) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx)
}

// ReassignCategory rewrites every expense referencing fromID to point at toID.
// Used by the category-deletion flow to move orphans to "other"; each rewrite
// is an independent mutation, so an interruption can leave dangling references
// (tolerated: consumers treat unknown category ids as "other").
func (s *Service) ReassignCategory(ctx context.Context, fromID, toID string) error {
	all, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return err
	}

	for _, e := range all {
		if e.CategoryID != fromID {
			continue
		}

		if err := s.repo.UpdateExpense(ctx, e.ID, UpdateParams{CategoryID: &toID}); err != nil {
			return err
		}
	}

	return nil
}
