package budget

import "context"

type Repository interface {
	SetBudget(ctx context.Context, categoryID string, limit float64) error
	ListBudgets(ctx context.Context) (Budgets, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set stores the monthly limit for a category, overwriting any previous
// value. Setting 0 effectively clears the budget.
func (s *Service) Set(ctx context.Context, categoryID string, limit float64) error {
	return s.repo.SetBudget(ctx, categoryID, limit)
}

func (s *Service) All(ctx context.Context) (Budgets, error) {
	return s.repo.ListBudgets(ctx)
}
