package settings

import "context"

type Repository interface {
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.repo.GetSettings(ctx)
}

func (s *Service) SetCurrency(ctx context.Context, c Currency) error {
	current, err := s.repo.GetSettings(ctx)
	if err != nil {
		return err
	}

	current.Currency = c

	return s.repo.SaveSettings(ctx, current)
}

func (s *Service) SetLanguage(ctx context.Context, l Language) error {
	current, err := s.repo.GetSettings(ctx)
	if err != nil {
		return err
	}

	current.Language = l

	return s.repo.SaveSettings(ctx, current)
}
