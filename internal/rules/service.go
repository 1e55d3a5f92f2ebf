// Package rules maps expense descriptions to category ids. Rules are learned
// from user corrections and applied to imported rows so recurring merchants
// land in the right category without manual triage.
package rules

import (
	"context"
)

// Rule associates a description pattern (matched as a case-insensitive
// substring) with a category id.
type Rule struct {
	Pattern    string `json:"pattern"`
	CategoryID string `json:"category"`
}

type Repository interface {
	FindCategory(ctx context.Context, description string) (string, error)
	CreateRule(ctx context.Context, pattern, categoryID string) error
	ListRules(ctx context.Context) ([]Rule, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category id for the first rule matching the
// description, or empty string when nothing matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	return s.repo.FindCategory(ctx, description)
}

// Learn remembers a new pattern→category association.
func (s *Service) Learn(ctx context.Context, pattern, categoryID string) error {
	return s.repo.CreateRule(ctx, pattern, categoryID)
}

func (s *Service) List(ctx context.Context) ([]Rule, error) {
	return s.repo.ListRules(ctx)
}
