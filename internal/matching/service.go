package matching

import (
	"context"
)

type Repository interface {
	FindMatch(ctx context.Context, rawName string) (string, error)
	CreateMapping(ctx context.Context, rawPattern, substanceCode string) error
}

// Service resolves free-text substance names from regulator files to
// canonical substance codes. Mappings accumulate as operators confirm
// matches, so repeated imports from the same authority resolve without
// intervention.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve tries to find the canonical substance code for a raw substance
// name. Returns empty string if no mapping matches.
func (s *Service) Resolve(ctx context.Context, rawName string) (string, error) {
	return s.repo.FindMatch(ctx, rawName)
}

// Learn remembers a new mapping between a raw name pattern and a substance
// code.
func (s *Service) Learn(ctx context.Context, rawPattern, substanceCode string) error {
	return s.repo.CreateMapping(ctx, rawPattern, substanceCode)
}
