package availability

import (
	"context"
	"fmt"
)

// Service defines business logic around availability templates.
type Service interface {
	Get(ctx context.Context, userID string) (Template, error)
	Update(ctx context.Context, userID string, t Template) (Template, error)
}

type service struct {
	store Store
}

// NewService creates a new availability Service.
func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Get(ctx context.Context, userID string) (Template, error) {
	return s.store.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, t Template) (Template, error) {
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	if err := s.store.Update(ctx, userID, t); err != nil {
		return Template{}, fmt.Errorf("failed to store availability: %w", err)
	}
	return t, nil
}
