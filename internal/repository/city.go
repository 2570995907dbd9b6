package repository

import (
	"context"

	"github.com/askarovb/auth-service/internal/domain"
)

type CityRepository interface {
	Create(ctx context.Context, c *domain.City) (*domain.City, error)
	List(ctx context.Context) ([]*domain.City, error)
	FindByID(ctx context.Context, id string) (*domain.City, error)
	Update(ctx context.Context, c *domain.City) (*domain.City, error)
	Delete(ctx context.Context, id string) error
}
