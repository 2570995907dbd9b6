package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/askarovb/auth-service/internal/domain"
	"github.com/askarovb/auth-service/internal/repository"
)

type CityUsecase struct {
	cities repository.CityRepository
}

func NewCityUsecase(cities repository.CityRepository) *CityUsecase {
	return &CityUsecase{cities: cities}
}

type CityInput struct {
	Name       string
	Population int64
}

func (u *CityUsecase) CreateCity(ctx context.Context, input CityInput) (*domain.City, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	city, err := u.cities.Create(ctx, &domain.City{Name: name, Population: input.Population})
	if err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}
	return city, nil
}

func (u *CityUsecase) ListCities(ctx context.Context) ([]*domain.City, error) {
	cities, err := u.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (u *CityUsecase) GetCity(ctx context.Context, id string) (*domain.City, error) {
	return u.cities.FindByID(ctx, id)
}

func (u *CityUsecase) UpdateCity(ctx context.Context, id string, input CityInput) (*domain.City, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	return u.cities.Update(ctx, &domain.City{ID: id, Name: name, Population: input.Population})
}

func (u *CityUsecase) DeleteCity(ctx context.Context, id string) error {
	return u.cities.Delete(ctx, id)
}
