package memory

import (
	"context"
	"sync"

	"github.com/askarovb/auth-service/internal/domain"
	"github.com/google/uuid"
)

// CityRepository is an in-memory store guarded by a mutex. It is
// constructed and injected like any other repository — no package-level
// state.
type CityRepository struct {
	mu     sync.RWMutex
	cities map[string]*domain.City
}

func NewCityRepository() *CityRepository {
	return &CityRepository{cities: make(map[string]*domain.City)}
}

func (r *CityRepository) Create(_ context.Context, c *domain.City) (*domain.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := &domain.City{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Population: c.Population,
	}
	r.cities[stored.ID] = stored

	cp := *stored
	return &cp, nil
}

func (r *CityRepository) List(_ context.Context) ([]*domain.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.City, 0, len(r.cities))
	for _, c := range r.cities {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *CityRepository) FindByID(_ context.Context, id string) (*domain.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cities[id]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CityRepository) Update(_ context.Context, c *domain.City) (*domain.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.cities[c.ID]
	if !ok {
		return nil, domain.ErrCityNotFound
	}
	stored.Name = c.Name
	stored.Population = c.Population

	cp := *stored
	return &cp, nil
}

func (r *CityRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cities[id]; !ok {
		return domain.ErrCityNotFound
	}
	delete(r.cities, id)
	return nil
}
