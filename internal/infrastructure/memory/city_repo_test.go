package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/askarovb/auth-service/internal/domain"
	"github.com/askarovb/auth-service/internal/infrastructure/memory"
)

func TestCityRepository_CreateAndRoundTrip(t *testing.T) {
	repo := memory.NewCityRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.City{Name: "Bishkek", Population: 1074075})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}

	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Name != "Bishkek" || found.Population != 1074075 {
		t.Errorf("found = %+v, want Bishkek/1074075", found)
	}

	cities, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cities) != 1 {
		t.Errorf("list returned %d cities, want 1", len(cities))
	}
}

func TestCityRepository_UpdatePersists(t *testing.T) {
	repo := memory.NewCityRepository()
	ctx := context.Background()

	created, _ := repo.Create(ctx, &domain.City{Name: "Osh", Population: 100})
	if _, err := repo.Update(ctx, &domain.City{ID: created.ID, Name: "Osh", Population: 322164}); err != nil {
		t.Fatalf("update: %v", err)
	}

	found, _ := repo.FindByID(ctx, created.ID)
	if found.Population != 322164 {
		t.Errorf("population = %d, want 322164", found.Population)
	}
}

func TestCityRepository_ReturnedValuesAreCopies(t *testing.T) {
	repo := memory.NewCityRepository()
	ctx := context.Background()

	created, _ := repo.Create(ctx, &domain.City{Name: "Karakol", Population: 70000})
	created.Name = "mutated"

	found, _ := repo.FindByID(ctx, created.ID)
	if found.Name != "Karakol" {
		t.Errorf("store affected by caller mutation: name = %q", found.Name)
	}
}

func TestCityRepository_DeleteUnknownID(t *testing.T) {
	repo := memory.NewCityRepository()
	ctx := context.Background()

	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("want ErrCityNotFound, got %v", err)
	}

	created, _ := repo.Create(ctx, &domain.City{Name: "Naryn", Population: 40000})
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("city still present after delete: %v", err)
	}
}
