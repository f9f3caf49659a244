package barber

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
)

// SeedBarbersUseCase creates the default staff on an empty database.
type SeedBarbersUseCase struct {
	barberRepo adapter.BarberRepository
}

// NewSeedBarbersUseCase creates a new SeedBarbersUseCase instance.
func NewSeedBarbersUseCase(barberRepo adapter.BarberRepository) *SeedBarbersUseCase {
	return &SeedBarbersUseCase{barberRepo: barberRepo}
}

// Execute seeds the owner and two barbers unless any barber already exists.
// It returns the number of barbers created.
func (uc *SeedBarbersUseCase) Execute(ctx context.Context) (int, error) {
	count, err := uc.barberRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count barbers: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	barbers := []*entity.Barber{
		entity.NewBarber("Barbero 1", true),
		entity.NewBarber("Barbero 2", false),
		entity.NewBarber("Barbero 3", false),
	}
	if err := uc.barberRepo.CreateBatch(ctx, barbers); err != nil {
		return 0, fmt.Errorf("failed to seed barbers: %w", err)
	}

	slog.Info("Default barbers seeded", "count", len(barbers))
	return len(barbers), nil
}
