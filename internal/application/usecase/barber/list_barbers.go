// Package barber contains use cases for the staff sales are attributed to.
package barber

import (
	"context"
	"fmt"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
)

// ListBarbersOutput represents the active barbers ordered by name.
type ListBarbersOutput struct {
	Barbers []*entity.Barber
}

// ListBarbersUseCase lists the barbers a sale can be attributed to.
type ListBarbersUseCase struct {
	barberRepo adapter.BarberRepository
}

// NewListBarbersUseCase creates a new ListBarbersUseCase instance.
func NewListBarbersUseCase(barberRepo adapter.BarberRepository) *ListBarbersUseCase {
	return &ListBarbersUseCase{barberRepo: barberRepo}
}

// Execute returns all active barbers.
func (uc *ListBarbersUseCase) Execute(ctx context.Context) (*ListBarbersOutput, error) {
	barbers, err := uc.barberRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list barbers: %w", err)
	}
	return &ListBarbersOutput{Barbers: barbers}, nil
}
