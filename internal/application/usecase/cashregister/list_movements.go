package cashregister

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
)

// ListMovementsInput represents the input for listing a register's movements.
type ListMovementsInput struct {
	UserID         uuid.UUID
	CashRegisterID uuid.UUID
}

// ListMovementsOutput represents the movements of a register, newest first.
type ListMovementsOutput struct {
	Movements []*entity.CashMovement
}

// ListMovementsUseCase lists the movements of any register the user owns.
type ListMovementsUseCase struct {
	registerRepo adapter.CashRegisterRepository
}

// NewListMovementsUseCase creates a new ListMovementsUseCase instance.
func NewListMovementsUseCase(registerRepo adapter.CashRegisterRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{registerRepo: registerRepo}
}

// Execute returns the movements, or a NotFound error if the register is not the user's.
func (uc *ListMovementsUseCase) Execute(ctx context.Context, input ListMovementsInput) (*ListMovementsOutput, error) {
	register, err := uc.registerRepo.FindByIDForUser(ctx, input.CashRegisterID, input.UserID)
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	movements, err := uc.registerRepo.ListMovements(ctx, register.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return &ListMovementsOutput{Movements: movements}, nil
}
