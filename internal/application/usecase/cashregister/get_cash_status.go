package cashregister

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/domain/valueobject"
)

// GetCashStatusInput represents the input for reading the open register.
type GetCashStatusInput struct {
	UserID uuid.UUID
}

// GetCashStatusOutput describes the open register and its running totals.
type GetCashStatusOutput struct {
	CashRegister   *entity.CashRegister
	Movements      []*entity.CashMovement
	TotalIncomes   decimal.Decimal
	TotalExpenses  decimal.Decimal
	CurrentBalance decimal.Decimal
}

// GetCashStatusUseCase reports on the user's open register.
type GetCashStatusUseCase struct {
	registerRepo adapter.CashRegisterRepository
}

// NewGetCashStatusUseCase creates a new GetCashStatusUseCase instance.
func NewGetCashStatusUseCase(registerRepo adapter.CashRegisterRepository) *GetCashStatusUseCase {
	return &GetCashStatusUseCase{registerRepo: registerRepo}
}

// Execute returns the open register, or nil when the user has none open.
func (uc *GetCashStatusUseCase) Execute(ctx context.Context, input GetCashStatusInput) (*GetCashStatusOutput, error) {
	register, err := uc.registerRepo.FindOpenByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNoOpenCashRegister) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open cash register: %w", err)
	}

	movements, err := uc.registerRepo.ListMovements(ctx, register.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	summary := valueobject.SummarizeMovements(movements)

	return &GetCashStatusOutput{
		CashRegister:   register,
		Movements:      movements,
		TotalIncomes:   summary.TotalSales,
		TotalExpenses:  summary.TotalExpenses,
		CurrentBalance: register.Balance,
	}, nil
}
