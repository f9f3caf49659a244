package cashregister

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

// CloseCashRegisterInput represents the input for closing a register.
type CloseCashRegisterInput struct {
	UserID         uuid.UUID
	CashRegisterID uuid.UUID
	ActualBalance  decimal.Decimal
	Notes          string
}

// CloseCashRegisterOutput represents the output of closing a register.
type CloseCashRegisterOutput struct {
	Closing *entity.CashClosing
}

// CloseCashRegisterUseCase reconciles and closes an open register.
type CloseCashRegisterUseCase struct {
	registerRepo adapter.CashRegisterRepository
	locker       adapter.RegisterLocker
	clock        adapter.Clock
}

// NewCloseCashRegisterUseCase creates a new CloseCashRegisterUseCase instance.
func NewCloseCashRegisterUseCase(
	registerRepo adapter.CashRegisterRepository,
	locker adapter.RegisterLocker,
	clock adapter.Clock,
) *CloseCashRegisterUseCase {
	return &CloseCashRegisterUseCase{
		registerRepo: registerRepo,
		locker:       locker,
		clock:        clock,
	}
}

// Execute closes the register and returns the stored closing.
func (uc *CloseCashRegisterUseCase) Execute(ctx context.Context, input CloseCashRegisterInput) (*CloseCashRegisterOutput, error) {
	if input.ActualBalance.IsNegative() {
		return nil, domainerror.NewCashRegisterError(
			domainerror.ErrCodeNegativeBalance,
			"actual balance cannot be negative",
			domainerror.ErrNegativeBalance,
		)
	}
	if err := checkCents("actual balance", input.ActualBalance); err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(input.Notes)
	if exceedsLength(notes, maxNotesLength) {
		return nil, domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidCashRequest,
			fmt.Sprintf("notes must be at most %d characters", maxNotesLength),
			nil,
		)
	}

	var closing *entity.CashClosing
	err := withRegisterLock(ctx, uc.locker, input.UserID, func() error {
		var closeErr error
		closing, closeErr = uc.registerRepo.Close(ctx, adapter.CloseRegisterParams{
			UserID:         input.UserID,
			CashRegisterID: input.CashRegisterID,
			ActualBalance:  input.ActualBalance,
			Notes:          notes,
			ClosedAt:       uc.clock.Now().UTC(),
		})
		return closeErr
	})
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	slog.Info("Cash register closed",
		"user_id", input.UserID,
		"cash_register_id", input.CashRegisterID,
		"expected_balance", closing.ExpectedBalance.StringFixed(2),
		"actual_balance", closing.ActualBalance.StringFixed(2),
		"difference", closing.Difference.StringFixed(2),
	)

	return &CloseCashRegisterOutput{Closing: closing}, nil
}
