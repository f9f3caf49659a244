package cashregister

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

// OpenCashRegisterInput represents the input for opening a register.
type OpenCashRegisterInput struct {
	UserID         uuid.UUID
	OpeningBalance decimal.Decimal
}

// OpenCashRegisterOutput represents the output of opening a register.
type OpenCashRegisterOutput struct {
	CashRegister *entity.CashRegister
}

// OpenCashRegisterUseCase opens a register with an initial balance.
type OpenCashRegisterUseCase struct {
	registerRepo adapter.CashRegisterRepository
	locker       adapter.RegisterLocker
	clock        adapter.Clock
}

// NewOpenCashRegisterUseCase creates a new OpenCashRegisterUseCase instance.
func NewOpenCashRegisterUseCase(
	registerRepo adapter.CashRegisterRepository,
	locker adapter.RegisterLocker,
	clock adapter.Clock,
) *OpenCashRegisterUseCase {
	return &OpenCashRegisterUseCase{
		registerRepo: registerRepo,
		locker:       locker,
		clock:        clock,
	}
}

// Execute opens a register and records its OPENING movement.
func (uc *OpenCashRegisterUseCase) Execute(ctx context.Context, input OpenCashRegisterInput) (*OpenCashRegisterOutput, error) {
	if input.OpeningBalance.IsNegative() {
		return nil, domainerror.NewCashRegisterError(
			domainerror.ErrCodeNegativeBalance,
			"opening balance cannot be negative",
			domainerror.ErrNegativeBalance,
		)
	}
	if err := checkCents("opening balance", input.OpeningBalance); err != nil {
		return nil, err
	}

	var register *entity.CashRegister
	err := withRegisterLock(ctx, uc.locker, input.UserID, func() error {
		register = entity.NewCashRegister(input.UserID, input.OpeningBalance, uc.clock.Now().UTC())
		return uc.registerRepo.Open(ctx, register, entity.NewOpeningMovement(register))
	})
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	slog.Info("Cash register opened",
		"user_id", input.UserID,
		"cash_register_id", register.ID,
		"opening_balance", register.Balance.StringFixed(2),
	)

	return &OpenCashRegisterOutput{CashRegister: register}, nil
}
