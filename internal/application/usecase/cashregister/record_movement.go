package cashregister

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

// RecordMovementInput represents the input for recording a sale or expense.
type RecordMovementInput struct {
	UserID         uuid.UUID
	CashRegisterID uuid.UUID
	Type           entity.MovementType
	Amount         decimal.Decimal
	PaymentMethod  entity.PaymentMethod
	Description    string
	Category       string
	BarberID       *uuid.UUID
}

// RecordMovementOutput represents the output of recording a movement.
type RecordMovementOutput struct {
	Movement   *entity.CashMovement
	NewBalance decimal.Decimal
}

// RecordMovementUseCase applies sales and expenses to an open register.
type RecordMovementUseCase struct {
	registerRepo adapter.CashRegisterRepository
	barberRepo   adapter.BarberRepository
	locker       adapter.RegisterLocker
	clock        adapter.Clock
	policy       Policy
}

// NewRecordMovementUseCase creates a new RecordMovementUseCase instance.
func NewRecordMovementUseCase(
	registerRepo adapter.CashRegisterRepository,
	barberRepo adapter.BarberRepository,
	locker adapter.RegisterLocker,
	clock adapter.Clock,
	policy Policy,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		registerRepo: registerRepo,
		barberRepo:   barberRepo,
		locker:       locker,
		clock:        clock,
		policy:       policy,
	}
}

// Execute records the movement and returns the register's new balance.
func (uc *RecordMovementUseCase) Execute(ctx context.Context, input RecordMovementInput) (*RecordMovementOutput, error) {
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	register, err := uc.registerRepo.FindByIDForUser(ctx, input.CashRegisterID, input.UserID)
	if err != nil {
		return nil, translateRepositoryError(err)
	}
	if !register.IsOpen() {
		return nil, translateRepositoryError(domainerror.ErrCashRegisterNotFound)
	}

	var barber *entity.Barber
	if input.BarberID != nil {
		barber, err = uc.barberRepo.FindActiveByID(ctx, *input.BarberID)
		if err != nil {
			if errors.Is(err, domainerror.ErrBarberNotFound) {
				return nil, translateRepositoryError(err)
			}
			return nil, fmt.Errorf("failed to find barber: %w", err)
		}
	}

	movement := entity.NewCashMovement(
		register.ID,
		input.Type,
		input.Amount,
		input.PaymentMethod,
		input.Description,
		input.Category,
		input.BarberID,
		input.UserID,
		uc.clock.Now().UTC(),
	)
	movement.Barber = barber

	var newBalance decimal.Decimal
	err = withRegisterLock(ctx, uc.locker, input.UserID, func() error {
		var recordErr error
		newBalance, recordErr = uc.registerRepo.RecordMovement(ctx, input.UserID, movement)
		return recordErr
	})
	if err != nil {
		return nil, translateRepositoryError(err)
	}

	slog.Info("Cash movement recorded",
		"user_id", input.UserID,
		"cash_register_id", register.ID,
		"movement_id", movement.ID,
		"type", movement.Type,
		"amount", movement.Amount.StringFixed(2),
		"new_balance", newBalance.StringFixed(2),
	)

	return &RecordMovementOutput{
		Movement:   movement,
		NewBalance: newBalance,
	}, nil
}

func (uc *RecordMovementUseCase) validate(input RecordMovementInput) error {
	if !input.Type.IsRecordable() {
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidMovementType,
			"type must be SALE or EXPENSE",
			domainerror.ErrInvalidMovementType,
		)
	}

	if !input.PaymentMethod.IsValid() {
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be CASH, CARD, TRANSFER or MIXED",
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	if !input.Amount.IsPositive() {
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if err := checkCents("amount", input.Amount); err != nil {
		return err
	}

	if exceedsLength(input.Description, maxDescriptionLength) || exceedsLength(input.Category, maxCategoryLength) {
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidCashRequest,
			fmt.Sprintf("description must be at most %d and category at most %d characters", maxDescriptionLength, maxCategoryLength),
			nil,
		)
	}

	if input.Type == entity.MovementTypeSale && input.BarberID == nil && uc.policy.RequireBarberForSale {
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeBarberRequired,
			"a barber must be selected for sales",
			domainerror.ErrBarberRequired,
		)
	}

	return nil
}
