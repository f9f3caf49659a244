package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/domain/entity"
	"github.com/cash-register/backend/internal/domain/valueobject"
)

// CloseRegisterParams carries what the repository needs to close a register.
type CloseRegisterParams struct {
	UserID         uuid.UUID
	CashRegisterID uuid.UUID
	ActualBalance  decimal.Decimal
	Notes          string
	ClosedAt       time.Time
}

// ClosingFilter narrows a closings history query.
type ClosingFilter struct {
	UserID uuid.UUID
	Range  valueobject.DateRange
	Limit  int
}

// CashRegisterRepository persists registers, their movements and closings.
// Every mutating method runs as a single database transaction.
type CashRegisterRepository interface {
	// Open stores a new register together with its opening movement.
	// Returns ErrCashRegisterAlreadyOpen if the user already has an open register.
	Open(ctx context.Context, register *entity.CashRegister, opening *entity.CashMovement) error

	// FindOpenByUserID returns the user's open register or ErrNoOpenCashRegister.
	FindOpenByUserID(ctx context.Context, userID uuid.UUID) (*entity.CashRegister, error)

	// FindByIDForUser returns a register of any status owned by the user,
	// or ErrCashRegisterNotFound.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.CashRegister, error)

	// RecordMovement appends the movement to an open register owned by userID and
	// applies its delta to the balance. Returns the resulting balance.
	RecordMovement(ctx context.Context, userID uuid.UUID, movement *entity.CashMovement) (decimal.Decimal, error)

	// ListMovements returns a register's movements newest first, with barbers loaded.
	ListMovements(ctx context.Context, cashRegisterID uuid.UUID) ([]*entity.CashMovement, error)

	// Close summarizes the movements of an open register, stores the closing
	// and marks the register CLOSED.
	Close(ctx context.Context, params CloseRegisterParams) (*entity.CashClosing, error)

	// ListClosings returns the user's closings newest first.
	ListClosings(ctx context.Context, filter ClosingFilter) ([]*entity.CashClosing, error)
}
