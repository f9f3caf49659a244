// Package cashregister contains the cash register lifecycle, ledger and history use cases.
package cashregister

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cash-register/backend/internal/application/adapter"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

const (
	maxDescriptionLength = 255
	maxCategoryLength    = 100
	maxNotesLength       = 1000
)

// Policy holds the configurable business rules of the register.
type Policy struct {
	// RequireBarberForSale rejects SALE movements without a barber.
	RequireBarberForSale bool
	// HistoryDefaultLimit applies when a history query sets no limit.
	HistoryDefaultLimit int
	// HistoryMaxLimit caps the limit a history query may request.
	HistoryMaxLimit int
	// Location defines where calendar days start for history periods.
	Location *time.Location
}

// DefaultPolicy returns the rules used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		RequireBarberForSale: true,
		HistoryDefaultLimit:  10,
		HistoryMaxLimit:      100,
		Location:             time.Local,
	}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

func (p Policy) historyLimit(requested int) int {
	limit := requested
	if limit <= 0 {
		limit = p.HistoryDefaultLimit
	}
	if limit <= 0 {
		limit = 10
	}
	if p.HistoryMaxLimit > 0 && limit > p.HistoryMaxLimit {
		limit = p.HistoryMaxLimit
	}
	return limit
}

// checkCents rejects money values finer than one cent.
func checkCents(field string, value decimal.Decimal) error {
	if value.Equal(value.Truncate(2)) {
		return nil
	}
	return domainerror.NewCashRegisterError(
		domainerror.ErrCodeAmountPrecision,
		field+" must have at most two decimal places",
		domainerror.ErrAmountPrecision,
	)
}

func exceedsLength(value string, max int) bool {
	return utf8.RuneCountInString(value) > max
}

func registerLockKey(userID uuid.UUID) string {
	return "cash-register:" + userID.String()
}

// withRegisterLock runs fn while holding the user's register lock.
func withRegisterLock(ctx context.Context, locker adapter.RegisterLocker, userID uuid.UUID, fn func() error) error {
	unlock, err := locker.Lock(ctx, registerLockKey(userID))
	if err != nil {
		if errors.Is(err, domainerror.ErrRegisterBusy) {
			return domainerror.NewCashRegisterError(
				domainerror.ErrCodeRegisterBusy,
				"another cash register operation is in progress",
				domainerror.ErrRegisterBusy,
			)
		}
		return fmt.Errorf("failed to obtain register lock: %w", err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release register lock", "user_id", userID, "error", err)
		}
	}()

	return fn()
}

// translateRepositoryError converts repository sentinels into coded domain errors.
func translateRepositoryError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrCashRegisterAlreadyOpen):
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeCashAlreadyOpen,
			"there is already an open cash register",
			domainerror.ErrCashRegisterAlreadyOpen,
		)
	case errors.Is(err, domainerror.ErrCashRegisterNotFound):
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeCashNotFound,
			"cash register not found or already closed",
			domainerror.ErrCashRegisterNotFound,
		)
	case errors.Is(err, domainerror.ErrBarberNotFound):
		return domainerror.NewCashRegisterError(
			domainerror.ErrCodeBarberNotFound,
			"barber not found or inactive",
			domainerror.ErrBarberNotFound,
		)
	default:
		return err
	}
}
