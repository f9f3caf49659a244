package cashregister

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cash-register/backend/internal/application/adapter"
	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
	"github.com/cash-register/backend/internal/domain/valueobject"
)

// ListClosingsInput represents the filters of a closings history query.
type ListClosingsInput struct {
	UserID    uuid.UUID
	Period    string
	StartDate string
	EndDate   string
	Limit     int
}

// ListClosingsOutput represents the matching closings, newest first.
type ListClosingsOutput struct {
	Closings []*entity.CashClosing
	Range    valueobject.DateRange
}

// ListClosingsUseCase queries the closings history.
type ListClosingsUseCase struct {
	registerRepo adapter.CashRegisterRepository
	clock        adapter.Clock
	policy       Policy
}

// NewListClosingsUseCase creates a new ListClosingsUseCase instance.
func NewListClosingsUseCase(registerRepo adapter.CashRegisterRepository, clock adapter.Clock, policy Policy) *ListClosingsUseCase {
	return &ListClosingsUseCase{
		registerRepo: registerRepo,
		clock:        clock,
		policy:       policy,
	}
}

// Execute returns the closings of the user's registers inside the requested window.
func (uc *ListClosingsUseCase) Execute(ctx context.Context, input ListClosingsInput) (*ListClosingsOutput, error) {
	period, err := valueobject.ParseHistoryPeriod(input.Period)
	if err != nil {
		return nil, domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidHistoryPeriod,
			"period must be day, month or year",
			domainerror.ErrInvalidHistoryPeriod,
		)
	}

	now := uc.clock.Now().In(uc.policy.location())
	dateRange, err := valueobject.ResolveHistoryRange(period, input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, domainerror.NewCashRegisterError(
			domainerror.ErrCodeInvalidDateRange,
			"startDate and endDate must be valid dates with startDate before endDate",
			err,
		)
	}

	closings, err := uc.registerRepo.ListClosings(ctx, adapter.ClosingFilter{
		UserID: input.UserID,
		Range:  dateRange,
		Limit:  uc.policy.historyLimit(input.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}

	return &ListClosingsOutput{
		Closings: closings,
		Range:    dateRange,
	}, nil
}
