package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cash-register/backend/internal/domain/entity"
)

// BarberRepository defines persistence operations for barbers.
type BarberRepository interface {
	// ListActive returns active barbers ordered by name.
	ListActive(ctx context.Context) ([]*entity.Barber, error)

	// FindActiveByID returns an active barber or ErrBarberNotFound.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.Barber, error)

	// Count returns the number of barbers, active or not.
	Count(ctx context.Context) (int64, error)

	// CreateBatch stores several barbers at once.
	CreateBatch(ctx context.Context, barbers []*entity.Barber) error
}
