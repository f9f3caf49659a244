package barber

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cash-register/backend/internal/domain/entity"
	domainerror "github.com/cash-register/backend/internal/domain/error"
)

type memoryBarberRepository struct {
	barbers   []*entity.Barber
	createErr error
}

func (r *memoryBarberRepository) ListActive(_ context.Context) ([]*entity.Barber, error) {
	var active []*entity.Barber
	for _, b := range r.barbers {
		if b.IsActive {
			active = append(active, b)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return active, nil
}

func (r *memoryBarberRepository) FindActiveByID(_ context.Context, id uuid.UUID) (*entity.Barber, error) {
	for _, b := range r.barbers {
		if b.ID == id && b.IsActive {
			return b, nil
		}
	}
	return nil, domainerror.ErrBarberNotFound
}

func (r *memoryBarberRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.barbers)), nil
}

func (r *memoryBarberRepository) CreateBatch(_ context.Context, barbers []*entity.Barber) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.barbers = append(r.barbers, barbers...)
	return nil
}

func TestSeedBarbersUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the owner and two barbers once", func(t *testing.T) {
		repo := &memoryBarberRepository{}
		uc := NewSeedBarbersUseCase(repo)

		created, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, created)

		owners := 0
		for _, b := range repo.barbers {
			if b.IsOwner {
				owners++
			}
			assert.True(t, b.IsActive)
		}
		assert.Equal(t, 1, owners)

		created, err = uc.Execute(ctx)
		require.NoError(t, err)
		assert.Zero(t, created)
		assert.Len(t, repo.barbers, 3)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		repo := &memoryBarberRepository{createErr: errors.New("disk full")}

		_, err := NewSeedBarbersUseCase(repo).Execute(ctx)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestListBarbersUseCase(t *testing.T) {
	inactive := entity.NewBarber("Zed", false)
	inactive.IsActive = false
	repo := &memoryBarberRepository{barbers: []*entity.Barber{
		entity.NewBarber("Carlos", false),
		inactive,
		entity.NewBarber("Ana", true),
	}}

	out, err := NewListBarbersUseCase(repo).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Barbers, 2)
	assert.Equal(t, "Ana", out.Barbers[0].Name)
	assert.Equal(t, "Carlos", out.Barbers[1].Name)
}
