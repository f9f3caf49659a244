package entity

import (
	"time"

	"github.com/google/uuid"
)

// Barber is the staff member a sale can be attributed to.
type Barber struct {
	ID        uuid.UUID
	Name      string
	IsOwner   bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBarber creates an active barber.
func NewBarber(name string, isOwner bool) *Barber {
	now := time.Now().UTC()
	return &Barber{
		ID:        uuid.New(),
		Name:      name,
		IsOwner:   isOwner,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
