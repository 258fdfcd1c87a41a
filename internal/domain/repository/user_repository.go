package repository

import (
	"context"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   string // empty = any
	Search string // case-insensitive substring over full name and email
	Page   int
	Size   int
}

// UserRepository is the persistence port for User.
// Lookups return (nil, nil) when the row does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	Delete(ctx context.Context, id int64) error
}

// SupplierProfileRepository is the persistence port for SupplierProfile.
type SupplierProfileRepository interface {
	Create(ctx context.Context, p *entity.SupplierProfile) error
	GetByUserID(ctx context.Context, userID int64) (*entity.SupplierProfile, error)
	Update(ctx context.Context, p *entity.SupplierProfile) error
}
