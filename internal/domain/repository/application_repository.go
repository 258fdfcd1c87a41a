package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// ApplicationExportRow joins an application with its supplier identity for
// the applications spreadsheet.
type ApplicationExportRow struct {
	ID            int64
	SupplierName  string
	SupplierEmail string
	CompanyName   string // empty when the supplier has no profile
	INN           string
	ProposedPrice decimal.NullDecimal
	Comment       string
	Status        string
	CreatedAt     time.Time
}

// RecentApplicationRow is an application with its tender title, for the
// supplier dashboard feed.
type RecentApplicationRow struct {
	ID          int64
	TenderID    int64
	TenderTitle string
	Status      string
	CreatedAt   time.Time
}

// ApplicationRepository is the persistence port for Application.
// Create relies on the (lot_id, supplier_id) uniqueness constraint and
// returns domain.ErrConflict on violation.
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.Application) error
	GetByID(ctx context.Context, id int64) (*entity.Application, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Application, error)
	ListByTender(ctx context.Context, tenderID int64) ([]*entity.Application, error)
	Update(ctx context.Context, a *entity.Application) error
	ListExportRows(ctx context.Context, tenderID int64) ([]ApplicationExportRow, error)
	ListRecentBySupplier(ctx context.Context, supplierID int64, limit int) ([]RecentApplicationRow, error)
	CountByTender(ctx context.Context, tenderID int64) (int, error)
}
