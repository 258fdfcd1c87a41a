package repository

import (
	"context"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// ProposalFilter narrows proposal listings.
type ProposalFilter struct {
	SupplierID *int64 // scope to one supplier
	TenderID   *int64
	Status     string
}

// ProposalRepository is the persistence port for Proposal and its items.
// Create relies on the (tender_id, supplier_id) uniqueness constraint and
// returns domain.ErrConflict on violation. Item writes belong to the same
// transaction as their proposal (TxRunner).
type ProposalRepository interface {
	// Create inserts the proposal and its items.
	Create(ctx context.Context, p *entity.Proposal) error
	GetByID(ctx context.Context, id int64) (*entity.Proposal, error)
	GetByTenderAndSupplier(ctx context.Context, tenderID, supplierID int64) (*entity.Proposal, error)
	// List returns matching proposals, newest first, without items.
	List(ctx context.Context, f ProposalFilter) ([]*entity.Proposal, error)
	// LoadItems fills p.Items.
	LoadItems(ctx context.Context, p *entity.Proposal) error
	// Update rewrites the base fields; when replaceItems is true the items
	// are replace-and-recreated from p.Items.
	Update(ctx context.Context, p *entity.Proposal, replaceItems bool) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountItems(ctx context.Context, proposalID int64) (int, error)
	CountByTender(ctx context.Context, tenderID int64) (int, error)
	ListRecentBySupplier(ctx context.Context, supplierID int64, limit int) ([]*entity.Proposal, error)
}
