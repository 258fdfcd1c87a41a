package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// Sort keys accepted by tender listings. Anything else is rejected before
// the query runs.
const (
	SortByPublishedDesc = "by_published_desc"
	SortByPublishedAsc  = "by_published_asc"
	SortByDeadlineAsc   = "by_deadline_asc"
	SortByDeadlineDesc  = "by_deadline_desc"
	SortByPriceAsc      = "by_price_asc"
	SortByPriceDesc     = "by_price_desc"
)

// ValidTenderSort reports whether s is in the sort allow-list.
func ValidTenderSort(s string) bool {
	switch s {
	case SortByPublishedDesc, SortByPublishedAsc, SortByDeadlineAsc,
		SortByDeadlineDesc, SortByPriceAsc, SortByPriceDesc:
		return true
	}
	return false
}

// TenderFilter composes the optional predicates of a tender listing.
// All set fields apply conjunctively; text matches are case-insensitive
// substrings.
type TenderFilter struct {
	Status            string
	Region            string
	OKPDCode          string
	OKVEDCode         string
	Search            string // tender title/description, lot title/description, product name
	MinPrice          *decimal.Decimal
	MaxPrice          *decimal.Decimal
	Currency          string
	StartDate         *time.Time // publication_date >=
	EndDate           *time.Time // publication_date <=
	ProcurementMethod string
	OrganizerINN      string
	CreatedBy         *int64 // scope to a creator (bulk export for contract managers)
	Sort              string
	Page              int
	Size              int
}

// TenderProductRow is a product flattened with its lot context, as served
// by the "products of a tender" listings.
type TenderProductRow struct {
	ID             int64
	LotID          int64
	LotNumber      int
	LotTitle       string
	PositionNumber int
	Name           string
	Quantity       string
	UnitOfMeasure  string
}

// TenderRepository is the persistence port for Tender and its owned
// collections. Graph writes (create, replace) run inside the caller's
// transaction via TxRunner.
type TenderRepository interface {
	// List returns the base rows of the current page plus the total count.
	List(ctx context.Context, f TenderFilter) ([]*entity.Tender, int, error)
	// ListAll returns every tender matching the filter without pagination
	// (bulk export).
	ListAll(ctx context.Context, f TenderFilter) ([]*entity.Tender, error)
	GetByID(ctx context.Context, id int64) (*entity.Tender, error)
	// LoadGraph fills Lots (with Products), Documents, Organizers and Stages.
	LoadGraph(ctx context.Context, t *entity.Tender) error
	// ListProducts flattens every product of the tender with lot context.
	ListProducts(ctx context.Context, tenderID int64) ([]TenderProductRow, error)
	// ProductExists reports whether a product row exists (proposal item checks).
	ProductExists(ctx context.Context, productID int64) (bool, error)
	GetLotByID(ctx context.Context, lotID int64) (*entity.Lot, error)
	// CreateWithGraph inserts the tender and all nested collections.
	CreateWithGraph(ctx context.Context, t *entity.Tender) error
	// UpdateWithGraph updates the base row and replace-and-recreates every
	// nested collection.
	UpdateWithGraph(ctx context.Context, t *entity.Tender) error
	// Publish moves a draft to published and stamps the publication date.
	Publish(ctx context.Context, id int64, publishedAt time.Time) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Tender, error)
}
