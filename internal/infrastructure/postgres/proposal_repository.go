package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

var _ repository.ProposalRepository = (*ProposalRepo)(nil)

// ProposalRepo implements the ProposalRepository port on PostgreSQL. Item
// writes belong in the same transaction as their proposal (TxRunner).
type ProposalRepo struct {
	q Querier
}

// NewProposalRepository builds the adapter. Accepts pool or tx (Querier).
func NewProposalRepository(q Querier) *ProposalRepo {
	return &ProposalRepo{q: q}
}

const proposalColumns = `id, tender_id, supplier_id, prepayment_percent, currency, vat_percent,
	general_comment, status, created_at, updated_at`

// Create inserts the proposal and its items. The (tender_id, supplier_id)
// unique constraint turns duplicates into ErrConflict.
func (r *ProposalRepo) Create(ctx context.Context, p *entity.Proposal) error {
	query := `
		INSERT INTO supplier_proposals (tender_id, supplier_id, prepayment_percent, currency,
			vat_percent, general_comment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.TenderID, p.SupplierID, p.PrepaymentPercent, p.Currency,
		p.VATPercent, p.GeneralComment, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert proposal: %w", err)
	}
	return r.insertItems(ctx, p)
}

func (r *ProposalRepo) insertItems(ctx context.Context, p *entity.Proposal) error {
	for i := range p.Items {
		it := &p.Items[i]
		it.ProposalID = p.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO proposal_items (proposal_id, product_id, is_available, is_analog,
				price_per_unit, delivery_days, comment)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			it.ProposalID, it.ProductID, it.IsAvailable, it.IsAnalog,
			it.PricePerUnit, it.DeliveryDays, it.Comment,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("insert proposal item: %w", err)
		}
	}
	return nil
}

// GetByID returns a proposal without items, (nil, nil) when absent.
func (r *ProposalRepo) GetByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM supplier_proposals WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByTenderAndSupplier returns the supplier's proposal on a tender,
// (nil, nil) when absent.
func (r *ProposalRepo) GetByTenderAndSupplier(ctx context.Context, tenderID, supplierID int64) (*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM supplier_proposals
		WHERE tender_id = $1 AND supplier_id = $2`
	return r.scanOne(ctx, query, tenderID, supplierID)
}

func (r *ProposalRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Proposal, error) {
	var p entity.Proposal
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.TenderID, &p.SupplierID, &p.PrepaymentPercent, &p.Currency, &p.VATPercent,
		&p.GeneralComment, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return &p, nil
}

// List returns matching proposals, newest first, without items.
func (r *ProposalRepo) List(ctx context.Context, f repository.ProposalFilter) ([]*entity.Proposal, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if f.SupplierID != nil {
		args = append(args, *f.SupplierID)
		where += fmt.Sprintf(" AND supplier_id = $%d", len(args))
	}
	if f.TenderID != nil {
		args = append(args, *f.TenderID)
		where += fmt.Sprintf(" AND tender_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query := `SELECT ` + proposalColumns + ` FROM supplier_proposals` + where + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(&p.ID, &p.TenderID, &p.SupplierID, &p.PrepaymentPercent, &p.Currency,
			&p.VATPercent, &p.GeneralComment, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// LoadItems fills p.Items ordered by product.
func (r *ProposalRepo) LoadItems(ctx context.Context, p *entity.Proposal) error {
	query := `
		SELECT id, proposal_id, product_id, is_available, is_analog, price_per_unit,
			delivery_days, comment, created_at, updated_at
		FROM proposal_items WHERE proposal_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("list proposal items: %w", err)
	}
	defer rows.Close()
	p.Items = p.Items[:0]
	for rows.Next() {
		var it entity.ProposalItem
		if err := rows.Scan(&it.ID, &it.ProposalID, &it.ProductID, &it.IsAvailable, &it.IsAnalog,
			&it.PricePerUnit, &it.DeliveryDays, &it.Comment, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return fmt.Errorf("scan proposal item: %w", err)
		}
		p.Items = append(p.Items, it)
	}
	return rows.Err()
}

// Update rewrites the base fields; when replaceItems is true the stored
// items are replaced with p.Items.
func (r *ProposalRepo) Update(ctx context.Context, p *entity.Proposal, replaceItems bool) error {
	query := `
		UPDATE supplier_proposals SET prepayment_percent = $2, currency = $3, vat_percent = $4,
			general_comment = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.PrepaymentPercent, p.Currency, p.VATPercent, p.GeneralComment, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	if !replaceItems {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM proposal_items WHERE proposal_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear proposal items: %w", err)
	}
	return r.insertItems(ctx, p)
}

// UpdateStatus moves the proposal to status.
func (r *ProposalRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE supplier_proposals SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update proposal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountItems returns the number of items on a proposal.
func (r *ProposalRepo) CountItems(ctx context.Context, proposalID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM proposal_items WHERE proposal_id = $1`, proposalID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count proposal items: %w", err)
	}
	return n, nil
}

// CountByTender returns the number of proposals on a tender.
func (r *ProposalRepo) CountByTender(ctx context.Context, tenderID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM supplier_proposals WHERE tender_id = $1`, tenderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count proposals: %w", err)
	}
	return n, nil
}

// ListRecentBySupplier returns the supplier's latest proposals.
func (r *ProposalRepo) ListRecentBySupplier(ctx context.Context, supplierID int64, limit int) ([]*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM supplier_proposals
		WHERE supplier_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, supplierID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent proposals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		if err := rows.Scan(&p.ID, &p.TenderID, &p.SupplierID, &p.PrepaymentPercent, &p.Currency,
			&p.VATPercent, &p.GeneralComment, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
