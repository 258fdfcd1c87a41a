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

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implements the ApplicationRepository port on PostgreSQL.
type ApplicationRepo struct {
	q Querier
}

// NewApplicationRepository builds the adapter. Accepts pool or tx (Querier).
func NewApplicationRepository(q Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

const applicationColumns = `id, tender_id, lot_id, supplier_id, proposed_price, comment, status, created_at, updated_at`

// Create persists a new application. The (lot_id, supplier_id) unique
// constraint turns duplicates into ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, a *entity.Application) error {
	query := `
		INSERT INTO tender_applications (tender_id, lot_id, supplier_id, proposed_price, comment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.TenderID, a.LotID, a.SupplierID, a.ProposedPrice, a.Comment, a.Status, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID returns an application, (nil, nil) when absent.
func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM tender_applications WHERE id = $1`
	var a entity.Application
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.TenderID, &a.LotID, &a.SupplierID, &a.ProposedPrice, &a.Comment, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application by id: %w", err)
	}
	return &a, nil
}

// ListBySupplier returns the supplier's applications, newest first.
func (r *ApplicationRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM tender_applications
		WHERE supplier_id = $1 ORDER BY created_at DESC`
	return r.queryApplications(ctx, query, supplierID)
}

// ListByTender returns the tender's applications, newest first.
func (r *ApplicationRepo) ListByTender(ctx context.Context, tenderID int64) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM tender_applications
		WHERE tender_id = $1 ORDER BY created_at DESC`
	return r.queryApplications(ctx, query, tenderID)
}

func (r *ApplicationRepo) queryApplications(ctx context.Context, query string, args ...any) ([]*entity.Application, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Application
	for rows.Next() {
		var a entity.Application
		if err := rows.Scan(&a.ID, &a.TenderID, &a.LotID, &a.SupplierID, &a.ProposedPrice,
			&a.Comment, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update rewrites the mutable application fields.
func (r *ApplicationRepo) Update(ctx context.Context, a *entity.Application) error {
	query := `
		UPDATE tender_applications SET proposed_price = $2, comment = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, a.ID, a.ProposedPrice, a.Comment, a.Status, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return nil
}

// ListExportRows joins applications with supplier identity for the
// applications spreadsheet.
func (r *ApplicationRepo) ListExportRows(ctx context.Context, tenderID int64) ([]repository.ApplicationExportRow, error) {
	query := `
		SELECT a.id, u.full_name, u.email,
			COALESCE(sp.company_name, ''), COALESCE(sp.inn, ''),
			a.proposed_price, a.comment, a.status, a.created_at
		FROM tender_applications a
		JOIN users u ON u.id = a.supplier_id
		LEFT JOIN supplier_profiles sp ON sp.user_id = a.supplier_id
		WHERE a.tender_id = $1
		ORDER BY a.created_at DESC`
	rows, err := r.q.Query(ctx, query, tenderID)
	if err != nil {
		return nil, fmt.Errorf("list application export rows: %w", err)
	}
	defer rows.Close()

	var list []repository.ApplicationExportRow
	for rows.Next() {
		var row repository.ApplicationExportRow
		if err := rows.Scan(&row.ID, &row.SupplierName, &row.SupplierEmail, &row.CompanyName,
			&row.INN, &row.ProposedPrice, &row.Comment, &row.Status, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan application export row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListRecentBySupplier returns the supplier's latest applications with
// tender titles.
func (r *ApplicationRepo) ListRecentBySupplier(ctx context.Context, supplierID int64, limit int) ([]repository.RecentApplicationRow, error) {
	query := `
		SELECT a.id, a.tender_id, t.title, a.status, a.created_at
		FROM tender_applications a
		JOIN tenders t ON t.id = a.tender_id
		WHERE a.supplier_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, supplierID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent applications: %w", err)
	}
	defer rows.Close()

	var list []repository.RecentApplicationRow
	for rows.Next() {
		var row repository.RecentApplicationRow
		if err := rows.Scan(&row.ID, &row.TenderID, &row.TenderTitle, &row.Status, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent application: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountByTender returns the number of applications on a tender.
func (r *ApplicationRepo) CountByTender(ctx context.Context, tenderID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tender_applications WHERE tender_id = $1`, tenderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}
