package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only aggregate queries over tenders and proposals.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetTendersSummary returns the global tender/proposal snapshot.
// Average price is taken over priced, available proposal items.
func (r *AnalyticsRepo) GetTendersSummary(ctx context.Context, recentSince time.Time) (*repository.TendersSummary, error) {
	s := &repository.TendersSummary{StatusCounts: map[string]int{}}

	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM tenders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTendersSummary: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		s.StatusCounts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const totals = `
	SELECT
	    (SELECT COUNT(*) FROM supplier_proposals)                                 AS total_proposals,
	    (SELECT COUNT(DISTINCT supplier_id) FROM supplier_proposals)              AS unique_suppliers,
	    (SELECT COALESCE(ROUND(AVG(price_per_unit), 2), 0)
	       FROM proposal_items
	      WHERE is_available AND price_per_unit IS NOT NULL)                      AS avg_proposal_price,
	    (SELECT COUNT(*) FROM tenders WHERE created_at >= $1)                     AS recent_tenders`
	err = r.q.QueryRow(ctx, totals, recentSince).Scan(
		&s.TotalProposals, &s.UniqueSuppliers, &s.AvgProposalPrice, &s.RecentTenders,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTendersSummary totals: %w", err)
	}
	return s, nil
}

// GetSupplierPerformance returns one leaderboard page plus the total number
// of suppliers with proposals. sortBy is pre-validated by the use case.
func (r *AnalyticsRepo) GetSupplierPerformance(ctx context.Context, sortBy, sortOrder string, page, size int) ([]repository.SupplierPerformanceRow, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(DISTINCT supplier_id) FROM supplier_proposals`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("analytics.GetSupplierPerformance count: %w", err)
	}

	order := "proposals_count"
	switch sortBy {
	case "avg_price":
		order = "avg_price"
	case "success_rate":
		// accepted/total ratio; the use case rounds the percentage
		order = `(COUNT(*) FILTER (WHERE sp.status = 'accepted'))::NUMERIC / COUNT(*)`
	}
	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}

	query := fmt.Sprintf(`
	SELECT
	    u.id                                                                      AS supplier_id,
	    u.full_name                                                               AS supplier_name,
	    u.email                                                                   AS supplier_email,
	    COUNT(*)                                                                  AS proposals_count,
	    COUNT(*) FILTER (WHERE sp.status = 'accepted')                            AS accepted_proposals,
	    COALESCE(ROUND((SELECT AVG(pi.price_per_unit)
	        FROM proposal_items pi
	        JOIN supplier_proposals sp2 ON sp2.id = pi.proposal_id
	        WHERE sp2.supplier_id = u.id
	          AND pi.is_available AND pi.price_per_unit IS NOT NULL), 2), 0)       AS avg_price,
	    MIN(sp.created_at)                                                        AS first_proposal,
	    MAX(sp.created_at)                                                        AS last_proposal
	FROM supplier_proposals sp
	JOIN users u ON u.id = sp.supplier_id
	GROUP BY u.id, u.full_name, u.email
	ORDER BY %s %s
	LIMIT $1 OFFSET $2`, order, dir)

	rows, err := r.q.Query(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("analytics.GetSupplierPerformance: %w", err)
	}
	defer rows.Close()

	var results []repository.SupplierPerformanceRow
	for rows.Next() {
		var row repository.SupplierPerformanceRow
		if err := rows.Scan(&row.SupplierID, &row.SupplierName, &row.SupplierEmail,
			&row.ProposalsCount, &row.AcceptedProposals, &row.AvgPrice,
			&row.FirstProposal, &row.LastProposal); err != nil {
			return nil, 0, fmt.Errorf("scan supplier performance: %w", err)
		}
		results = append(results, row)
	}
	return results, total, rows.Err()
}

// GetProductPriceAnalysis aggregates prices over priced, available proposal
// items, keeping only products quoted at least twice.
func (r *AnalyticsRepo) GetProductPriceAnalysis(ctx context.Context, productName string, limit int) ([]repository.ProductPriceRow, error) {
	args := []any{limit}
	nameFilter := ""
	if productName != "" {
		args = append(args, "%"+productName+"%")
		nameFilter = fmt.Sprintf(" AND p.name ILIKE $%d", len(args))
	}

	query := fmt.Sprintf(`
	SELECT
	    p.id                                                                      AS product_id,
	    p.name                                                                    AS product_name,
	    p.position_number                                                         AS position_number,
	    COUNT(*)                                                                  AS proposals_count,
	    ROUND(AVG(pi.price_per_unit), 2)                                          AS avg_price,
	    MIN(pi.price_per_unit)                                                    AS min_price,
	    MAX(pi.price_per_unit)                                                    AS max_price,
	    COALESCE(ROUND(STDDEV(pi.price_per_unit), 2), 0)                          AS price_stddev,
	    MAX(pi.price_per_unit) - MIN(pi.price_per_unit)                           AS price_range
	FROM proposal_items pi
	JOIN lot_products p ON p.id = pi.product_id
	WHERE pi.is_available AND pi.price_per_unit IS NOT NULL%s
	GROUP BY p.id, p.name, p.position_number
	HAVING COUNT(*) >= 2
	ORDER BY proposals_count DESC, p.name
	LIMIT $1`, nameFilter)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetProductPriceAnalysis: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductPriceRow
	for rows.Next() {
		var row repository.ProductPriceRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.PositionNumber,
			&row.ProposalsCount, &row.AvgPrice, &row.MinPrice, &row.MaxPrice,
			&row.PriceStddev, &row.PriceRange); err != nil {
			return nil, fmt.Errorf("scan product price row: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSupplierStats aggregates one supplier's proposal history.
func (r *AnalyticsRepo) GetSupplierStats(ctx context.Context, supplierID int64) (*repository.SupplierStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM supplier_proposals WHERE supplier_id = $1)                    AS total_proposals,
	    (SELECT COUNT(*) FROM supplier_proposals
	      WHERE supplier_id = $1 AND status = 'accepted')                                   AS accepted_proposals,
	    COALESCE(ROUND(AVG(pi.price_per_unit)
	        FILTER (WHERE pi.is_available AND pi.price_per_unit IS NOT NULL), 2), 0)        AS avg_price,
	    COALESCE(MIN(pi.price_per_unit)
	        FILTER (WHERE pi.is_available AND pi.price_per_unit IS NOT NULL), 0)            AS min_price,
	    COALESCE(MAX(pi.price_per_unit)
	        FILTER (WHERE pi.is_available AND pi.price_per_unit IS NOT NULL), 0)            AS max_price,
	    COUNT(*) FILTER (WHERE pi.is_available AND pi.price_per_unit IS NOT NULL)           AS priced_items,
	    COALESCE(ROUND(AVG(pi.delivery_days)
	        FILTER (WHERE pi.delivery_days IS NOT NULL), 2), 0)                             AS avg_delivery_days,
	    COALESCE(MIN(pi.delivery_days) FILTER (WHERE pi.delivery_days IS NOT NULL), 0)      AS min_delivery_days,
	    COALESCE(MAX(pi.delivery_days) FILTER (WHERE pi.delivery_days IS NOT NULL), 0)      AS max_delivery_days,
	    COUNT(*) FILTER (WHERE pi.is_analog)                                                AS analog_items,
	    COUNT(pi.id)                                                                        AS total_items
	FROM proposal_items pi
	JOIN supplier_proposals sp ON sp.id = pi.proposal_id
	WHERE sp.supplier_id = $1`

	var s repository.SupplierStats
	err := r.q.QueryRow(ctx, query, supplierID).Scan(
		&s.TotalProposals, &s.AcceptedProposals, &s.AvgPrice, &s.MinPrice, &s.MaxPrice,
		&s.PricedItems, &s.AvgDeliveryDays, &s.MinDeliveryDays, &s.MaxDeliveryDays,
		&s.AnalogItems, &s.TotalItems,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSupplierStats: %w", err)
	}
	return &s, nil
}

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo count queries behind the role-specific dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository builds the dashboard adapter.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return n, nil
}

func (r *DashboardRepo) CountTenders(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tenders`)
}

func (r *DashboardRepo) CountTendersByStatus(ctx context.Context, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tenders WHERE status = $1`, status)
}

func (r *DashboardRepo) CountTendersByCreator(ctx context.Context, userID int64, activeOnly bool) (int, error) {
	if activeOnly {
		return r.count(ctx, `SELECT COUNT(*) FROM tenders WHERE created_by = $1 AND status IN ($2, $3)`,
			userID, entity.TenderStatusPublished, entity.TenderStatusInProgress)
	}
	return r.count(ctx, `SELECT COUNT(*) FROM tenders WHERE created_by = $1`, userID)
}

func (r *DashboardRepo) CountApplications(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tender_applications`)
}

func (r *DashboardRepo) CountApplicationsBySupplier(ctx context.Context, supplierID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tender_applications WHERE supplier_id = $1`, supplierID)
}

// CountActiveApplicationsBySupplier counts applications whose tender is
// still open for participation.
func (r *DashboardRepo) CountActiveApplicationsBySupplier(ctx context.Context, supplierID int64) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM tender_applications a
		JOIN tenders t ON t.id = a.tender_id
		WHERE a.supplier_id = $1 AND t.status IN ($2, $3)`,
		supplierID, entity.TenderStatusPublished, entity.TenderStatusInProgress)
}

func (r *DashboardRepo) CountApplicationsBySupplierAndStatus(ctx context.Context, supplierID int64, status string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tender_applications WHERE supplier_id = $1 AND status = $2`,
		supplierID, status)
}

func (r *DashboardRepo) CountUsersByRole(ctx context.Context, role string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role)
}
