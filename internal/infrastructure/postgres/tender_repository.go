package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

var _ repository.TenderRepository = (*TenderRepo)(nil)

// TenderRepo implements the TenderRepository port on PostgreSQL. Graph
// writes assume a tx-bound Querier (see TxRunner).
type TenderRepo struct {
	q Querier
}

// NewTenderRepository builds the adapter. Accepts pool or tx (Querier).
func NewTenderRepository(q Querier) *TenderRepo {
	return &TenderRepo{q: q}
}

// buildFilter renders the conjunctive WHERE clause for f, appending
// placeholders to args.
func buildFilter(f repository.TenderFilter, args *[]any) string {
	where := ` WHERE 1=1`
	add := func(clause string, value any) {
		*args = append(*args, value)
		where += fmt.Sprintf(clause, len(*args))
	}
	if f.Status != "" {
		add(" AND t.status = $%d", f.Status)
	}
	if f.Region != "" {
		add(" AND t.region ILIKE $%d", "%"+f.Region+"%")
	}
	if f.OKPDCode != "" {
		add(" AND t.okpd_code ILIKE $%d", f.OKPDCode+"%")
	}
	if f.OKVEDCode != "" {
		add(" AND t.okved_code ILIKE $%d", f.OKVEDCode+"%")
	}
	if f.Search != "" {
		*args = append(*args, "%"+f.Search+"%")
		n := len(*args)
		where += fmt.Sprintf(` AND (t.title ILIKE $%d OR t.description ILIKE $%d
			OR EXISTS (SELECT 1 FROM tender_lots l WHERE l.tender_id = t.id
				AND (l.title ILIKE $%d OR l.description ILIKE $%d))
			OR EXISTS (SELECT 1 FROM lot_products p
				JOIN tender_lots pl ON pl.id = p.lot_id
				WHERE pl.tender_id = t.id AND p.name ILIKE $%d))`, n, n, n, n, n)
	}
	if f.MinPrice != nil {
		add(" AND t.initial_price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add(" AND t.initial_price <= $%d", *f.MaxPrice)
	}
	if f.Currency != "" {
		add(" AND t.currency = $%d", f.Currency)
	}
	if f.StartDate != nil {
		add(" AND t.publication_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add(" AND t.publication_date <= $%d", *f.EndDate)
	}
	if f.ProcurementMethod != "" {
		add(" AND t.procurement_method ILIKE $%d", "%"+f.ProcurementMethod+"%")
	}
	if f.OrganizerINN != "" {
		add(` AND EXISTS (SELECT 1 FROM tender_organizers o
			WHERE o.tender_id = t.id AND o.inn = $%d)`, f.OrganizerINN)
	}
	if f.CreatedBy != nil {
		add(" AND t.created_by = $%d", *f.CreatedBy)
	}
	return where
}

func orderBy(sort string) string {
	switch sort {
	case repository.SortByPublishedDesc:
		return " ORDER BY t.publication_date DESC NULLS LAST"
	case repository.SortByPublishedAsc:
		return " ORDER BY t.publication_date ASC NULLS LAST"
	case repository.SortByDeadlineAsc:
		return " ORDER BY t.deadline ASC NULLS LAST"
	case repository.SortByDeadlineDesc:
		return " ORDER BY t.deadline DESC NULLS LAST"
	case repository.SortByPriceAsc:
		return " ORDER BY t.initial_price ASC NULLS LAST"
	case repository.SortByPriceDesc:
		return " ORDER BY t.initial_price DESC NULLS LAST"
	}
	return " ORDER BY t.created_at DESC"
}

// List returns the base rows of the current page plus the total count.
func (r *TenderRepo) List(ctx context.Context, f repository.TenderFilter) ([]*entity.Tender, int, error) {
	args := []any{}
	where := buildFilter(f, &args)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tenders t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenders: %w", err)
	}

	args = append(args, f.Size, (f.Page-1)*f.Size)
	query := selectTenders() + where + orderBy(f.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	list, err := r.queryTenders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll returns every tender matching the filter without pagination.
func (r *TenderRepo) ListAll(ctx context.Context, f repository.TenderFilter) ([]*entity.Tender, error) {
	args := []any{}
	where := buildFilter(f, &args)
	return r.queryTenders(ctx, selectTenders()+where+orderBy(f.Sort), args...)
}

func selectTenders() string {
	return `SELECT t.id, t.title, t.description, COALESCE(t.notice_number, ''), t.initial_price, t.currency,
		t.status, t.publication_date, t.deadline, t.okpd_code, t.okved_code, t.region,
		t.procurement_method, t.created_by, t.created_at, t.updated_at
	FROM tenders t`
}

func (r *TenderRepo) queryTenders(ctx context.Context, query string, args ...any) ([]*entity.Tender, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tender
	for rows.Next() {
		var t entity.Tender
		if err := scanTender(rows, &t); err != nil {
			return nil, err
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func scanTender(row pgx.Row, t *entity.Tender) error {
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.NoticeNumber, &t.InitialPrice, &t.Currency,
		&t.Status, &t.PublicationDate, &t.Deadline, &t.OKPDCode, &t.OKVEDCode, &t.Region,
		&t.ProcurementMethod, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("scan tender: %w", err)
	}
	return nil
}

// GetByID returns the base tender row, (nil, nil) when absent.
func (r *TenderRepo) GetByID(ctx context.Context, id int64) (*entity.Tender, error) {
	var t entity.Tender
	err := r.q.QueryRow(ctx, selectTenders()+` WHERE t.id = $1`, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.NoticeNumber, &t.InitialPrice, &t.Currency,
		&t.Status, &t.PublicationDate, &t.Deadline, &t.OKPDCode, &t.OKVEDCode, &t.Region,
		&t.ProcurementMethod, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tender by id: %w", err)
	}
	return &t, nil
}

// LoadGraph fills Lots (with Products), Documents, Organizers and Stages.
func (r *TenderRepo) LoadGraph(ctx context.Context, t *entity.Tender) error {
	if err := r.loadOrganizers(ctx, t); err != nil {
		return err
	}
	if err := r.loadLots(ctx, t); err != nil {
		return err
	}
	if err := r.loadDocuments(ctx, t); err != nil {
		return err
	}
	return r.loadStages(ctx, t)
}

func (r *TenderRepo) loadOrganizers(ctx context.Context, t *entity.Tender) error {
	query := `
		SELECT id, tender_id, organization_name, legal_address, postal_address, email, phone,
			contact_person, inn, kpp, ogrn, created_at
		FROM tender_organizers WHERE tender_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("list organizers: %w", err)
	}
	defer rows.Close()
	t.Organizers = t.Organizers[:0]
	for rows.Next() {
		var o entity.Organizer
		if err := rows.Scan(&o.ID, &o.TenderID, &o.OrganizationName, &o.LegalAddress, &o.PostalAddress,
			&o.Email, &o.Phone, &o.ContactPerson, &o.INN, &o.KPP, &o.OGRN, &o.CreatedAt); err != nil {
			return fmt.Errorf("scan organizer: %w", err)
		}
		t.Organizers = append(t.Organizers, o)
	}
	return rows.Err()
}

func (r *TenderRepo) loadLots(ctx context.Context, t *entity.Tender) error {
	query := `
		SELECT id, tender_id, lot_number, title, description, initial_price, currency,
			security_amount, delivery_place, payment_terms, quantity, unit_of_measure,
			okpd_code, okved_code, created_at
		FROM tender_lots WHERE tender_id = $1 ORDER BY lot_number`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	t.Lots = t.Lots[:0]
	byID := map[int64]*entity.Lot{}
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.TenderID, &l.LotNumber, &l.Title, &l.Description,
			&l.InitialPrice, &l.Currency, &l.SecurityAmount, &l.DeliveryPlace, &l.PaymentTerms,
			&l.Quantity, &l.UnitOfMeasure, &l.OKPDCode, &l.OKVEDCode, &l.CreatedAt); err != nil {
			return fmt.Errorf("scan lot: %w", err)
		}
		t.Lots = append(t.Lots, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range t.Lots {
		byID[t.Lots[i].ID] = &t.Lots[i]
	}

	prodQuery := `
		SELECT p.id, p.lot_id, p.position_number, p.name, p.quantity, p.unit_of_measure, p.created_at
		FROM lot_products p
		JOIN tender_lots l ON l.id = p.lot_id
		WHERE l.tender_id = $1 ORDER BY p.lot_id, p.position_number`
	prows, err := r.q.Query(ctx, prodQuery, t.ID)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p entity.Product
		if err := prows.Scan(&p.ID, &p.LotID, &p.PositionNumber, &p.Name, &p.Quantity,
			&p.UnitOfMeasure, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan product: %w", err)
		}
		if lot, ok := byID[p.LotID]; ok {
			lot.Products = append(lot.Products, p)
		}
	}
	return prows.Err()
}

func (r *TenderRepo) loadDocuments(ctx context.Context, t *entity.Tender) error {
	query := `
		SELECT id, tender_id, title, file_path, file_size, file_type, uploaded_at
		FROM tender_documents WHERE tender_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	t.Documents = t.Documents[:0]
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.TenderID, &d.Title, &d.FilePath, &d.FileSize, &d.FileType, &d.UploadedAt); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		t.Documents = append(t.Documents, d)
	}
	return rows.Err()
}

func (r *TenderRepo) loadStages(ctx context.Context, t *entity.Tender) error {
	query := `
		SELECT id, tender_id, stage_name, stage_date, description, created_at
		FROM procedure_stages WHERE tender_id = $1 ORDER BY stage_date NULLS LAST, id`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()
	t.Stages = t.Stages[:0]
	for rows.Next() {
		var s entity.ProcedureStage
		if err := rows.Scan(&s.ID, &s.TenderID, &s.StageName, &s.StageDate, &s.Description, &s.CreatedAt); err != nil {
			return fmt.Errorf("scan stage: %w", err)
		}
		t.Stages = append(t.Stages, s)
	}
	return rows.Err()
}

// ListProducts flattens every product of the tender with its lot context.
func (r *TenderRepo) ListProducts(ctx context.Context, tenderID int64) ([]repository.TenderProductRow, error) {
	query := `
		SELECT p.id, p.lot_id, l.lot_number, l.title, p.position_number, p.name, p.quantity, p.unit_of_measure
		FROM lot_products p
		JOIN tender_lots l ON l.id = p.lot_id
		WHERE l.tender_id = $1
		ORDER BY l.lot_number, p.position_number`
	rows, err := r.q.Query(ctx, query, tenderID)
	if err != nil {
		return nil, fmt.Errorf("list tender products: %w", err)
	}
	defer rows.Close()

	var list []repository.TenderProductRow
	for rows.Next() {
		var p repository.TenderProductRow
		if err := rows.Scan(&p.ID, &p.LotID, &p.LotNumber, &p.LotTitle, &p.PositionNumber,
			&p.Name, &p.Quantity, &p.UnitOfMeasure); err != nil {
			return nil, fmt.Errorf("scan tender product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ProductExists reports whether a product row exists.
func (r *TenderRepo) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM lot_products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return exists, nil
}

// GetLotByID returns a lot without products, (nil, nil) when absent.
func (r *TenderRepo) GetLotByID(ctx context.Context, lotID int64) (*entity.Lot, error) {
	query := `
		SELECT id, tender_id, lot_number, title, description, initial_price, currency,
			security_amount, delivery_place, payment_terms, quantity, unit_of_measure,
			okpd_code, okved_code, created_at
		FROM tender_lots WHERE id = $1`
	var l entity.Lot
	err := r.q.QueryRow(ctx, query, lotID).Scan(
		&l.ID, &l.TenderID, &l.LotNumber, &l.Title, &l.Description,
		&l.InitialPrice, &l.Currency, &l.SecurityAmount, &l.DeliveryPlace, &l.PaymentTerms,
		&l.Quantity, &l.UnitOfMeasure, &l.OKPDCode, &l.OKVEDCode, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot by id: %w", err)
	}
	return &l, nil
}

// CreateWithGraph inserts the tender and every nested collection, filling
// the generated IDs.
func (r *TenderRepo) CreateWithGraph(ctx context.Context, t *entity.Tender) error {
	query := `
		INSERT INTO tenders (title, description, notice_number, initial_price, currency, status,
			publication_date, deadline, okpd_code, okved_code, region, procurement_method,
			created_by, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.Title, t.Description, t.NoticeNumber, t.InitialPrice, t.Currency, t.Status,
		t.PublicationDate, t.Deadline, t.OKPDCode, t.OKVEDCode, t.Region, t.ProcurementMethod,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert tender: %w", err)
	}
	return r.insertGraph(ctx, t)
}

// UpdateWithGraph updates the base row and replace-and-recreates every
// nested collection. Lot deletion cascades to products.
func (r *TenderRepo) UpdateWithGraph(ctx context.Context, t *entity.Tender) error {
	query := `
		UPDATE tenders SET title = $2, description = $3, notice_number = NULLIF($4, ''), initial_price = $5,
			currency = $6, status = $7, publication_date = $8, deadline = $9, okpd_code = $10,
			okved_code = $11, region = $12, procurement_method = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Title, t.Description, t.NoticeNumber, t.InitialPrice,
		t.Currency, t.Status, t.PublicationDate, t.Deadline, t.OKPDCode,
		t.OKVEDCode, t.Region, t.ProcurementMethod, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update tender: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for _, del := range []string{
		`DELETE FROM tender_organizers WHERE tender_id = $1`,
		`DELETE FROM tender_lots WHERE tender_id = $1`,
		`DELETE FROM tender_documents WHERE tender_id = $1`,
		`DELETE FROM procedure_stages WHERE tender_id = $1`,
	} {
		if _, err := r.q.Exec(ctx, del, t.ID); err != nil {
			return fmt.Errorf("clear tender graph: %w", err)
		}
	}
	return r.insertGraph(ctx, t)
}

func (r *TenderRepo) insertGraph(ctx context.Context, t *entity.Tender) error {
	for i := range t.Organizers {
		o := &t.Organizers[i]
		o.TenderID = t.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO tender_organizers (tender_id, organization_name, legal_address, postal_address,
				email, phone, contact_person, inn, kpp, ogrn)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			o.TenderID, o.OrganizationName, o.LegalAddress, o.PostalAddress,
			o.Email, o.Phone, o.ContactPerson, o.INN, o.KPP, o.OGRN,
		).Scan(&o.ID)
		if err != nil {
			return fmt.Errorf("insert organizer: %w", err)
		}
	}
	for i := range t.Lots {
		l := &t.Lots[i]
		l.TenderID = t.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO tender_lots (tender_id, lot_number, title, description, initial_price,
				currency, security_amount, delivery_place, payment_terms, quantity,
				unit_of_measure, okpd_code, okved_code)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id`,
			l.TenderID, l.LotNumber, l.Title, l.Description, l.InitialPrice,
			l.Currency, l.SecurityAmount, l.DeliveryPlace, l.PaymentTerms, l.Quantity,
			l.UnitOfMeasure, l.OKPDCode, l.OKVEDCode,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert lot: %w", err)
		}
		for j := range l.Products {
			p := &l.Products[j]
			p.LotID = l.ID
			err := r.q.QueryRow(ctx, `
				INSERT INTO lot_products (lot_id, position_number, name, quantity, unit_of_measure)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				p.LotID, p.PositionNumber, p.Name, p.Quantity, p.UnitOfMeasure,
			).Scan(&p.ID)
			if err != nil {
				return fmt.Errorf("insert product: %w", err)
			}
		}
	}
	for i := range t.Documents {
		d := &t.Documents[i]
		d.TenderID = t.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO tender_documents (tender_id, title, file_path, file_size, file_type)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			d.TenderID, d.Title, d.FilePath, d.FileSize, d.FileType,
		).Scan(&d.ID)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
	}
	for i := range t.Stages {
		s := &t.Stages[i]
		s.TenderID = t.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO procedure_stages (tender_id, stage_name, stage_date, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			s.TenderID, s.StageName, s.StageDate, s.Description,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert stage: %w", err)
		}
	}
	return nil
}

// Publish moves a draft to published and stamps the publication date.
// Returns ErrConflict when the tender is not a draft anymore.
func (r *TenderRepo) Publish(ctx context.Context, id int64, publishedAt time.Time) error {
	query := `
		UPDATE tenders SET status = $2, publication_date = $3, updated_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(ctx, query, id, entity.TenderStatusPublished, publishedAt, entity.TenderStatusDraft)
	if err != nil {
		return fmt.Errorf("publish tender: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListRecent returns the newest tenders.
func (r *TenderRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Tender, error) {
	return r.queryTenders(ctx, selectTenders()+` ORDER BY t.created_at DESC LIMIT $1`, limit)
}
