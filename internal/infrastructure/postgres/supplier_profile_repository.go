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

var _ repository.SupplierProfileRepository = (*SupplierProfileRepo)(nil)

// SupplierProfileRepo implements the SupplierProfileRepository port on PostgreSQL.
type SupplierProfileRepo struct {
	q Querier
}

// NewSupplierProfileRepository builds the adapter. Accepts pool or tx (Querier).
func NewSupplierProfileRepository(q Querier) *SupplierProfileRepo {
	return &SupplierProfileRepo{q: q}
}

const supplierProfileColumns = `id, user_id, legal_form, company_name, inn, kpp, ogrn,
	legal_address, actual_address, bank_name, bank_account, correspondent_account, bic,
	contact_person, contact_phone, contact_email, is_verified, created_at, updated_at`

// Create persists a new supplier card and fills the generated ID. One card
// per user (unique user_id).
func (r *SupplierProfileRepo) Create(ctx context.Context, p *entity.SupplierProfile) error {
	query := `
		INSERT INTO supplier_profiles (user_id, legal_form, company_name, inn, kpp, ogrn,
			legal_address, actual_address, bank_name, bank_account, correspondent_account, bic,
			contact_person, contact_phone, contact_email, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.UserID, p.LegalForm, p.CompanyName, p.INN, p.KPP, p.OGRN,
		p.LegalAddress, p.ActualAddress, p.BankName, p.BankAccount, p.CorrespondentAccount, p.BIC,
		p.ContactPerson, p.ContactPhone, p.ContactEmail, p.IsVerified, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert supplier profile: %w", err)
	}
	return nil
}

// GetByUserID returns the supplier card of a user, (nil, nil) when absent.
func (r *SupplierProfileRepo) GetByUserID(ctx context.Context, userID int64) (*entity.SupplierProfile, error) {
	query := `SELECT ` + supplierProfileColumns + ` FROM supplier_profiles WHERE user_id = $1`
	var p entity.SupplierProfile
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.LegalForm, &p.CompanyName, &p.INN, &p.KPP, &p.OGRN,
		&p.LegalAddress, &p.ActualAddress, &p.BankName, &p.BankAccount, &p.CorrespondentAccount, &p.BIC,
		&p.ContactPerson, &p.ContactPhone, &p.ContactEmail, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier profile: %w", err)
	}
	return &p, nil
}

// Update rewrites the supplier card.
func (r *SupplierProfileRepo) Update(ctx context.Context, p *entity.SupplierProfile) error {
	query := `
		UPDATE supplier_profiles SET legal_form = $2, company_name = $3, inn = $4, kpp = $5,
			ogrn = $6, legal_address = $7, actual_address = $8, bank_name = $9, bank_account = $10,
			correspondent_account = $11, bic = $12, contact_person = $13, contact_phone = $14,
			contact_email = $15, is_verified = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.LegalForm, p.CompanyName, p.INN, p.KPP,
		p.OGRN, p.LegalAddress, p.ActualAddress, p.BankName, p.BankAccount,
		p.CorrespondentAccount, p.BIC, p.ContactPerson, p.ContactPhone,
		p.ContactEmail, p.IsVerified, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update supplier profile: %w", err)
	}
	return nil
}
