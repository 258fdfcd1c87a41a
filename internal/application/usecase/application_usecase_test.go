package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

type fakeApplicationRepo struct {
	applications map[int64]*entity.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[int64]*entity.Application{}}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a *entity.Application) error {
	a.ID = int64(len(r.applications) + 1)
	cp := *a
	r.applications[a.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id int64) (*entity.Application, error) {
	a, ok := r.applications[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeApplicationRepo) ListBySupplier(ctx context.Context, supplierID int64) ([]*entity.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) ListByTender(ctx context.Context, tenderID int64) ([]*entity.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, a *entity.Application) error {
	if _, ok := r.applications[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.applications[a.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) ListExportRows(ctx context.Context, tenderID int64) ([]repository.ApplicationExportRow, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) ListRecentBySupplier(ctx context.Context, supplierID int64, limit int) ([]repository.RecentApplicationRow, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) CountByTender(ctx context.Context, tenderID int64) (int, error) {
	return 0, nil
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) Create(ctx context.Context, p *entity.SupplierProfile) error { return nil }

func (fakeProfileRepo) GetByUserID(ctx context.Context, userID int64) (*entity.SupplierProfile, error) {
	return nil, nil
}

func (fakeProfileRepo) Update(ctx context.Context, p *entity.SupplierProfile) error { return nil }

const testTenderOwnerID = int64(42)

func newApplicationFixture(t *testing.T) (*ApplicationUseCase, int64) {
	t.Helper()
	tenderRepo := newFakeTenderRepo()
	tenderRepo.tenders[testTenderID] = &entity.Tender{
		ID:        testTenderID,
		Title:     "Поставка оборудования",
		Status:    entity.TenderStatusPublished,
		CreatedBy: testTenderOwnerID,
	}
	applicationRepo := newFakeApplicationRepo()
	app := &entity.Application{
		TenderID:   testTenderID,
		LotID:      1,
		SupplierID: testSupplierID,
		Status:     entity.ApplicationStatusSubmitted,
	}
	require.NoError(t, applicationRepo.Create(context.Background(), app))

	uc := NewApplicationUseCase(applicationRepo, tenderRepo, newFakeUserRepo(), fakeProfileRepo{})
	return uc, app.ID
}

func statusPtr(s string) *string { return &s }

func TestApplicationUpdate_ForeignContractManagerForbidden(t *testing.T) {
	uc, appID := newApplicationFixture(t)

	_, err := uc.Update(context.Background(), appID, testTenderOwnerID+1, entity.RoleContractManager,
		dto.UpdateApplicationRequest{Status: statusPtr(entity.ApplicationStatusRejected)})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"a contract_manager must not review applications on foreign tenders")
}

func TestApplicationUpdate_OwningContractManagerAllowed(t *testing.T) {
	uc, appID := newApplicationFixture(t)

	resp, err := uc.Update(context.Background(), appID, testTenderOwnerID, entity.RoleContractManager,
		dto.UpdateApplicationRequest{Status: statusPtr(entity.ApplicationStatusAccepted)})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusAccepted, resp.Status)
}

func TestApplicationUpdate_AdminBypassesOwnership(t *testing.T) {
	uc, appID := newApplicationFixture(t)

	resp, err := uc.Update(context.Background(), appID, 1, entity.RoleAdmin,
		dto.UpdateApplicationRequest{Status: statusPtr(entity.ApplicationStatusWon)})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusWon, resp.Status)
}

func TestApplicationUpdate_ManagerForbidden(t *testing.T) {
	uc, appID := newApplicationFixture(t)

	_, err := uc.Update(context.Background(), appID, 1, entity.RoleManager,
		dto.UpdateApplicationRequest{Status: statusPtr(entity.ApplicationStatusAccepted)})
	assert.ErrorIs(t, err, domain.ErrForbidden, "managers observe, they do not review")
}

func TestApplicationUpdate_InvalidStatusRejected(t *testing.T) {
	uc, appID := newApplicationFixture(t)

	_, err := uc.Update(context.Background(), appID, 1, entity.RoleAdmin,
		dto.UpdateApplicationRequest{Status: statusPtr("draft")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
