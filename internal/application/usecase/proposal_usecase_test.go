package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// In-memory fakes for the use case ports. Only the methods the proposal
// lifecycle touches carry real behavior.

type fakeTenderRepo struct {
	tenders  map[int64]*entity.Tender
	products map[int64]repository.TenderProductRow
}

func newFakeTenderRepo() *fakeTenderRepo {
	return &fakeTenderRepo{
		tenders:  map[int64]*entity.Tender{},
		products: map[int64]repository.TenderProductRow{},
	}
}

func (r *fakeTenderRepo) List(ctx context.Context, f repository.TenderFilter) ([]*entity.Tender, int, error) {
	return nil, 0, nil
}

func (r *fakeTenderRepo) ListAll(ctx context.Context, f repository.TenderFilter) ([]*entity.Tender, error) {
	return nil, nil
}

func (r *fakeTenderRepo) GetByID(ctx context.Context, id int64) (*entity.Tender, error) {
	return r.tenders[id], nil
}

func (r *fakeTenderRepo) LoadGraph(ctx context.Context, t *entity.Tender) error { return nil }

func (r *fakeTenderRepo) ListProducts(ctx context.Context, tenderID int64) ([]repository.TenderProductRow, error) {
	var rows []repository.TenderProductRow
	for _, p := range r.products {
		rows = append(rows, p)
	}
	return rows, nil
}

func (r *fakeTenderRepo) ProductExists(ctx context.Context, productID int64) (bool, error) {
	_, ok := r.products[productID]
	return ok, nil
}

func (r *fakeTenderRepo) GetLotByID(ctx context.Context, lotID int64) (*entity.Lot, error) {
	return nil, nil
}

func (r *fakeTenderRepo) CreateWithGraph(ctx context.Context, t *entity.Tender) error { return nil }
func (r *fakeTenderRepo) UpdateWithGraph(ctx context.Context, t *entity.Tender) error { return nil }

func (r *fakeTenderRepo) Publish(ctx context.Context, id int64, publishedAt time.Time) error {
	return nil
}

func (r *fakeTenderRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Tender, error) {
	return nil, nil
}

type fakeProposalRepo struct {
	proposals map[int64]*entity.Proposal
	nextID    int64
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: map[int64]*entity.Proposal{}, nextID: 1}
}

func (r *fakeProposalRepo) Create(ctx context.Context, p *entity.Proposal) error {
	for _, stored := range r.proposals {
		if stored.TenderID == p.TenderID && stored.SupplierID == p.SupplierID {
			return domain.ErrConflict
		}
	}
	p.ID = r.nextID
	r.nextID++
	for i := range p.Items {
		p.Items[i].ID = r.nextID
		p.Items[i].ProposalID = p.ID
		r.nextID++
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeProposalRepo) GetByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProposalRepo) GetByTenderAndSupplier(ctx context.Context, tenderID, supplierID int64) (*entity.Proposal, error) {
	for _, p := range r.proposals {
		if p.TenderID == tenderID && p.SupplierID == supplierID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProposalRepo) List(ctx context.Context, f repository.ProposalFilter) ([]*entity.Proposal, error) {
	var out []*entity.Proposal
	for _, p := range r.proposals {
		if f.SupplierID != nil && p.SupplierID != *f.SupplierID {
			continue
		}
		if f.TenderID != nil && p.TenderID != *f.TenderID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProposalRepo) LoadItems(ctx context.Context, p *entity.Proposal) error {
	if stored, ok := r.proposals[p.ID]; ok {
		p.Items = stored.Items
	}
	return nil
}

func (r *fakeProposalRepo) Update(ctx context.Context, p *entity.Proposal, replaceItems bool) error {
	stored, ok := r.proposals[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	items := stored.Items
	cp := *p
	if !replaceItems {
		cp.Items = items
	}
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeProposalRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	p, ok := r.proposals[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeProposalRepo) CountItems(ctx context.Context, proposalID int64) (int, error) {
	p, ok := r.proposals[proposalID]
	if !ok {
		return 0, nil
	}
	return len(p.Items), nil
}

func (r *fakeProposalRepo) CountByTender(ctx context.Context, tenderID int64) (int, error) {
	n := 0
	for _, p := range r.proposals {
		if p.TenderID == tenderID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProposalRepo) ListRecentBySupplier(ctx context.Context, supplierID int64, limit int) ([]*entity.Proposal, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[int64]*entity.User{}} }

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

func (r *fakeUserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error { return nil }

// fakeTx runs the callback directly against the fakes.
type fakeTx struct {
	tenderRepo   repository.TenderRepository
	proposalRepo repository.ProposalRepository
}

func (tx *fakeTx) Run(ctx context.Context, fn func(repository.TenderRepository, repository.ProposalRepository) error) error {
	return fn(tx.tenderRepo, tx.proposalRepo)
}

const (
	testTenderID   = int64(1)
	testProductID  = int64(11)
	testSupplierID = int64(100)
)

func newProposalFixture(t *testing.T, tenderStatus string) (*ProposalUseCase, *fakeProposalRepo) {
	t.Helper()
	tenderRepo := newFakeTenderRepo()
	tenderRepo.tenders[testTenderID] = &entity.Tender{
		ID:     testTenderID,
		Title:  gofakeit.Sentence(3),
		Status: tenderStatus,
	}
	tenderRepo.products[testProductID] = repository.TenderProductRow{
		ID:   testProductID,
		Name: gofakeit.ProductName(),
	}
	proposalRepo := newFakeProposalRepo()
	userRepo := newFakeUserRepo()
	userRepo.users[testSupplierID] = &entity.User{
		ID:       testSupplierID,
		Email:    gofakeit.Email(),
		FullName: gofakeit.Name(),
		Role:     entity.RoleSupplier,
	}
	tx := &fakeTx{tenderRepo: tenderRepo, proposalRepo: proposalRepo}
	return NewProposalUseCase(proposalRepo, tenderRepo, userRepo, tx), proposalRepo
}

func draftWithItems(t *testing.T, uc *ProposalUseCase) *dto.ProposalResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), testSupplierID, dto.CreateProposalRequest{
		TenderID: testTenderID,
		Items: []dto.ProposalItemPayload{{
			ProductID:    testProductID,
			IsAvailable:  true,
			PricePerUnit: decimal.NewNullDecimal(decimal.NewFromInt(1500)),
		}},
	})
	require.NoError(t, err)
	return resp
}

func TestProposalCreate_DefaultsAndDraftStatus(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)

	resp := draftWithItems(t, uc)

	assert.Equal(t, entity.ProposalStatusDraft, resp.Status, "a new proposal must start as a draft")
	assert.Equal(t, "RUB", resp.Currency, "currency must default to RUB")
	assert.True(t, resp.VATPercent.Equal(decimal.NewFromInt(20)), "VAT must default to 20 percent")
	require.Len(t, resp.Items, 1)
	assert.NotEmpty(t, resp.Items[0].ProductName, "items must carry the product name")
}

func TestProposalCreate_TenderNotPublished(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusDraft)

	_, err := uc.Create(context.Background(), testSupplierID, dto.CreateProposalRequest{TenderID: testTenderID})
	assert.ErrorIs(t, err, domain.ErrConflict, "proposals are accepted on published tenders only")
}

func TestProposalCreate_TenderNotFound(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)

	_, err := uc.Create(context.Background(), testSupplierID, dto.CreateProposalRequest{TenderID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProposalCreate_UnknownProduct(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)

	_, err := uc.Create(context.Background(), testSupplierID, dto.CreateProposalRequest{
		TenderID: testTenderID,
		Items:    []dto.ProposalItemPayload{{ProductID: 404}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "items must reference existing products")
}

func TestProposalCreate_DuplicatePerTender(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draftWithItems(t, uc)

	_, err := uc.Create(context.Background(), testSupplierID, dto.CreateProposalRequest{TenderID: testTenderID})
	assert.ErrorIs(t, err, domain.ErrConflict, "one proposal per supplier per tender")
}

func TestProposalSubmit_EmptyProposalRejected(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	resp, err := uc.Create(context.Background(), testSupplierID, dto.CreateProposalRequest{TenderID: testTenderID})
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), resp.ID, testSupplierID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "submitting without items must fail")
}

func TestProposalSubmit_MovesDraftToSubmitted(t *testing.T) {
	uc, repo := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)

	resp, err := uc.Submit(context.Background(), draft.ID, testSupplierID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusSubmitted, resp.Status)

	stored, _ := repo.GetByID(context.Background(), draft.ID)
	assert.Equal(t, entity.ProposalStatusSubmitted, stored.Status, "the new status must be persisted")
}

func TestProposalSubmit_ForeignProposalForbidden(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)

	_, err := uc.Submit(context.Background(), draft.ID, testSupplierID+1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProposalUpdate_SubmittedIsFrozen(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)
	_, err := uc.Submit(context.Background(), draft.ID, testSupplierID)
	require.NoError(t, err)

	comment := "updated terms"
	_, err = uc.Update(context.Background(), draft.ID, testSupplierID, dto.UpdateProposalRequest{
		GeneralComment: &comment,
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "a submitted proposal can no longer be edited")
}

func TestProposalUpdate_PatchesDraftFields(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)

	vat := decimal.NewFromInt(10)
	comment := gofakeit.Sentence(5)
	resp, err := uc.Update(context.Background(), draft.ID, testSupplierID, dto.UpdateProposalRequest{
		VATPercent:     &vat,
		GeneralComment: &comment,
	})
	require.NoError(t, err)

	assert.True(t, resp.VATPercent.Equal(vat))
	assert.Equal(t, comment, resp.GeneralComment)
	require.Len(t, resp.Items, 1, "items must stay untouched when the request carries none")
}

func TestProposalUpdateStatus_OnlyDecisionStatuses(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)

	_, err := uc.UpdateStatus(context.Background(), draft.ID, dto.UpdateProposalStatusRequest{Status: entity.ProposalStatusDraft})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "only accepted or rejected are staff decisions")
}

func TestProposalUpdateStatus_RequiresSubmitted(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)

	_, err := uc.UpdateStatus(context.Background(), draft.ID, dto.UpdateProposalStatusRequest{Status: entity.ProposalStatusAccepted})
	assert.ErrorIs(t, err, domain.ErrConflict, "a draft cannot be decided on")
}

func TestProposalUpdateStatus_AcceptsSubmitted(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)
	_, err := uc.Submit(context.Background(), draft.ID, testSupplierID)
	require.NoError(t, err)

	resp, err := uc.UpdateStatus(context.Background(), draft.ID, dto.UpdateProposalStatusRequest{Status: entity.ProposalStatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, entity.ProposalStatusAccepted, resp.Status)
}

func TestProposalGet_SupplierSeesOnlyOwn(t *testing.T) {
	uc, _ := newProposalFixture(t, entity.TenderStatusPublished)
	draft := draftWithItems(t, uc)

	_, err := uc.Get(context.Background(), draft.ID, testSupplierID+1, entity.RoleSupplier)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	resp, err := uc.Get(context.Background(), draft.ID, 1, entity.RoleManager)
	require.NoError(t, err, "staff may inspect any proposal")
	assert.Equal(t, draft.ID, resp.ID)
}
