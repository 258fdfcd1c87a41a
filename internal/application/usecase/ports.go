package usecase

import (
	"context"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
)

// TxRunner executes fn atomically with repositories bound to one
// transaction. Tender graph writes and proposal item replacement go
// through it.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		tenderRepo repository.TenderRepository,
		proposalRepo repository.ProposalRepository,
	) error) error
}

// TenderPDFGenerator renders the printable tender notice.
type TenderPDFGenerator interface {
	GenerateTenderPDF(ctx context.Context, t *entity.Tender) ([]byte, error)
}
