package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

// CreateApplicationRequest submits one application per lot per supplier.
type CreateApplicationRequest struct {
	LotID         int64               `json:"lot_id" validate:"required"`
	ProposedPrice decimal.NullDecimal `json:"proposed_price"`
	Comment       string              `json:"comment"`
}

// UpdateApplicationRequest staff review: only set fields are applied.
type UpdateApplicationRequest struct {
	Status        *string              `json:"status"`
	ProposedPrice *decimal.NullDecimal `json:"proposed_price"`
	Comment       *string              `json:"comment"`
}

type ApplicationResponse struct {
	ID            int64               `json:"id"`
	TenderID      int64               `json:"tender_id"`
	LotID         int64               `json:"lot_id"`
	SupplierID    int64               `json:"supplier_id"`
	ProposedPrice decimal.NullDecimal `json:"proposed_price"`
	Comment       string              `json:"comment,omitempty"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func NewApplicationResponse(a *entity.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            a.ID,
		TenderID:      a.TenderID,
		LotID:         a.LotID,
		SupplierID:    a.SupplierID,
		ProposedPrice: a.ProposedPrice,
		Comment:       a.Comment,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ApplicationSupplierInfo is the supplier identity attached to the detail
// view. Profile is nil when the supplier has not filled the card.
type ApplicationSupplierInfo struct {
	ID       int64                    `json:"id"`
	FullName string                   `json:"full_name"`
	Email    string                   `json:"email"`
	Phone    string                   `json:"phone,omitempty"`
	Profile  *SupplierProfileResponse `json:"profile,omitempty"`
}

// ApplicationDetailResponse is the staff detail view with supplier and
// tender context.
type ApplicationDetailResponse struct {
	ApplicationResponse
	Supplier *ApplicationSupplierInfo `json:"supplier,omitempty"`
	Tender   *TenderResponse          `json:"tender,omitempty"`
}

type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
	Total int                   `json:"total"`
}
