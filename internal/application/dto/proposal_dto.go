package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

type ProposalItemPayload struct {
	ProductID    int64               `json:"product_id" validate:"required"`
	IsAvailable  bool                `json:"is_available"`
	IsAnalog     bool                `json:"is_analog"`
	PricePerUnit decimal.NullDecimal `json:"price_per_unit"`
	DeliveryDays *int                `json:"delivery_days"`
	Comment      string              `json:"comment"`
}

// CreateProposalRequest opens a draft proposal on a published tender.
type CreateProposalRequest struct {
	TenderID          int64                 `json:"tender_id" validate:"required"`
	PrepaymentPercent decimal.Decimal       `json:"prepayment_percent"`
	Currency          string                `json:"currency"`
	VATPercent        decimal.Decimal       `json:"vat_percent"`
	GeneralComment    string                `json:"general_comment"`
	Items             []ProposalItemPayload `json:"proposal_items"`
}

// UpdateProposalRequest edits a draft. A non-nil Items slice replaces the
// stored items entirely.
type UpdateProposalRequest struct {
	PrepaymentPercent *decimal.Decimal       `json:"prepayment_percent"`
	Currency          *string                `json:"currency"`
	VATPercent        *decimal.Decimal       `json:"vat_percent"`
	GeneralComment    *string                `json:"general_comment"`
	Items             *[]ProposalItemPayload `json:"proposal_items"`
}

type UpdateProposalStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

type ProposalItemResponse struct {
	ID           int64               `json:"id"`
	ProductID    int64               `json:"product_id"`
	ProductName  string              `json:"product_name,omitempty"`
	IsAvailable  bool                `json:"is_available"`
	IsAnalog     bool                `json:"is_analog"`
	PricePerUnit decimal.NullDecimal `json:"price_per_unit"`
	DeliveryDays *int                `json:"delivery_days"`
	Comment      string              `json:"comment,omitempty"`
}

type ProposalResponse struct {
	ID                int64                  `json:"id"`
	TenderID          int64                  `json:"tender_id"`
	SupplierID        int64                  `json:"supplier_id"`
	PrepaymentPercent decimal.Decimal        `json:"prepayment_percent"`
	Currency          string                 `json:"currency"`
	VATPercent        decimal.Decimal        `json:"vat_percent"`
	GeneralComment    string                 `json:"general_comment,omitempty"`
	Status            string                 `json:"status"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	Items             []ProposalItemResponse `json:"proposal_items"`
}

func NewProposalResponse(p *entity.Proposal) ProposalResponse {
	r := ProposalResponse{
		ID:                p.ID,
		TenderID:          p.TenderID,
		SupplierID:        p.SupplierID,
		PrepaymentPercent: p.PrepaymentPercent,
		Currency:          p.Currency,
		VATPercent:        p.VATPercent,
		GeneralComment:    p.GeneralComment,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Items:             make([]ProposalItemResponse, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		r.Items = append(r.Items, ProposalItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			IsAvailable:  it.IsAvailable,
			IsAnalog:     it.IsAnalog,
			PricePerUnit: it.PricePerUnit,
			DeliveryDays: it.DeliveryDays,
			Comment:      it.Comment,
		})
	}
	return r
}

// ProposalTenderInfo identifies the tender on staff proposal listings.
type ProposalTenderInfo struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// ProposalSupplierInfo identifies the supplier on staff proposal listings.
type ProposalSupplierInfo struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type ProposalListItem struct {
	ProposalResponse
	Tender   *ProposalTenderInfo   `json:"tender,omitempty"`
	Supplier *ProposalSupplierInfo `json:"supplier,omitempty"`
}

type ProposalListResponse struct {
	Items []ProposalListItem `json:"items"`
	Total int                `json:"total"`
}
