package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposal statuses. draft → submitted → {accepted | rejected}.
const (
	ProposalStatusDraft     = "draft"
	ProposalStatusSubmitted = "submitted"
	ProposalStatusAccepted  = "accepted"
	ProposalStatusRejected  = "rejected"
)

// ValidProposalStatus reports whether s is a known proposal status.
func ValidProposalStatus(s string) bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSubmitted, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// Proposal is a supplier's full response to a tender, covering one or more
// products. At most one per (tender, supplier), enforced by a DB uniqueness
// constraint.
type Proposal struct {
	ID                int64
	TenderID          int64
	SupplierID        int64
	PrepaymentPercent decimal.Decimal
	Currency          string
	VATPercent        decimal.Decimal
	GeneralComment    string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []ProposalItem
}

// ProposalItem prices a single requested product within a proposal.
// An analog item is a proposed substitute for the exact requested product.
type ProposalItem struct {
	ID           int64
	ProposalID   int64
	ProductID    int64
	IsAvailable  bool
	IsAnalog     bool
	PricePerUnit decimal.NullDecimal
	DeliveryDays *int
	Comment      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
