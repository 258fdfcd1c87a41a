package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Application statuses. Created directly as submitted (single-shot flow);
// staff move it to accepted, rejected or won afterwards.
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWon       = "won"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusWon:
		return true
	}
	return false
}

// Application is a supplier's bid on a single lot.
// At most one per (lot, supplier), enforced by a DB uniqueness constraint.
type Application struct {
	ID            int64
	TenderID      int64
	LotID         int64
	SupplierID    int64
	ProposedPrice decimal.NullDecimal
	Comment       string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
