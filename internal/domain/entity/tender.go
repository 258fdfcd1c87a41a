package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tender lifecycle statuses. Transitions are one-directional
// (draft → published → in_progress → completed) except cancellation.
const (
	TenderStatusDraft      = "draft"
	TenderStatusPublished  = "published"
	TenderStatusInProgress = "in_progress"
	TenderStatusCompleted  = "completed"
	TenderStatusCancelled  = "cancelled"
)

// ValidTenderStatus reports whether s is one of the known lifecycle statuses.
func ValidTenderStatus(s string) bool {
	switch s {
	case TenderStatusDraft, TenderStatusPublished, TenderStatusInProgress,
		TenderStatusCompleted, TenderStatusCancelled:
		return true
	}
	return false
}

// Tender is a procurement notice. Owns lots, documents, organizers and
// procedure stages; they never outlive the tender.
type Tender struct {
	ID                int64
	Title             string
	Description       string
	NoticeNumber      string
	InitialPrice      decimal.NullDecimal
	Currency          string
	Status            string
	PublicationDate   *time.Time
	Deadline          *time.Time
	OKPDCode          string
	OKVEDCode         string
	Region            string
	ProcurementMethod string
	CreatedBy         int64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Lots       []Lot
	Documents  []Document
	Organizers []Organizer
	Stages     []ProcedureStage
}

// Lot is a biddable subdivision of a tender with its own price and terms.
type Lot struct {
	ID             int64
	TenderID       int64
	LotNumber      int
	Title          string
	Description    string
	InitialPrice   decimal.NullDecimal
	Currency       string
	SecurityAmount decimal.NullDecimal
	DeliveryPlace  string
	PaymentTerms   string
	Quantity       string
	UnitOfMeasure  string
	OKPDCode       string
	OKVEDCode      string
	CreatedAt      time.Time

	Products []Product
}

// Product is a line item within a lot.
type Product struct {
	ID             int64
	LotID          int64
	PositionNumber int
	Name           string
	Quantity       string
	UnitOfMeasure  string
	CreatedAt      time.Time
}

// Document is a file attached to a tender, referenced by stored path.
type Document struct {
	ID         int64
	TenderID   int64
	Title      string
	FilePath   string
	FileSize   int64
	FileType   string
	UploadedAt time.Time
}

// Organizer is an organization running the tender.
type Organizer struct {
	ID               int64
	TenderID         int64
	OrganizationName string
	LegalAddress     string
	PostalAddress    string
	Email            string
	Phone            string
	ContactPerson    string
	INN              string
	KPP              string
	OGRN             string
	CreatedAt        time.Time
}

// ProcedureStage is a dated milestone of the tender procedure.
type ProcedureStage struct {
	ID          int64
	TenderID    int64
	StageName   string
	StageDate   *time.Time
	Description string
	CreatedAt   time.Time
}
