package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

type OrganizerPayload struct {
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=500"`
	LegalAddress     string `json:"legal_address"`
	PostalAddress    string `json:"postal_address"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone"`
	ContactPerson    string `json:"contact_person"`
	INN              string `json:"inn"`
	KPP              string `json:"kpp"`
	OGRN             string `json:"ogrn"`
}

type ProductPayload struct {
	PositionNumber int    `json:"position_number" validate:"required,min=1"`
	Name           string `json:"name" validate:"required,min=1,max=1000"`
	Quantity       string `json:"quantity"`
	UnitOfMeasure  string `json:"unit_of_measure"`
}

type LotPayload struct {
	LotNumber      int                 `json:"lot_number" validate:"required,min=1"`
	Title          string              `json:"title" validate:"required,min=1,max=1000"`
	Description    string              `json:"description"`
	InitialPrice   decimal.NullDecimal `json:"initial_price"`
	Currency       string              `json:"currency"`
	SecurityAmount decimal.NullDecimal `json:"security_amount"`
	DeliveryPlace  string              `json:"delivery_place"`
	PaymentTerms   string              `json:"payment_terms"`
	Quantity       string              `json:"quantity"`
	UnitOfMeasure  string              `json:"unit_of_measure"`
	OKPDCode       string              `json:"okpd_code"`
	OKVEDCode      string              `json:"okved_code"`
	Products       []ProductPayload    `json:"products"`
}

type DocumentPayload struct {
	Title    string `json:"title" validate:"required,min=1,max=500"`
	FilePath string `json:"file_path" validate:"required"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
}

type StagePayload struct {
	StageName   string     `json:"stage_name" validate:"required,min=1,max=500"`
	StageDate   *time.Time `json:"stage_date"`
	Description string     `json:"description"`
}

// CreateTenderRequest carries the whole tender graph. At least one
// organizer, one lot and one document are required.
type CreateTenderRequest struct {
	Title             string              `json:"title" validate:"required,min=1,max=1000"`
	Description       string              `json:"description" validate:"required"`
	InitialPrice      decimal.NullDecimal `json:"initial_price"`
	Currency          string              `json:"currency"`
	Status            string              `json:"status" validate:"omitempty,oneof=draft published in_progress completed cancelled"`
	Deadline          *time.Time          `json:"deadline"`
	OKPDCode          string              `json:"okpd_code"`
	OKVEDCode         string              `json:"okved_code"`
	Region            string              `json:"region"`
	ProcurementMethod string              `json:"procurement_method"`
	Organizers        []OrganizerPayload  `json:"organizers" validate:"required,min=1"`
	Lots              []LotPayload        `json:"lots" validate:"required,min=1"`
	Documents         []DocumentPayload   `json:"documents" validate:"required,min=1"`
	Stages            []StagePayload      `json:"stages"`
}

// UpdateTenderRequest base fields are applied only when set; each nested
// collection, when present, replaces the stored one entirely.
type UpdateTenderRequest struct {
	Title             *string              `json:"title"`
	Description       *string              `json:"description"`
	InitialPrice      *decimal.NullDecimal `json:"initial_price"`
	Currency          *string              `json:"currency"`
	Status            *string              `json:"status"`
	Deadline          *time.Time           `json:"deadline"`
	OKPDCode          *string              `json:"okpd_code"`
	OKVEDCode         *string              `json:"okved_code"`
	Region            *string              `json:"region"`
	ProcurementMethod *string              `json:"procurement_method"`
	Organizers        []OrganizerPayload   `json:"organizers"`
	Lots              []LotPayload         `json:"lots"`
	Documents         []DocumentPayload    `json:"documents"`
	Stages            []StagePayload       `json:"stages"`
}

type OrganizerResponse struct {
	ID               int64  `json:"id"`
	OrganizationName string `json:"organization_name"`
	LegalAddress     string `json:"legal_address,omitempty"`
	PostalAddress    string `json:"postal_address,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	ContactPerson    string `json:"contact_person,omitempty"`
	INN              string `json:"inn,omitempty"`
	KPP              string `json:"kpp,omitempty"`
	OGRN             string `json:"ogrn,omitempty"`
}

type ProductResponse struct {
	ID             int64  `json:"id"`
	LotID          int64  `json:"lot_id"`
	PositionNumber int    `json:"position_number"`
	Name           string `json:"name"`
	Quantity       string `json:"quantity,omitempty"`
	UnitOfMeasure  string `json:"unit_of_measure,omitempty"`
}

type LotResponse struct {
	ID             int64               `json:"id"`
	LotNumber      int                 `json:"lot_number"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	InitialPrice   decimal.NullDecimal `json:"initial_price"`
	Currency       string              `json:"currency,omitempty"`
	SecurityAmount decimal.NullDecimal `json:"security_amount"`
	DeliveryPlace  string              `json:"delivery_place,omitempty"`
	PaymentTerms   string              `json:"payment_terms,omitempty"`
	Quantity       string              `json:"quantity,omitempty"`
	UnitOfMeasure  string              `json:"unit_of_measure,omitempty"`
	OKPDCode       string              `json:"okpd_code,omitempty"`
	OKVEDCode      string              `json:"okved_code,omitempty"`
	Products       []ProductResponse   `json:"products"`
}

type DocumentResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	FilePath   string    `json:"file_path"`
	FileSize   int64     `json:"file_size,omitempty"`
	FileType   string    `json:"file_type,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type StageResponse struct {
	ID          int64      `json:"id"`
	StageName   string     `json:"stage_name"`
	StageDate   *time.Time `json:"stage_date"`
	Description string     `json:"description,omitempty"`
}

// TenderResponse is the full tender graph.
type TenderResponse struct {
	ID                int64               `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	NoticeNumber      string              `json:"notice_number,omitempty"`
	InitialPrice      decimal.NullDecimal `json:"initial_price"`
	Currency          string              `json:"currency"`
	Status            string              `json:"status"`
	PublicationDate   *time.Time          `json:"publication_date"`
	Deadline          *time.Time          `json:"deadline"`
	OKPDCode          string              `json:"okpd_code,omitempty"`
	OKVEDCode         string              `json:"okved_code,omitempty"`
	Region            string              `json:"region,omitempty"`
	ProcurementMethod string              `json:"procurement_method,omitempty"`
	CreatedBy         int64               `json:"created_by"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Organizers        []OrganizerResponse `json:"organizers"`
	Lots              []LotResponse       `json:"lots"`
	Documents         []DocumentResponse  `json:"documents"`
	Stages            []StageResponse     `json:"stages"`
}

func NewTenderResponse(t *entity.Tender) TenderResponse {
	r := TenderResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		NoticeNumber:      t.NoticeNumber,
		InitialPrice:      t.InitialPrice,
		Currency:          t.Currency,
		Status:            t.Status,
		PublicationDate:   t.PublicationDate,
		Deadline:          t.Deadline,
		OKPDCode:          t.OKPDCode,
		OKVEDCode:         t.OKVEDCode,
		Region:            t.Region,
		ProcurementMethod: t.ProcurementMethod,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Organizers:        make([]OrganizerResponse, 0, len(t.Organizers)),
		Lots:              make([]LotResponse, 0, len(t.Lots)),
		Documents:         make([]DocumentResponse, 0, len(t.Documents)),
		Stages:            make([]StageResponse, 0, len(t.Stages)),
	}
	for _, o := range t.Organizers {
		r.Organizers = append(r.Organizers, OrganizerResponse{
			ID:               o.ID,
			OrganizationName: o.OrganizationName,
			LegalAddress:     o.LegalAddress,
			PostalAddress:    o.PostalAddress,
			Email:            o.Email,
			Phone:            o.Phone,
			ContactPerson:    o.ContactPerson,
			INN:              o.INN,
			KPP:              o.KPP,
			OGRN:             o.OGRN,
		})
	}
	for _, l := range t.Lots {
		lr := LotResponse{
			ID:             l.ID,
			LotNumber:      l.LotNumber,
			Title:          l.Title,
			Description:    l.Description,
			InitialPrice:   l.InitialPrice,
			Currency:       l.Currency,
			SecurityAmount: l.SecurityAmount,
			DeliveryPlace:  l.DeliveryPlace,
			PaymentTerms:   l.PaymentTerms,
			Quantity:       l.Quantity,
			UnitOfMeasure:  l.UnitOfMeasure,
			OKPDCode:       l.OKPDCode,
			OKVEDCode:      l.OKVEDCode,
			Products:       make([]ProductResponse, 0, len(l.Products)),
		}
		for _, p := range l.Products {
			lr.Products = append(lr.Products, ProductResponse{
				ID:             p.ID,
				LotID:          p.LotID,
				PositionNumber: p.PositionNumber,
				Name:           p.Name,
				Quantity:       p.Quantity,
				UnitOfMeasure:  p.UnitOfMeasure,
			})
		}
		r.Lots = append(r.Lots, lr)
	}
	for _, d := range t.Documents {
		r.Documents = append(r.Documents, DocumentResponse{
			ID:         d.ID,
			Title:      d.Title,
			FilePath:   d.FilePath,
			FileSize:   d.FileSize,
			FileType:   d.FileType,
			UploadedAt: d.UploadedAt,
		})
	}
	for _, s := range t.Stages {
		r.Stages = append(r.Stages, StageResponse{
			ID:          s.ID,
			StageName:   s.StageName,
			StageDate:   s.StageDate,
			Description: s.Description,
		})
	}
	return r
}

// LotSummary trims a lot for listing rows.
type LotSummary struct {
	ID            int64               `json:"id"`
	LotNumber     int                 `json:"lot_number"`
	Title         string              `json:"title"`
	InitialPrice  decimal.NullDecimal `json:"initial_price"`
	Currency      string              `json:"currency,omitempty"`
	DeliveryPlace string              `json:"delivery_place,omitempty"`
	ProductsCount int                 `json:"products_count"`
}

// TenderListItem is one row of the staff/public tender listing.
type TenderListItem struct {
	ID                int64               `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	NoticeNumber      string              `json:"notice_number,omitempty"`
	InitialPrice      decimal.NullDecimal `json:"initial_price"`
	Currency          string              `json:"currency"`
	Status            string              `json:"status"`
	PublicationDate   *time.Time          `json:"publication_date"`
	Deadline          *time.Time          `json:"deadline"`
	Region            string              `json:"region,omitempty"`
	ProcurementMethod string              `json:"procurement_method,omitempty"`
	CreatedBy         int64               `json:"created_by"`
	CreatedAt         time.Time           `json:"created_at"`
	Organizers        []OrganizerResponse `json:"organizers"`
	Lots              []LotSummary        `json:"lots"`
	DocumentsCount    int                 `json:"documents_count"`
}

type TenderListResponse struct {
	Items []TenderListItem `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Pages int              `json:"pages"`
}

// SupplierTenderListItem extends the listing row with the calling
// supplier's participation state.
type SupplierTenderListItem struct {
	TenderListItem
	HasProposal    bool    `json:"has_proposal"`
	ProposalStatus *string `json:"proposal_status"`
	ProposalsCount int     `json:"proposals_count"`
}

type SupplierTenderListResponse struct {
	Items []SupplierTenderListItem `json:"items"`
	Total int                      `json:"total"`
	Page  int                      `json:"page"`
	Size  int                      `json:"size"`
	Pages int                      `json:"pages"`
}

// TenderProductItem is a product flattened with its lot context.
type TenderProductItem struct {
	ID             int64  `json:"id"`
	LotID          int64  `json:"lot_id"`
	LotNumber      int    `json:"lot_number"`
	LotTitle       string `json:"lot_title"`
	PositionNumber int    `json:"position_number"`
	Name           string `json:"name"`
	Quantity       string `json:"quantity,omitempty"`
	UnitOfMeasure  string `json:"unit_of_measure,omitempty"`
}

type TenderProductListResponse struct {
	Items []TenderProductItem `json:"items"`
	Total int                 `json:"total"`
}
