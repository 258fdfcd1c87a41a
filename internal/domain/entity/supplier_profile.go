package entity

import "time"

// Legal forms for SupplierProfile.
const (
	LegalFormIP    = "ip"
	LegalFormOOO   = "ooo"
	LegalFormOAO   = "oao"
	LegalFormZAO   = "zao"
	LegalFormPAO   = "pao"
	LegalFormOther = "other"
)

// ValidLegalForm reports whether s is one of the known legal forms.
func ValidLegalForm(s string) bool {
	switch s {
	case LegalFormIP, LegalFormOOO, LegalFormOAO, LegalFormZAO, LegalFormPAO, LegalFormOther:
		return true
	}
	return false
}

// SupplierProfile is the legal/banking identity of a supplier user.
// One-to-one with User; editable only by the owner or an admin.
type SupplierProfile struct {
	ID                   int64
	UserID               int64
	LegalForm            string
	CompanyName          string
	INN                  string
	KPP                  string
	OGRN                 string
	LegalAddress         string
	ActualAddress        string
	BankName             string
	BankAccount          string
	CorrespondentAccount string
	BIC                  string
	ContactPerson        string
	ContactPhone         string
	ContactEmail         string
	IsVerified           bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
