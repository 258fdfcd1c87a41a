package dto

import (
	"time"

	"github.com/almazgeobur/etp-api/internal/domain/entity"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// RegisterRequest self-service signup. Role defaults to supplier.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Role     string `json:"role" validate:"omitempty,oneof=admin contract_manager manager supplier"`
}

// UserResponse user output, password hash never included.
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserRequest admin form. No password field: one is generated and
// returned exactly once in CreatedUserResponse.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Role     string `json:"role" validate:"required,oneof=admin contract_manager manager supplier"`
}

type CreatedUserResponse struct {
	UserResponse
	GeneratedPassword string `json:"generated_password"`
}

// UpdateUserRequest partial update, only set fields are applied.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type ResetPasswordResponse struct {
	Message     string `json:"message"`
	NewPassword string `json:"new_password"`
	UserEmail   string `json:"user_email"`
}

type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Pages int            `json:"pages"`
}

type SupplierProfileResponse struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	LegalForm            string    `json:"legal_form"`
	CompanyName          string    `json:"company_name"`
	INN                  string    `json:"inn"`
	KPP                  string    `json:"kpp,omitempty"`
	OGRN                 string    `json:"ogrn,omitempty"`
	LegalAddress         string    `json:"legal_address,omitempty"`
	ActualAddress        string    `json:"actual_address,omitempty"`
	BankName             string    `json:"bank_name,omitempty"`
	BankAccount          string    `json:"bank_account,omitempty"`
	CorrespondentAccount string    `json:"correspondent_account,omitempty"`
	BIC                  string    `json:"bic,omitempty"`
	ContactPerson        string    `json:"contact_person,omitempty"`
	ContactPhone         string    `json:"contact_phone,omitempty"`
	ContactEmail         string    `json:"contact_email,omitempty"`
	IsVerified           bool      `json:"is_verified"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func NewSupplierProfileResponse(p *entity.SupplierProfile) SupplierProfileResponse {
	return SupplierProfileResponse{
		ID:                   p.ID,
		UserID:               p.UserID,
		LegalForm:            p.LegalForm,
		CompanyName:          p.CompanyName,
		INN:                  p.INN,
		KPP:                  p.KPP,
		OGRN:                 p.OGRN,
		LegalAddress:         p.LegalAddress,
		ActualAddress:        p.ActualAddress,
		BankName:             p.BankName,
		BankAccount:          p.BankAccount,
		CorrespondentAccount: p.CorrespondentAccount,
		BIC:                  p.BIC,
		ContactPerson:        p.ContactPerson,
		ContactPhone:         p.ContactPhone,
		ContactEmail:         p.ContactEmail,
		IsVerified:           p.IsVerified,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// UpdateSupplierProfileRequest upserts the supplier card. LegalForm,
// CompanyName and INN are required when the card is created.
type UpdateSupplierProfileRequest struct {
	LegalForm            *string `json:"legal_form"`
	CompanyName          *string `json:"company_name"`
	INN                  *string `json:"inn"`
	KPP                  *string `json:"kpp"`
	OGRN                 *string `json:"ogrn"`
	LegalAddress         *string `json:"legal_address"`
	ActualAddress        *string `json:"actual_address"`
	BankName             *string `json:"bank_name"`
	BankAccount          *string `json:"bank_account"`
	CorrespondentAccount *string `json:"correspondent_account"`
	BIC                  *string `json:"bic"`
	ContactPerson        *string `json:"contact_person"`
	ContactPhone         *string `json:"contact_phone"`
	ContactEmail         *string `json:"contact_email"`
}
