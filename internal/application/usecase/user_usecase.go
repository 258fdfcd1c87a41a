package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
	"github.com/almazgeobur/etp-api/internal/domain/access"
	"github.com/almazgeobur/etp-api/internal/domain/entity"
	"github.com/almazgeobur/etp-api/internal/domain/repository"
	"github.com/almazgeobur/etp-api/pkg/password"
)

// UserUseCase admin user management and supplier profile handling.
type UserUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.SupplierProfileRepository
}

// NewUserUseCase builds the use case with its persistence ports.
func NewUserUseCase(userRepo repository.UserRepository, profileRepo repository.SupplierProfileRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, profileRepo: profileRepo}
}

// List returns one page of users for the admin panel.
func (uc *UserUseCase) List(ctx context.Context, f repository.UserFilter) (*dto.UserListResponse, error) {
	if f.Role != "" && !entity.ValidRole(f.Role) {
		return nil, domain.ErrInvalidInput
	}
	users, total, err := uc.userRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Total: total,
		Page:  f.Page,
		Size:  f.Size,
		Pages: dto.Pages(total, f.Size),
	}, nil
}

// GetByID returns one user.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Create adds a user with a generated password, returned exactly once in
// the response and never stored in clear.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.CreatedUserResponse, error) {
	if in.Email == "" || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	plain, err := password.Generate(password.DefaultLength)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.CreatedUserResponse{
		UserResponse:      dto.NewUserResponse(user),
		GeneratedPassword: plain,
	}, nil
}

// Update applies the set fields of a partial update.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Delete removes a user. Admins cannot delete their own account.
func (uc *UserUseCase) Delete(ctx context.Context, id, callerID int64) error {
	if id == callerID {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

// ResetPassword generates a fresh password, stores its hash and returns the
// plaintext once.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id int64) (*dto.ResetPasswordResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	plain, err := password.Generate(password.DefaultLength)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.ResetPasswordResponse{
		Message:     "password has been reset",
		NewPassword: plain,
		UserEmail:   user.Email,
	}, nil
}

// GetSupplierProfile returns the supplier card of userID. Only the owner
// or an admin may read it; the user must be a supplier.
func (uc *UserUseCase) GetSupplierProfile(ctx context.Context, userID, callerID int64, callerRole string) (*dto.SupplierProfileResponse, error) {
	if !access.CanViewSupplierProfile(callerRole, callerID, userID) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != entity.RoleSupplier {
		return nil, domain.ErrInvalidInput
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewSupplierProfileResponse(profile)
	return &resp, nil
}

// UpsertSupplierProfile creates or updates the supplier card. Legal form,
// company name and INN are mandatory on creation.
func (uc *UserUseCase) UpsertSupplierProfile(ctx context.Context, userID, callerID int64, callerRole string, in dto.UpdateSupplierProfileRequest) (*dto.SupplierProfileResponse, error) {
	if !access.CanViewSupplierProfile(callerRole, callerID, userID) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Role != entity.RoleSupplier {
		return nil, domain.ErrInvalidInput
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if profile == nil {
		if in.LegalForm == nil || in.CompanyName == nil || in.INN == nil {
			return nil, domain.ErrInvalidInput
		}
		profile = &entity.SupplierProfile{UserID: userID, CreatedAt: now}
	}
	applyProfilePatch(profile, in)
	if !entity.ValidLegalForm(profile.LegalForm) {
		return nil, domain.ErrInvalidInput
	}
	profile.UpdatedAt = now

	if profile.ID == 0 {
		err = uc.profileRepo.Create(ctx, profile)
	} else {
		err = uc.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}
	resp := dto.NewSupplierProfileResponse(profile)
	return &resp, nil
}

func applyProfilePatch(p *entity.SupplierProfile, in dto.UpdateSupplierProfileRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.LegalForm, in.LegalForm)
	set(&p.CompanyName, in.CompanyName)
	set(&p.INN, in.INN)
	set(&p.KPP, in.KPP)
	set(&p.OGRN, in.OGRN)
	set(&p.LegalAddress, in.LegalAddress)
	set(&p.ActualAddress, in.ActualAddress)
	set(&p.BankName, in.BankName)
	set(&p.BankAccount, in.BankAccount)
	set(&p.CorrespondentAccount, in.CorrespondentAccount)
	set(&p.BIC, in.BIC)
	set(&p.ContactPerson, in.ContactPerson)
	set(&p.ContactPhone, in.ContactPhone)
	set(&p.ContactEmail, in.ContactEmail)
}
