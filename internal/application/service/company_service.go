package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/apperror"
)

// CompanyService exposes the merchant details stored on the user record
type CompanyService struct {
	userRepo repository.UserRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(userRepo repository.UserRepository) *CompanyService {
	return &CompanyService{userRepo: userRepo}
}

// CompanyDetails is the merchant identity used on receipt headers
type CompanyDetails struct {
	Name    string `json:"company"`
	Phone   string `json:"company_phone"`
	Address string `json:"company_address"`
}

// GetCompany returns the user's company details. Unset fields come back
// empty; the receipt renderer applies its own placeholders.
func (s *CompanyService) GetCompany(ctx context.Context, userID uuid.UUID) (*CompanyDetails, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	details := &CompanyDetails{}
	if user.Company != nil {
		details.Name = *user.Company
	}
	if user.CompanyPhone != nil {
		details.Phone = *user.CompanyPhone
	}
	if user.CompanyAddress != nil {
		details.Address = *user.CompanyAddress
	}
	return details, nil
}

// UpdateCompanyInput represents the company details update. Nil fields
// are left unchanged; a blank string clears the field.
type UpdateCompanyInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// UpdateCompany updates the merchant details on the user record
func (s *CompanyService) UpdateCompany(ctx context.Context, userID uuid.UUID, input *UpdateCompanyInput) (*CompanyDetails, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		user.Company = normalizeOptional(input.Name)
	}
	if input.Phone != nil {
		user.CompanyPhone = normalizeOptional(input.Phone)
	}
	if input.Address != nil {
		user.CompanyAddress = normalizeOptional(input.Address)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetCompany(ctx, userID)
}
