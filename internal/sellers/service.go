package sellers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmreyes-dev/stitchbay-backend/internal/auth"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/config"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/db"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/db/models"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/security"
)

// Service defines seller account operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Profile, error)
	GetProfile(ctx context.Context, sellerID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, sellerID uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	DeleteAccount(ctx context.Context, sellerID uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds a sellers service with the required dependencies.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sellers repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	if !req.SellerType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller_type must be solo or company")
	}
	if req.SellerType == enums.SellerTypeCompany {
		if isBlank(req.CompanyName) || isBlank(req.CompanyAddress) || isBlank(req.CompanyPhone) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "company sellers must provide company name, address, and phone")
		}
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	seller := &models.Seller{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		WhatsApp:     strings.TrimSpace(req.WhatsApp),
		Address:      strings.TrimSpace(req.Address),
		Country:      strings.TrimSpace(req.Country),
		City:         strings.TrimSpace(req.City),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		SellerType:   req.SellerType,
		PasswordHash: hash,
	}
	seller.ID = uuid.New()

	if req.SellerType == enums.SellerTypeCompany {
		seller.CompanyName = req.CompanyName
		seller.CompanyAddress = req.CompanyAddress
		seller.CompanyPhone = req.CompanyPhone
	}

	created, err := s.repo.Create(ctx, seller)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_sellers_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create seller")
	}

	return FromModel(created), nil
}

func (s *service) GetProfile(ctx context.Context, sellerID uuid.UUID) (*Profile, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	seller, err := s.repo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	return FromModel(seller), nil
}

func (s *service) UpdateProfile(ctx context.Context, sellerID uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	updates := map[string]any{}
	applyString(updates, "name", req.Name)
	applyString(updates, "phone", req.Phone)
	applyString(updates, "whatsapp", req.WhatsApp)
	applyString(updates, "address", req.Address)
	applyString(updates, "country", req.Country)
	applyString(updates, "city", req.City)
	applyString(updates, "postal_code", req.PostalCode)
	applyString(updates, "company_name", req.CompanyName)
	applyString(updates, "company_address", req.CompanyAddress)
	applyString(updates, "company_phone", req.CompanyPhone)

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, sellerID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update seller")
		}
	}

	return s.GetProfile(ctx, sellerID)
}

// DeleteAccount removes the seller row only. The seller's product listings
// and orders stay behind, which leaves catalog rows without an owner.
func (s *service) DeleteAccount(ctx context.Context, sellerID uuid.UUID) error {
	if sellerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}
	if _, err := s.repo.FindByID(ctx, sellerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	if err := s.repo.Delete(ctx, sellerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete seller")
	}
	return nil
}

func applyString(updates map[string]any, column string, value *string) {
	if value == nil {
		return
	}
	updates[column] = strings.TrimSpace(*value)
}

func isBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}

type credentialSource struct {
	repo Repository
}

// NewCredentialSource adapts the sellers repository for login lookups.
func NewCredentialSource(repo Repository) auth.CredentialSource {
	return &credentialSource{repo: repo}
}

func (c *credentialSource) FindCredentials(ctx context.Context, email string) (*auth.Credentials, error) {
	seller, err := c.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &auth.Credentials{AccountID: seller.ID, PasswordHash: seller.PasswordHash}, nil
}
