package buyers

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
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/security"
)

// Service defines buyer account operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Profile, error)
	GetProfile(ctx context.Context, buyerID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, buyerID uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	DeleteAccount(ctx context.Context, buyerID uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds a buyers service with the required dependencies.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("buyers repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	buyer := &models.Buyer{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		WhatsApp:     req.WhatsApp,
		Address:      strings.TrimSpace(req.Address),
		Country:      strings.TrimSpace(req.Country),
		City:         strings.TrimSpace(req.City),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		PasswordHash: hash,
	}
	buyer.ID = uuid.New()

	created, err := s.repo.Create(ctx, buyer)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_buyers_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create buyer")
	}

	return FromModel(created), nil
}

func (s *service) GetProfile(ctx context.Context, buyerID uuid.UUID) (*Profile, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}
	buyer, err := s.repo.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load buyer")
	}
	return FromModel(buyer), nil
}

func (s *service) UpdateProfile(ctx context.Context, buyerID uuid.UUID, req UpdateProfileRequest) (*Profile, error) {
	if buyerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}

	updates := map[string]any{}
	applyString(updates, "name", req.Name)
	applyString(updates, "phone", req.Phone)
	applyString(updates, "address", req.Address)
	applyString(updates, "country", req.Country)
	applyString(updates, "city", req.City)
	applyString(updates, "postal_code", req.PostalCode)
	if req.WhatsApp != nil {
		updates["whatsapp"] = strings.TrimSpace(*req.WhatsApp)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, buyerID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update buyer")
		}
	}

	return s.GetProfile(ctx, buyerID)
}

// DeleteAccount removes the buyer row only. Cart lines and orders created by
// the buyer are left in place.
func (s *service) DeleteAccount(ctx context.Context, buyerID uuid.UUID) error {
	if buyerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "buyer identity missing")
	}
	if _, err := s.repo.FindByID(ctx, buyerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "buyer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load buyer")
	}
	if err := s.repo.Delete(ctx, buyerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete buyer")
	}
	return nil
}

func applyString(updates map[string]any, column string, value *string) {
	if value == nil {
		return
	}
	updates[column] = strings.TrimSpace(*value)
}

type credentialSource struct {
	repo Repository
}

// NewCredentialSource adapts the buyers repository for login lookups.
func NewCredentialSource(repo Repository) auth.CredentialSource {
	return &credentialSource{repo: repo}
}

func (c *credentialSource) FindCredentials(ctx context.Context, email string) (*auth.Credentials, error) {
	buyer, err := c.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &auth.Credentials{AccountID: buyer.ID, PasswordHash: buyer.PasswordHash}, nil
}
