package buyers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jmreyes-dev/stitchbay-backend/pkg/config"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func registerRequest() RegisterRequest {
	whatsapp := "+31612345678"
	return RegisterRequest{
		Name:       "Ada Buyer",
		Email:      "Ada@Example.com",
		Password:   "super-secret-pw",
		Phone:      "+31612345600",
		WhatsApp:   &whatsapp,
		Address:    "Main Street 1",
		Country:    "Netherlands",
		City:       "Utrecht",
		PostalCode: "3511AB",
	}
}

func TestRegisterNormalizesEmailAndHidesHash(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	profile, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", profile.Email)
	require.NotEqual(t, uuid.Nil, profile.ID)

	repo := NewRepository(conn)
	stored, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "super-secret-pw", stored.PasswordHash)

	ok, err := security.VerifyPassword("super-secret-pw", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	profile, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	city := "Amsterdam"
	updated, err := svc.UpdateProfile(context.Background(), profile.ID, UpdateProfileRequest{
		City: &city,
	})
	require.NoError(t, err)
	require.Equal(t, "Amsterdam", updated.City)
	require.Equal(t, profile.Name, updated.Name)
	require.Equal(t, profile.Phone, updated.Phone)
}

func TestGetProfileUnknownBuyerIsNotFound(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCredentialSourceExposesHash(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	profile, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	source := NewCredentialSource(NewRepository(conn))
	creds, err := source.FindCredentials(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, profile.ID, creds.AccountID)
	require.NotEmpty(t, creds.PasswordHash)
}

func TestDeleteAccountRemovesBuyer(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	profile, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), profile.ID))

	_, err = svc.GetProfile(context.Background(), profile.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteAccountUnknownBuyerIsNotFound(t *testing.T) {
	conn := setupBuyersTestDB(t)
	svc, err := NewService(NewRepository(conn), testPasswordConfig())
	require.NoError(t, err)

	err = svc.DeleteAccount(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
