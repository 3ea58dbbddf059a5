package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/api/middleware"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
)

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

func contextAccountID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.AccountIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid account context")
	}
	return id, nil
}

// requireSelf enforces that the authenticated account matches the account
// addressed by the URL. Tokens decide identity, never path parameters.
func requireSelf(r *http.Request, paramName string) (uuid.UUID, error) {
	accountID, err := contextAccountID(r)
	if err != nil {
		return uuid.Nil, err
	}
	pathID, err := pathUUID(r, paramName)
	if err != nil {
		return uuid.Nil, err
	}
	if pathID != accountID {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "account mismatch")
	}
	return accountID, nil
}
