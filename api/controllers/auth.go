package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jmreyes-dev/stitchbay-backend/api/middleware"
	"github.com/jmreyes-dev/stitchbay-backend/api/responses"
	"github.com/jmreyes-dev/stitchbay-backend/api/validators"
	"github.com/jmreyes-dev/stitchbay-backend/internal/auth"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
)

// ProfileLoader fetches the account projection for a freshly authenticated
// account. Buyers and sellers plug in their own service here.
type ProfileLoader func(ctx context.Context, accountID uuid.UUID) (any, error)

// sessionResponse pairs an account projection with its token set. Register
// and login both answer with this shape.
type sessionResponse struct {
	Profile any             `json:"profile"`
	Tokens  *auth.TokenPair `json:"tokens"`
}

// Login wires a role-scoped login endpoint into the HTTP layer. Buyers and
// sellers share the flow but authenticate against different tables.
func Login(svc auth.Service, role enums.AccountRole, loadProfile ProfileLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || loadProfile == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tokens, err := svc.Login(r.Context(), role, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := loadProfile(r.Context(), tokens.AccountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessionResponse{Profile: profile, Tokens: tokens})
	}
}

func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Refresh(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if err := svc.Logout(r.Context(), accessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
