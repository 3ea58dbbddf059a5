package controllers

import (
	"net/http"

	"github.com/jmreyes-dev/stitchbay-backend/api/middleware"
	"github.com/jmreyes-dev/stitchbay-backend/api/responses"
	"github.com/jmreyes-dev/stitchbay-backend/api/validators"
	"github.com/jmreyes-dev/stitchbay-backend/internal/auth"
	"github.com/jmreyes-dev/stitchbay-backend/internal/buyers"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
)

// BuyerRegister creates the account and signs the buyer in with one call.
func BuyerRegister(svc buyers.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || authSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "buyer service unavailable"))
			return
		}

		var body buyers.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tokens, err := authSvc.IssueTokens(r.Context(), profile.ID, enums.AccountRoleBuyer)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{Profile: profile, Tokens: tokens})
	}
}

func BuyerProfile(svc buyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, err := requireSelf(r, "buyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), buyerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

func BuyerUpdate(svc buyers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, err := requireSelf(r, "buyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body buyers.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), buyerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// BuyerDelete removes the account and ends the session that issued the call.
func BuyerDelete(svc buyers.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buyerID, err := requireSelf(r, "buyerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAccount(r.Context(), buyerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if authSvc != nil {
			if accessID := middleware.AccessIDFromContext(r.Context()); accessID != "" {
				_ = authSvc.Logout(r.Context(), accessID)
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
