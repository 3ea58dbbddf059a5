package controllers

import (
	"net/http"

	"github.com/jmreyes-dev/stitchbay-backend/api/middleware"
	"github.com/jmreyes-dev/stitchbay-backend/api/responses"
	"github.com/jmreyes-dev/stitchbay-backend/api/validators"
	"github.com/jmreyes-dev/stitchbay-backend/internal/auth"
	"github.com/jmreyes-dev/stitchbay-backend/internal/sellers"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/enums"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
)

// SellerRegister creates the account and signs the seller in with one call.
func SellerRegister(svc sellers.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || authSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seller service unavailable"))
			return
		}

		var body sellers.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tokens, err := authSvc.IssueTokens(r.Context(), profile.ID, enums.AccountRoleSeller)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{Profile: profile, Tokens: tokens})
	}
}

func SellerProfile(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := requireSelf(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

func SellerUpdate(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := requireSelf(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sellers.UpdateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), sellerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// SellerDelete removes the account and ends the session that issued the
// call. Listings stay in the catalog without an owner.
func SellerDelete(svc sellers.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := requireSelf(r, "sellerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAccount(r.Context(), sellerID); err != nil {
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
