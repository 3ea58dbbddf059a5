package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmreyes-dev/stitchbay-backend/api/responses"
	"github.com/jmreyes-dev/stitchbay-backend/api/validators"
	productsvc "github.com/jmreyes-dev/stitchbay-backend/internal/products"
	pkgerrors "github.com/jmreyes-dev/stitchbay-backend/pkg/errors"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/logger"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/pagination"
	"github.com/jmreyes-dev/stitchbay-backend/pkg/storage/local"
)

const multipartMemoryLimit = 32 << 20

// imageStore is the slice of the uploads store the product handlers need.
type imageStore interface {
	SaveAll(headers []*multipart.FileHeader) ([]string, error)
	RemoveAll(urls []string)
}

func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			params.Limit = limit
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func ProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ProductCreate accepts a multipart form: text fields describe the listing
// and the "images" files are written to the uploads store before the row is
// created. Uploaded files are removed again when the create fails.
func ProductCreate(svc productsvc.Service, store imageStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := contextAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		price, err := parsePrice(r.FormValue("price"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := productsvc.CreateRequest{
			Name:        strings.TrimSpace(r.FormValue("name")),
			Price:       price,
			Material:    strings.TrimSpace(r.FormValue("material")),
			Description: strings.TrimSpace(r.FormValue("description")),
			Category:    strings.TrimSpace(r.FormValue("category")),
		}

		uploaded, err := saveImages(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		req.Images = uploaded

		if err := validators.ValidateStruct(&req); err != nil {
			store.RemoveAll(uploaded)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Create(r.Context(), sellerID, req)
		if err != nil {
			store.RemoveAll(uploaded)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// ProductUpdate mirrors create but every field is optional. Text fields left
// out of the form keep their value; sending new image files replaces the
// listing's pictures.
func ProductUpdate(svc productsvc.Service, store imageStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := contextAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		var req productsvc.UpdateRequest
		applyFormString(r, "name", &req.Name)
		applyFormString(r, "material", &req.Material)
		applyFormString(r, "description", &req.Description)
		applyFormString(r, "category", &req.Category)

		if raw, ok := formValue(r, "price"); ok {
			price, err := parsePrice(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			req.Price = &price
		}

		uploaded, err := saveImages(r, store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(uploaded) > 0 {
			req.Images = uploaded
		}

		if err := validators.ValidateStruct(&req); err != nil {
			store.RemoveAll(uploaded)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Update(r.Context(), sellerID, productID, req)
		if err != nil {
			store.RemoveAll(uploaded)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := contextAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), sellerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func saveImages(r *http.Request, store imageStore) ([]string, error) {
	if r.MultipartForm == nil || store == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		return nil, nil
	}

	urls, err := store.SaveAll(headers)
	if err != nil {
		if errors.Is(err, local.ErrUnsupportedType) || errors.Is(err, local.ErrTooLarge) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "rejected upload")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store uploads")
	}
	return urls, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	return price, nil
}

func formValue(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func applyFormString(r *http.Request, name string, dest **string) {
	if raw, ok := formValue(r, name); ok {
		trimmed := strings.TrimSpace(raw)
		*dest = &trimmed
	}
}
