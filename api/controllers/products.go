package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/charmworks/charm-catalog-backend/api/responses"
	"github.com/charmworks/charm-catalog-backend/api/validators"
	"github.com/charmworks/charm-catalog-backend/internal/catalog"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
	"github.com/charmworks/charm-catalog-backend/pkg/logger"
)

// CreateProduct handles catalog product creation.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// GetProduct returns the product identified by its slug.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// UpdateProduct applies a partial update to the product identified by slug.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "slug"), payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListProducts returns the catalog, optionally filtered by ?search=.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), 200)
		products, err := svc.ListProducts(r.Context(), search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit > 0 && len(products) > limit {
			products = products[:limit]
		}

		responses.WriteSuccess(w, products)
	}
}

type createProductRequest struct {
	Title       string                `json:"title" validate:"required"`
	Slug        *string               `json:"slug,omitempty"`
	Description string                `json:"description,omitempty"`
	PriceCents  int                   `json:"price_cents" validate:"min=0"`
	Active      *bool                 `json:"active,omitempty"`
	Images      []productImageRequest `json:"product_images,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Title       *string                `json:"title,omitempty"`
	Slug        *string                `json:"slug,omitempty"`
	Description *string                `json:"description,omitempty"`
	PriceCents  *int                   `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	Active      *bool                  `json:"active,omitempty"`
	Images      *[]productImageRequest `json:"product_images,omitempty" validate:"omitempty,dive"`
}

type productImageRequest struct {
	URL       *string `json:"url,omitempty"`
	FileKey   *string `json:"file_key,omitempty"`
	IsPrimary bool    `json:"is_primary,omitempty"`
	SortOrder int     `json:"sort_order,omitempty" validate:"min=0"`
}

func (r createProductRequest) toCreateInput() catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Active:      r.Active,
		Images:      toImageInputs(r.Images),
	}
}

func (r updateProductRequest) toUpdateInput() catalog.UpdateProductInput {
	input := catalog.UpdateProductInput{
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		PriceCents:  r.PriceCents,
		Active:      r.Active,
	}
	if r.Images != nil {
		images := toImageInputs(*r.Images)
		if images == nil {
			images = []catalog.ImageInput{}
		}
		input.Images = images
	}
	return input
}

func toImageInputs(images []productImageRequest) []catalog.ImageInput {
	if images == nil {
		return nil
	}
	inputs := make([]catalog.ImageInput, 0, len(images))
	for _, img := range images {
		inputs = append(inputs, catalog.ImageInput{
			URL:       img.URL,
			FileKey:   img.FileKey,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}
	return inputs
}
