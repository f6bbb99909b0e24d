package catalog

import (
	"time"

	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ProductDTO is the API projection of a catalog product.
type ProductDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	PriceCents  int               `json:"price_cents"`
	Active      bool              `json:"active"`
	Images      []ProductImageDTO `json:"product_images"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProductImageDTO is the API projection of a gallery image.
type ProductImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       *string   `json:"url"`
	FileKey   *string   `json:"file_key"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProductDTO maps a product row to its API projection.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		Title:       product.Title,
		Slug:        product.Slug,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Active:      product.Active,
		Images:      make([]ProductImageDTO, 0, len(product.Images)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, img := range product.Images {
		dto.Images = append(dto.Images, ProductImageDTO{
			ID:        img.ID,
			ProductID: img.ProductID,
			URL:       img.URL,
			FileKey:   img.FileKey,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
			CreatedAt: img.CreatedAt,
		})
	}
	return dto
}

func toProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos
}
