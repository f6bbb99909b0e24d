package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// imageOrdering keeps gallery rows deterministic: primary image first, then
// the explicit sort order, oldest row breaking ties.
const imageOrdering = "is_primary DESC, sort_order ASC, created_at ASC"

// Repository provides persistence for products and their images.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts the product together with its image rows.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for i := range product.Images {
		if product.Images[i].ID == uuid.Nil {
			product.Images[i].ID = uuid.New()
		}
		product.Images[i].ProductID = product.ID
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// UpdateProduct persists the mutated product columns.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"title":       product.Title,
			"slug":        product.Slug,
			"description": product.Description,
			"price_cents": product.PriceCents,
			"active":      product.Active,
		}).Error
}

// ReplaceImages swaps the product's full image set.
func (r *Repository) ReplaceImages(ctx context.Context, productID uuid.UUID, images []models.ProductImage) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		if images[i].ID == uuid.Nil {
			images[i].ID = uuid.New()
		}
		images[i].ProductID = productID
	}
	return tx.Create(&images).Error
}

// FindBySlug loads a product with its ordered images.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(imageOrdering)
		}).
		First(&product, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products newest-first, optionally filtered by a
// case-insensitive substring match over title or description.
func (r *Repository) List(ctx context.Context, search string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order(imageOrdering)
		}).
		Order("created_at DESC")
	if search = strings.TrimSpace(search); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SlugExists reports whether any product already owns the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SnapshotPrice reads the current price of an active product as a single
// consistent read, inside tx when one is given. Inactive or missing products
// surface as a product-unavailable error.
func (r *Repository) SnapshotPrice(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error) {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	var product models.Product
	err := conn.WithContext(ctx).
		Select("id", "price_cents").
		First(&product, "id = ? AND active = ?", productID, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product not found or inactive").
			WithDetails(map[string]any{"product_id": productID.String()})
	}
	if err != nil {
		return 0, err
	}
	return product.PriceCents, nil
}
