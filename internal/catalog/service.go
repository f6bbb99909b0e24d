package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/charmworks/charm-catalog-backend/pkg/db"
	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, slug string, input UpdateProductInput) (*ProductDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListProducts(ctx context.Context, search string) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title       string
	Slug        *string
	Description string
	PriceCents  int
	Active      *bool
	Images      []ImageInput
}

// UpdateProductInput holds the partial payload for a product update. Nil
// fields are left untouched; a non-nil Images slice replaces the gallery.
type UpdateProductInput struct {
	Title       *string
	Slug        *string
	Description *string
	PriceCents  *int
	Active      *bool
	Images      []ImageInput
}

// ImageInput describes one gallery image. Exactly one of URL or FileKey
// must be set.
type ImageInput struct {
	URL       *string
	FileKey   *string
	IsPrimary bool
	SortOrder int
}

type service struct {
	repo            *Repository
	dbClient        *db.Client
	slugMaxAttempts int
}

// NewService wires the catalog service with its persistence dependencies.
func NewService(repo *Repository, dbClient *db.Client, slugMaxAttempts int) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository is required")
	}
	if dbClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client is required")
	}
	if slugMaxAttempts < 1 {
		slugMaxAttempts = 1
	}
	return &service{repo: repo, dbClient: dbClient, slugMaxAttempts: slugMaxAttempts}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_cents must not be negative")
	}
	images, err := buildImages(input.Images)
	if err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	explicitSlug := ""
	if input.Slug != nil {
		explicitSlug = strings.TrimSpace(*input.Slug)
	}
	if explicitSlug != "" && !isValidSlug(explicitSlug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug may only contain lowercase letters, digits, and hyphens")
	}

	var created *models.Product
	createTx := func(ctx context.Context) error {
		return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			slug := explicitSlug
			if slug == "" {
				var err error
				if slug, err = nextFreeSlug(ctx, txRepo, slugify(title)); err != nil {
					return err
				}
			} else if taken, err := txRepo.SlugExists(ctx, slug); err != nil {
				return err
			} else if taken {
				return pkgerrors.New(pkgerrors.CodeConflict, "slug is already in use")
			}
			product := &models.Product{
				Title:       title,
				Slug:        slug,
				Description: strings.TrimSpace(input.Description),
				PriceCents:  input.PriceCents,
				Active:      active,
				Images:      cloneImages(images),
			}
			if err := txRepo.CreateProduct(ctx, product); err != nil {
				return err
			}
			created = product
			return nil
		})
	}

	if explicitSlug != "" {
		// A caller-chosen slug never gets a suffix; a duplicate is a hard
		// conflict rather than a retry.
		if err := createTx(ctx); err != nil {
			if db.IsUniqueViolation(err) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug is already in use")
			}
			return nil, err
		}
		return s.reload(ctx, created.Slug)
	}

	// Derived slugs can race between the availability probe and the insert.
	// The unique index is the arbiter; losing the race retries the whole
	// transaction with a freshly probed candidate.
	backoff := retry.WithMaxRetries(uint64(s.slugMaxAttempts-1), retry.NewConstant(10*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := createTx(ctx); err != nil {
			if db.IsUniqueViolation(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "could not assign a unique slug")
		}
		return nil, err
	}
	return s.reload(ctx, created.Slug)
}

func (s *service) UpdateProduct(ctx context.Context, slug string, input UpdateProductInput) (*ProductDTO, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must not be empty")
	}
	if input.PriceCents != nil && *input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_cents must not be negative")
	}
	var images []models.ProductImage
	if input.Images != nil {
		var err error
		if images, err = buildImages(input.Images); err != nil {
			return nil, err
		}
	}

	var updatedSlug string
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		product, err := txRepo.FindBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if input.Title != nil {
			product.Title = strings.TrimSpace(*input.Title)
		}
		if input.Slug != nil {
			next := strings.TrimSpace(*input.Slug)
			if next == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "slug must not be empty")
			}
			if !isValidSlug(next) {
				return pkgerrors.New(pkgerrors.CodeValidation, "slug may only contain lowercase letters, digits, and hyphens")
			}
			if next != product.Slug {
				if taken, err := txRepo.SlugExists(ctx, next); err != nil {
					return err
				} else if taken {
					return pkgerrors.New(pkgerrors.CodeConflict, "slug is already in use")
				}
				product.Slug = next
			}
		}
		if input.Description != nil {
			product.Description = strings.TrimSpace(*input.Description)
		}
		if input.PriceCents != nil {
			product.PriceCents = *input.PriceCents
		}
		if input.Active != nil {
			product.Active = *input.Active
		}
		if err := txRepo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		if input.Images != nil {
			if err := txRepo.ReplaceImages(ctx, product.ID, images); err != nil {
				return err
			}
		}
		updatedSlug = product.Slug
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slug is already in use")
		}
		return nil, err
	}
	return s.reload(ctx, updatedSlug)
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, search string) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return toProductDTOs(products), nil
}

func (s *service) reload(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

// nextFreeSlug probes base, base-1, base-2, ... until an unused candidate
// is found.
func nextFreeSlug(ctx context.Context, repo *Repository, base string) (string, error) {
	for counter := 0; ; counter++ {
		candidate := slugCandidate(base, counter)
		taken, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func buildImages(inputs []ImageInput) ([]models.ProductImage, error) {
	images := make([]models.ProductImage, 0, len(inputs))
	primaries := 0
	for i, in := range inputs {
		hasURL := in.URL != nil && strings.TrimSpace(*in.URL) != ""
		hasKey := in.FileKey != nil && strings.TrimSpace(*in.FileKey) != ""
		if hasURL == hasKey {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "each image needs exactly one of url or file_key").
				WithDetails(map[string]any{"index": i})
		}
		if in.IsPrimary {
			primaries++
		}
		images = append(images, models.ProductImage{
			URL:       in.URL,
			FileKey:   in.FileKey,
			IsPrimary: in.IsPrimary,
			SortOrder: in.SortOrder,
		})
	}
	if primaries > 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at most one image may be primary")
	}
	return images, nil
}

func cloneImages(images []models.ProductImage) []models.ProductImage {
	out := make([]models.ProductImage, len(images))
	copy(out, images)
	return out
}
