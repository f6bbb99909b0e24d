package contacts

import (
	"context"

	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository provides persistence for inbound contact requests.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the contact request.
func (r *Repository) Create(ctx context.Context, request *models.ContactRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(request).Error
}

// List returns all contact requests, newest first.
func (r *Repository) List(ctx context.Context) ([]models.ContactRequest, error) {
	var requests []models.ContactRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
