package contacts

import (
	"time"

	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ContactRequestDTO is the API projection of an inbound message.
type ContactRequestDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func toContactRequestDTO(request *models.ContactRequest) *ContactRequestDTO {
	return &ContactRequestDTO{
		ID:        request.ID,
		FullName:  request.FullName,
		Email:     request.Email,
		Phone:     request.Phone,
		Message:   request.Message,
		CreatedAt: request.CreatedAt,
	}
}
