package contacts

import (
	"context"
	"strings"

	"github.com/charmworks/charm-catalog-backend/pkg/db/models"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
)

// Service exposes contact inbox operations.
type Service interface {
	CreateContactRequest(ctx context.Context, input CreateContactRequestInput) (*ContactRequestDTO, error)
	ListContactRequests(ctx context.Context) ([]ContactRequestDTO, error)
}

// CreateContactRequestInput holds the validated payload for a new message.
type CreateContactRequestInput struct {
	FullName string
	Email    string
	Phone    *string
	Message  string
}

type service struct {
	repo *Repository
}

// NewService wires the contact service with its repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "contacts repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateContactRequest(ctx context.Context, input CreateContactRequestInput) (*ContactRequestDTO, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	request := &models.ContactRequest{
		FullName: fullName,
		Email:    email,
		Phone:    input.Phone,
		Message:  message,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}
	return toContactRequestDTO(request), nil
}

func (s *service) ListContactRequests(ctx context.Context) ([]ContactRequestDTO, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ContactRequestDTO, 0, len(requests))
	for i := range requests {
		dtos = append(dtos, *toContactRequestDTO(&requests[i]))
	}
	return dtos, nil
}
