package controllers

import (
	"net/http"

	"github.com/charmworks/charm-catalog-backend/api/responses"
	"github.com/charmworks/charm-catalog-backend/api/validators"
	contactsvc "github.com/charmworks/charm-catalog-backend/internal/contacts"
	pkgerrors "github.com/charmworks/charm-catalog-backend/pkg/errors"
	"github.com/charmworks/charm-catalog-backend/pkg/logger"
)

// CreateContactRequest stores an inbound customer message.
func CreateContactRequest(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var payload createContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.CreateContactRequest(r.Context(), contactsvc.CreateContactRequestInput{
			FullName: payload.FullName,
			Email:    payload.Email,
			Phone:    payload.Phone,
			Message:  validators.SanitizeString(payload.Message, 5000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ListContactRequests returns the inbox, newest first.
func ListContactRequests(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		requests, err := svc.ListContactRequests(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, requests)
	}
}

type createContactRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty"`
	Message  string  `json:"message" validate:"required"`
}
