package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/response"
)

type ContactHandler struct {
	contactUseCase *usecase.ContactUseCase
}

func NewContactHandler(contactUseCase *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
	}
}

// List resolves the role-scoped contact list for the current session.
func (h *ContactHandler) List(c echo.Context) error {
	session := sessionFrom(c)

	contacts, err := h.contactUseCase.ResolveContacts(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, contacts)
}
