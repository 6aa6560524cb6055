package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

type ChildHandler struct {
	childUseCase *usecase.ChildUseCase
}

func NewChildHandler(childUseCase *usecase.ChildUseCase) *ChildHandler {
	return &ChildHandler{
		childUseCase: childUseCase,
	}
}

func (h *ChildHandler) Create(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.ChildInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	child, err := h.childUseCase.Create(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, child)
}

func (h *ChildHandler) GetByID(c echo.Context) error {
	child, err := h.childUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, child)
}

func (h *ChildHandler) ListByOrphanage(c echo.Context) error {
	children, err := h.childUseCase.ListByOrphanage(c.Request().Context(), c.Param("orphanageId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, children)
}

func (h *ChildHandler) Update(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.ChildInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	child, err := h.childUseCase.Update(c.Request().Context(), session, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, child)
}

func (h *ChildHandler) Delete(c echo.Context) error {
	session := sessionFrom(c)

	if err := h.childUseCase.Delete(c.Request().Context(), session, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Child record removed",
	})
}

func (h *ChildHandler) AttachDocument(c echo.Context) error {
	session := sessionFrom(c)

	var req struct {
		Name string `json:"name" validate:"required"`
		Type string `json:"type" validate:"required"`
		URL  string `json:"url" validate:"required,url"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	child, err := h.childUseCase.AttachDocument(c.Request().Context(), session, c.Param("id"), req.Name, req.Type, req.URL)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, child)
}
