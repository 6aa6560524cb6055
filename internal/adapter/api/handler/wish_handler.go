package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

type WishHandler struct {
	wishUseCase *usecase.WishUseCase
}

func NewWishHandler(wishUseCase *usecase.WishUseCase) *WishHandler {
	return &WishHandler{
		wishUseCase: wishUseCase,
	}
}

func (h *WishHandler) Create(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.WishInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	wish, err := h.wishUseCase.Create(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, wish)
}

func (h *WishHandler) ListByOrphanage(c echo.Context) error {
	wishes, err := h.wishUseCase.ListByOrphanage(c.Request().Context(), c.Param("orphanageId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wishes)
}

func (h *WishHandler) ListByChild(c echo.Context) error {
	wishes, err := h.wishUseCase.ListByChild(c.Request().Context(), c.Param("childId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wishes)
}

func (h *WishHandler) Claim(c echo.Context) error {
	session := sessionFrom(c)

	wish, err := h.wishUseCase.Claim(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wish)
}

func (h *WishHandler) Fulfill(c echo.Context) error {
	session := sessionFrom(c)

	wish, err := h.wishUseCase.Fulfill(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, wish)
}
