package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
	"carebridge/pkg/utils"
)

type OrphanageHandler struct {
	orphanageUseCase *usecase.OrphanageUseCase
}

func NewOrphanageHandler(orphanageUseCase *usecase.OrphanageUseCase) *OrphanageHandler {
	return &OrphanageHandler{
		orphanageUseCase: orphanageUseCase,
	}
}

func (h *OrphanageHandler) Create(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.OrphanageInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	orphanage, err := h.orphanageUseCase.Create(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, orphanage)
}

func (h *OrphanageHandler) GetByID(c echo.Context) error {
	orphanage, err := h.orphanageUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orphanage)
}

func (h *OrphanageHandler) GetOwn(c echo.Context) error {
	session := sessionFrom(c)

	orphanage, err := h.orphanageUseCase.GetOwn(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orphanage)
}

func (h *OrphanageHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	orphanages, total, err := h.orphanageUseCase.List(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orphanages, total, params.Page, params.PageSize)
}

func (h *OrphanageHandler) Update(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.OrphanageInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	orphanage, err := h.orphanageUseCase.Update(c.Request().Context(), session, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orphanage)
}
