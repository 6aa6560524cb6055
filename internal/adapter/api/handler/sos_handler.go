package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
	"carebridge/pkg/utils"
)

type SOSHandler struct {
	sosUseCase *usecase.SOSUseCase
}

func NewSOSHandler(sosUseCase *usecase.SOSUseCase) *SOSHandler {
	return &SOSHandler{
		sosUseCase: sosUseCase,
	}
}

func (h *SOSHandler) Raise(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.SOSInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	alert, err := h.sosUseCase.Raise(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, alert)
}

func (h *SOSHandler) GetByID(c echo.Context) error {
	alert, err := h.sosUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, alert)
}

func (h *SOSHandler) List(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	alerts, total, err := h.sosUseCase.ListByStatus(c.Request().Context(), c.QueryParam("status"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, alerts, total, params.Page, params.PageSize)
}

func (h *SOSHandler) UpdateStatus(c echo.Context) error {
	session := sessionFrom(c)

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	alert, err := h.sosUseCase.Advance(c.Request().Context(), session, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, alert)
}
