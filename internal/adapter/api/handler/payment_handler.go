package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.PaymentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUseCase.Initiate(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// Verify is hit by the client after the gateway redirects back.
func (h *PaymentHandler) Verify(c echo.Context) error {
	reference := c.Param("reference")
	if reference == "" {
		return response.Error(c, errors.BadRequest("Missing payment reference", nil))
	}

	payment, err := h.paymentUseCase.Verify(c.Request().Context(), reference)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) GetByID(c echo.Context) error {
	session := sessionFrom(c)

	payment, err := h.paymentUseCase.GetByID(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) ListOwn(c echo.Context) error {
	session := sessionFrom(c)

	payments, err := h.paymentUseCase.ListOwn(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payments)
}

func (h *PaymentHandler) ListForOrphanage(c echo.Context) error {
	session := sessionFrom(c)

	payments, err := h.paymentUseCase.ListForOrphanage(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payments)
}
