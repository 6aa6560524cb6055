package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	session := sessionFrom(c)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), session.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	session := sessionFrom(c)

	var req struct {
		DisplayName string `json:"display_name"`
		Phone       string `json:"phone" validate:"omitempty,e164"`
		PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
		Skills      string `json:"skills"`
		CVURL       string `json:"cv_url" validate:"omitempty,url"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), session.UserID, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
		Skills:      req.Skills,
		CVURL:       req.CVURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ListVolunteers(c echo.Context) error {
	orphanageID := c.Param("orphanageId")

	volunteers, err := h.userUseCase.ListVolunteers(c.Request().Context(), orphanageID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, volunteers)
}

func (h *UserHandler) AssignVolunteer(c echo.Context) error {
	session := sessionFrom(c)

	var req struct {
		VolunteerID string `json:"volunteer_id" validate:"required"`
		OrphanageID string `json:"orphanage_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.AssignVolunteer(c.Request().Context(), session, req.VolunteerID, req.OrphanageID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Volunteer assigned",
	})
}

func (h *UserHandler) DismissVolunteer(c echo.Context) error {
	session := sessionFrom(c)
	volunteerID := c.Param("id")

	if err := h.userUseCase.DismissVolunteer(c.Request().Context(), session, volunteerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Volunteer dismissed",
	})
}
