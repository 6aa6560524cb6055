package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
}

func NewTaskHandler(taskUseCase *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{
		taskUseCase: taskUseCase,
	}
}

func (h *TaskHandler) Create(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.TaskInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	task, err := h.taskUseCase.Create(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, task)
}

func (h *TaskHandler) ListByOrphanage(c echo.Context) error {
	tasks, err := h.taskUseCase.ListByOrphanage(c.Request().Context(), c.Param("orphanageId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tasks)
}

func (h *TaskHandler) ListOwn(c echo.Context) error {
	session := sessionFrom(c)

	tasks, err := h.taskUseCase.ListOwn(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tasks)
}

func (h *TaskHandler) SignUp(c echo.Context) error {
	session := sessionFrom(c)

	task, err := h.taskUseCase.SignUp(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, task)
}

func (h *TaskHandler) LogHours(c echo.Context) error {
	session := sessionFrom(c)

	var req usecase.HoursInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	entry, err := h.taskUseCase.LogHours(c.Request().Context(), session, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, entry)
}

func (h *TaskHandler) ListOwnHours(c echo.Context) error {
	session := sessionFrom(c)

	entries, err := h.taskUseCase.ListOwnHours(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entries)
}

func (h *TaskHandler) ApproveHours(c echo.Context) error {
	session := sessionFrom(c)

	entry, err := h.taskUseCase.ApproveHours(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, entry)
}
