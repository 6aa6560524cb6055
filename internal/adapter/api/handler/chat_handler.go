package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
	"carebridge/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	session := sessionFrom(c)

	chats, err := h.chatUseCase.GetUserChats(c.Request().Context(), session)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

// OpenChat resolves (or creates) the conversation with another user.
func (h *ChatHandler) OpenChat(c echo.Context) error {
	session := sessionFrom(c)

	var req struct {
		UserID string `json:"user_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	chat, err := h.chatUseCase.OpenChat(c.Request().Context(), session, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	session := sessionFrom(c)
	params := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), session, c.Param("id"), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, params.Page, params.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	session := sessionFrom(c)

	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), session, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	session := sessionFrom(c)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), session, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Chat marked as read",
	})
}
