package handler

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/usecase"
)

var (
	authHandler      *AuthHandler
	userHandler      *UserHandler
	orphanageHandler *OrphanageHandler
	childHandler     *ChildHandler
	wishHandler      *WishHandler
	paymentHandler   *PaymentHandler
	contactHandler   *ContactHandler
	chatHandler      *ChatHandler
	sosHandler       *SOSHandler
	taskHandler      *TaskHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	orphanageUseCase *usecase.OrphanageUseCase,
	childUseCase *usecase.ChildUseCase,
	wishUseCase *usecase.WishUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	contactUseCase *usecase.ContactUseCase,
	chatUseCase *usecase.ChatUseCase,
	sosUseCase *usecase.SOSUseCase,
	taskUseCase *usecase.TaskUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	orphanageHandler = NewOrphanageHandler(orphanageUseCase)
	childHandler = NewChildHandler(childUseCase)
	wishHandler = NewWishHandler(wishUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	contactHandler = NewContactHandler(contactUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	sosHandler = NewSOSHandler(sosUseCase)
	taskHandler = NewTaskHandler(taskUseCase)
}

func GetAuthHandler() *AuthHandler           { return authHandler }
func GetUserHandler() *UserHandler           { return userHandler }
func GetOrphanageHandler() *OrphanageHandler { return orphanageHandler }
func GetChildHandler() *ChildHandler         { return childHandler }
func GetWishHandler() *WishHandler           { return wishHandler }
func GetPaymentHandler() *PaymentHandler     { return paymentHandler }
func GetContactHandler() *ContactHandler     { return contactHandler }
func GetChatHandler() *ChatHandler           { return chatHandler }
func GetSOSHandler() *SOSHandler             { return sosHandler }
func GetTaskHandler() *TaskHandler           { return taskHandler }

// sessionFrom pulls the session set by the auth middleware. Routes behind
// Authenticate always have one.
func sessionFrom(c echo.Context) *usecase.Session {
	session, _ := c.Get("session").(*usecase.Session)
	return session
}
