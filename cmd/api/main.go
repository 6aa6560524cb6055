package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"carebridge/internal/adapter/api"
	"carebridge/internal/adapter/api/handler"
	apimiddleware "carebridge/internal/adapter/api/middleware"
	"carebridge/internal/adapter/api/router"
	"carebridge/internal/adapter/repository"
	"carebridge/internal/domain/service"
	"carebridge/internal/infrastructure/firebase"
	"carebridge/internal/infrastructure/ratelimit"
	"carebridge/internal/infrastructure/storage"
	"carebridge/internal/infrastructure/websocket"
	"carebridge/internal/usecase"
	"carebridge/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	orphanageRepo := repository.NewFirestoreOrphanageRepository(firestoreClient)
	childRepo := repository.NewFirestoreChildRepository(firestoreClient)
	wishRepo := repository.NewFirestoreWishRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	sosRepo := repository.NewFirestoreSOSRepository(firestoreClient)
	taskRepo := repository.NewFirestoreTaskRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	wsManager := websocket.NewManager()

	gateways := map[string]service.PaymentGatewayService{
		"paystack":    service.NewPaystackService(cfg.PaystackSecretKey),
		"flutterwave": service.NewFlutterwaveService(cfg.FlutterwaveSecretKey),
	}

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	presenceUseCase := usecase.NewPresenceUseCase(userRepo)
	orphanageUseCase := usecase.NewOrphanageUseCase(orphanageRepo, userRepo)
	childUseCase := usecase.NewChildUseCase(childRepo, orphanageRepo)
	wishUseCase := usecase.NewWishUseCase(wishRepo, childRepo, orphanageRepo, userRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, orphanageRepo, childRepo, userRepo, gateways, cfg.BaseURL)
	contactUseCase := usecase.NewContactUseCase(userRepo, orphanageRepo, paymentRepo, chatRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, presenceUseCase, wsManager, rateLimiter)
	sosUseCase := usecase.NewSOSUseCase(sosRepo, userRepo, wsManager, rateLimiter)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, orphanageRepo, userRepo)

	// The chat use case handles connection lifecycle and client frames.
	wsManager.SetHandler(chatUseCase)
	wsManager.Start(ctx)

	handler.Setup(
		authUseCase,
		userUseCase,
		orphanageUseCase,
		childUseCase,
		wishUseCase,
		paymentUseCase,
		contactUseCase,
		chatUseCase,
		sosUseCase,
		taskUseCase,
	)
	handler.SetupFileHandler(storageClient)

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient, authUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
