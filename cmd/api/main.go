package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"immomarket/internal/adapter/api"
	"immomarket/internal/adapter/api/handler"
	apimiddleware "immomarket/internal/adapter/api/middleware"
	"immomarket/internal/adapter/api/router"
	"immomarket/internal/adapter/repository"
	"immomarket/internal/infrastructure/firebase"
	"immomarket/internal/infrastructure/live"
	"immomarket/internal/infrastructure/ratelimit"
	"immomarket/internal/infrastructure/storage"
	"immomarket/internal/infrastructure/websocket"
	"immomarket/internal/usecase"
	"immomarket/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	adminAuthClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.ServiceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	propertyRepo := repository.NewFirestorePropertyRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(adminAuthClient, cfg.FirebaseApiKey)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	liveFeeds := live.NewService(firestoreClient, userRepo, chatRepo)
	wsMessageHandler := websocket.NewSubscriptionHandler(liveFeeds)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, userRepo, storageClient)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, propertyRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, propertyRepo, userRepo, rateLimiter, wsManager)

	handler.Setup(
		authUseCase,
		userUseCase,
		propertyUseCase,
		favoriteUseCase,
		chatUseCase,
		storageClient,
		wsManager,
		wsMessageHandler,
		cfg.Environment,
	)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(rateLimiter)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware, firebaseAuthClient)

	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
