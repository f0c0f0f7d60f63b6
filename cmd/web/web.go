package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/navbryce/yatube/app"
	"github.com/navbryce/yatube/config"
	"github.com/navbryce/yatube/controllers"
	"github.com/navbryce/yatube/db"
	"github.com/navbryce/yatube/db/memory"
	"github.com/navbryce/yatube/db/planetscale"
	"github.com/navbryce/yatube/logging"
	"github.com/navbryce/yatube/middleware"
	"github.com/navbryce/yatube/routes"
	"github.com/navbryce/yatube/services"
	"go.uber.org/zap"
)

func main() {
	// a .env file is optional and never overrides the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("could not read .env: ", err)
	}
	cfg, err := config.Parse()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}
	logger, err := logging.New(cfg.IsRelease())
	if err != nil {
		log.Fatal("could not build the logger: ", err)
	}

	// run returns only after its deferred cleanup, so exit after syncing
	err = run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("web server stopped", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	database, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("error connecting to the DB: %w", err)
	}
	defer database.Close()

	if err := configureFirebaseCredentials(logger); err != nil {
		return fmt.Errorf("error configuring firebase credentials: %w", err)
	}
	firebaseApp, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return fmt.Errorf("error initializing firebase: %w", err)
	}
	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("error initializing auth client: %w", err)
	}

	var attachments services.AttachmentStore
	if cfg.UploadsBucket != "" {
		attachments, err = services.NewStorageBucket(ctx, firebaseApp, cfg.UploadsBucket)
		if err != nil {
			return fmt.Errorf("error connecting to the uploads bucket: %w", err)
		}
	} else {
		logger.Warn("UPLOADS_BUCKET is not set, keeping uploads in memory")
		attachments = services.NewMemoryAttachmentStore()
	}

	groupController, err := controllers.NewGroupController(ctx, database, controllers.GroupsUpdateInterval)
	if err != nil {
		return fmt.Errorf("error initializing the group controller: %w", err)
	}
	graph := app.NewFollowGraph(database)
	feed := app.NewFeedAssembler(database, graph, cfg.PageSize)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(logger))
	r.Use(gin.Recovery())
	if len(cfg.FEOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.FEOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	if err := routes.Register(r, &routes.Deps{
		DB:            database,
		Feed:          feed,
		Follows:       graph,
		Index:         controllers.NewIndexController(feed, cfg.IndexCacheTTL, time.Now),
		Groups:        groupController,
		AuthClient:    authClient,
		Attachments:   attachments,
		Firebase:      firebaseWebConfig(cfg, logger),
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.IsRelease(),
	}); err != nil {
		return fmt.Errorf("error registering routes: %w", err)
	}

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("store", string(cfg.Store)))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("error running the web server: %w", err)
	}
	return nil
}

func firebaseWebConfig(cfg *config.Config, logger *zap.Logger) *routes.FirebaseWebConfig {
	if cfg.FirebaseAPIKey == "" {
		logger.Warn("FIREBASE_API_KEY is not set, the login page cannot sign in")
		return nil
	}
	return &routes.FirebaseWebConfig{
		APIKey:     cfg.FirebaseAPIKey,
		AuthDomain: cfg.FirebaseAuthDomain,
		ProjectID:  cfg.FirebaseProjectID,
	}
}

func openDatabase(cfg *config.Config) (db.Database, error) {
	if cfg.Store == config.StoreMemory {
		return memory.New(time.Now), nil
	}
	return planetscale.GetDatabase(&planetscale.Config{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Name:     cfg.DBName,
		MaxConns: cfg.DBMaxConns,
		TLS:      cfg.DBTLS,
	})
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

// configureFirebaseCredentials accepts the service account either as a path
// or as a JSON string, which is written to TargetCredentialsFile
func configureFirebaseCredentials(logger *zap.Logger) error {
	if credentialsPath, ok := os.LookupEnv(CredentialsPathEnvVar); ok {
		logger.Info("credentials path detected in env", zap.String("path", credentialsPath))
		return nil
	}
	credentialsJson, ok := os.LookupEnv(CredentialsJsonEnvVar)
	if !ok {
		return fmt.Errorf("must specify either %v (a path)"+
			" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
	}
	logger.Info("credentials JSON string detected in env")
	if err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400); err != nil {
		return fmt.Errorf("error writing credentials to temp file, %w", err)
	}
	if err := os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile); err != nil {
		return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
	}
	return nil
}
