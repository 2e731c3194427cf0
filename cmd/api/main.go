package main

import (
	"context"
	"os"

	"keepnotes/internal/domain/sqlite"
	"keepnotes/internal/domain/sqlite/repository"
	handler2 "keepnotes/internal/http/handler"
	authmw "keepnotes/internal/http/middleware"
	awsstorage "keepnotes/internal/infrastructure/aws/storage"
	"keepnotes/internal/infrastructure/storage"
	"keepnotes/internal/service"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/keepnotes/prod/"

const mediaDir = "media"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	if err := utils.InitJWT(os.Getenv("JWT_SECRET")); err != nil {
		panic(err)
	}

	// Init SQLite
	db, err := sqlite.Init("database.db")
	if err != nil {
		panic(err)
	}

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("10M"))

	// Profile images: S3 in production, local disk served at /media otherwise
	var blobs storage.BlobStore
	if os.Getenv("GO_ENV") == "production" {
		blobs, err = awsstorage.NewStorageClient()
		if err != nil {
			panic(err)
		}
	} else {
		blobs, err = storage.NewDiskStore(mediaDir)
		if err != nil {
			panic(err)
		}
		e.Static("/media", mediaDir)
	}

	// Gettings repos
	noteRepo := repository.NewNoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Getting services
	profileService := service.NewProfileService(profileRepo, userRepo, blobs, validate)
	authService := service.NewAuthService(userRepo, profileService, validate)
	noteService := service.NewNoteService(noteRepo, validate)

	// Gettings handlers
	noteRoutes := handler2.NewNoteDefault(noteService)
	authRoutes := handler2.NewAuthDefault(authService)
	profileRoutes := handler2.NewProfileDefault(profileService)

	authRequired := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{UserRepo: userRepo})

	// Auth
	e.POST("/api/auth/signup", authRoutes.Signup)
	e.POST("/api/auth/login", authRoutes.Login)
	e.POST("/api/auth/logout", authRoutes.Logout)

	// Notes
	e.GET("/api/notes", noteRoutes.GetNotes, authRequired)
	e.GET("/api/notes/archive", noteRoutes.GetArchivedNotes, authRequired)
	e.GET("/api/notes/trash", noteRoutes.GetTrashedNotes, authRequired)
	e.GET("/api/notes/:id", noteRoutes.GetNote, authRequired)
	e.POST("/api/notes", noteRoutes.CreateNote, authRequired)
	e.PATCH("/api/notes/:id", noteRoutes.UpdateNote, authRequired)
	e.POST("/api/notes/:id/archive", noteRoutes.ArchiveNote, authRequired)
	e.POST("/api/notes/:id/unarchive", noteRoutes.UnarchiveNote, authRequired)
	e.POST("/api/notes/:id/trash", noteRoutes.TrashNote, authRequired)
	e.POST("/api/notes/:id/restore", noteRoutes.RestoreNote, authRequired)
	e.DELETE("/api/notes/trash", noteRoutes.EmptyTrash, authRequired)
	e.DELETE("/api/notes/:id", noteRoutes.DeleteNote, authRequired)

	// Profile
	e.GET("/api/profile", profileRoutes.GetProfile, authRequired)
	e.PATCH("/api/profile", profileRoutes.UpdateProfile, authRequired)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":7070"); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
