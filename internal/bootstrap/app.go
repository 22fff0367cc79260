package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"warranty-backend/internal/documents"
	"warranty-backend/internal/extraction"
	"warranty-backend/internal/llm"
	"warranty-backend/internal/llm/groq"
	"warranty-backend/internal/notify"
	"warranty-backend/internal/reminders"
	"warranty-backend/internal/shared/config"
	"warranty-backend/internal/shared/server"
	"warranty-backend/internal/shared/storage/db"
	"warranty-backend/internal/shared/storage/object"
	localstore "warranty-backend/internal/shared/storage/object/local"
	s3store "warranty-backend/internal/shared/storage/object/s3"
	"warranty-backend/internal/users"
)

// App holds the wired application: repositories, services, the reminder
// poller and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	DocumentsRepo documents.DocumentsRepo
	UsersRepo     users.Repo
	RemindersRepo reminders.Repo

	DocumentsService *documents.Service
	UsersService     *users.Service
	Orchestrator     *extraction.Orchestrator
	Scheduler        *reminders.Scheduler
	Notifier         reminders.Notifier
	Poller           *reminders.Poller

	DocumentsHandler *documents.Handler
	UsersHandler     *users.Handler
}

// Build prepares all dependencies and the router. In dev mode a missing
// database, LLM key or email key downgrades to in-memory repositories,
// a placeholder model client and log-only email delivery, so the whole
// flow runs locally with zero external services.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentsHandler,
		UserHandler:     app.UsersHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "groq" {
		return llm.PlaceholderClient{}, nil
	}

	apiKey := strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	if apiKey == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: GROQ_API_KEY empty; extraction disabled")
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}

	return groq.NewClient(apiKey, cfg.LLMTextModel, cfg.LLMVisionModel, cfg.LLMTimeout)
}

func buildServices(app *App) {
	cfg := app.Config

	var docRepo documents.DocumentsRepo
	var userRepo users.Repo
	var remRepo reminders.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
		remRepo = &reminders.PGRepo{DB: app.DB}
	} else {
		memDocs := documents.NewMemoryRepo()
		memUsers := users.NewMemoryRepo()
		docRepo = memDocs
		userRepo = memUsers
		remRepo = reminders.NewMemoryRepo(memDocs, memUsers)
	}

	scheduler := &reminders.Scheduler{Repo: remRepo}

	orchestrator := &extraction.Orchestrator{
		LLM:       app.LLM,
		Store:     app.Store,
		Docs:      docRepo,
		Scheduler: scheduler,
		Timeout:   cfg.LLMTimeout,
	}

	notifier := notify.NewEmailSender(
		os.Getenv("RESEND_API_KEY"),
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.AppName,
		isDevLike(cfg.Env),
	)

	poller := &reminders.Poller{
		Repo:        remRepo,
		Notifier:    notifier,
		Interval:    cfg.PollInterval,
		SendTimeout: cfg.NotifyTimeout,
	}

	docSvc := &documents.Service{
		Store:           app.Store,
		Repo:            docRepo,
		Users:           userRepo,
		Extractor:       orchestrator,
		StorageProvider: cfg.ObjectStoreType,
		SignedURLTTL:    cfg.SignedURLTTL,
	}
	userSvc := users.NewService(userRepo)

	app.DocumentsRepo = docRepo
	app.UsersRepo = userRepo
	app.RemindersRepo = remRepo
	app.DocumentsService = docSvc
	app.UsersService = userSvc
	app.Orchestrator = orchestrator
	app.Scheduler = scheduler
	app.Notifier = notifier
	app.Poller = poller
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.UsersHandler = users.NewHandler(userSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
