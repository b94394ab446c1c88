package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/coding"
	"elevate-backend/internal/interview"
	"elevate-backend/internal/llm"
	anthropicllm "elevate-backend/internal/llm/anthropic"
	geminillm "elevate-backend/internal/llm/gemini"
	openaillm "elevate-backend/internal/llm/openai"
	"elevate-backend/internal/progress"
	"elevate-backend/internal/quiz"
	"elevate-backend/internal/services/health"
	"elevate-backend/internal/shared/auth"
	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/shared/server"
	"elevate-backend/internal/shared/storage/db"
	"elevate-backend/internal/shared/storage/object"
	localstore "elevate-backend/internal/shared/storage/object/local"
	s3store "elevate-backend/internal/shared/storage/object/s3"
	"elevate-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client
	Tokens *auth.Issuer

	UsersService     *users.Service
	ProgressService  *progress.Service
	QuizService      *quiz.Service
	InterviewService *interview.Service
	CodingService    *coding.Service
}

// Build connects storage, picks the AI provider and wires every feature.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
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
	client, err := NewLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    client,
		Tokens: tokens,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Verifier: tokens,
		Health:   health.NewService(pinger(sqlDB)),
		Handlers: []server.RouteRegistrar{
			users.NewHandler(app.UsersService),
			progress.NewHandler(app.ProgressService),
			quiz.NewHandler(app.QuizService),
			interview.NewHandler(app.InterviewService),
			coding.NewHandler(app.CodingService),
		},
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
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
		sqlDB.Close()
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

// NewLLMClient picks the configured provider. A provider without a key falls
// back to the placeholder so the API still boots and AI routes answer 502.
func NewLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	var (
		next llm.Client
		err  error
	)
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.OpenAIKey != "" {
			next, err = openaillm.NewClient(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIBase, cfg.LLM.Model)
		}
	case "anthropic":
		if cfg.LLM.AnthropicKey != "" {
			next, err = anthropicllm.NewClient(cfg.LLM.AnthropicKey, cfg.LLM.Model)
		}
	case "gemini":
		if cfg.LLM.GeminiKey != "" {
			next, err = geminillm.NewClient(ctx, cfg.LLM.GeminiKey, cfg.LLM.Model)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("llm provider %s: %w", cfg.LLM.Provider, err)
	}
	if next == nil {
		log.Printf("bootstrap: no key for llm provider %q; AI routes are disabled", cfg.LLM.Provider)
		next = llm.PlaceholderClient{}
	}
	return llm.Instrumented{Next: next, MaxTokens: cfg.LLM.MaxTokens}, nil
}

func buildRunner(cfg config.Config, client llm.Client) coding.Runner {
	if strings.TrimSpace(cfg.Judge0.Key) == "" {
		return &coding.Simulator{LLM: client}
	}
	timeout := time.Duration(cfg.Judge0.Timeout) * time.Second
	return coding.NewJudge0(cfg.Judge0.URL, cfg.Judge0.Key, cfg.Judge0.Host, timeout)
}

func buildServices(app *App) {
	var (
		userRepo      users.Repo
		quizRepo      quiz.Repo
		interviewRepo interview.Repo
		codingRepo    coding.Repo
		progressSvc   *progress.Service
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		quizRepo = &quiz.PGRepo{DB: app.DB}
		interviewRepo = &interview.PGRepo{DB: app.DB}
		codingRepo = &coding.PGRepo{DB: app.DB}
		progressSvc = progress.NewPostgresService(app.DB)
	} else {
		userRepo = users.NewMemoryRepo()
		quizRepo = quiz.NewMemoryRepo()
		interviewRepo = interview.NewMemoryRepo()
		codingRepo = coding.NewMemoryRepo()
		progressSvc = progress.NewService()
	}

	quizSvc := quiz.NewService(quizRepo, app.LLM, progressSvc)
	progressSvc.SetAttemptSource(quizSvc)

	app.UsersService = users.NewService(userRepo, app.Tokens)
	app.ProgressService = progressSvc
	app.QuizService = quizSvc
	app.InterviewService = interview.NewService(interviewRepo, app.LLM, progressSvc, interview.ParsePolicy(app.Config.Interview.BatchPolicy))
	app.CodingService = coding.NewService(codingRepo, buildRunner(app.Config, app.LLM), app.LLM, app.Store, progressSvc)
}

// pinger keeps a nil *sql.DB from becoming a non-nil interface.
func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
