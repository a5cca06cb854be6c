package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jlpt_backend/internal/config"
	"jlpt_backend/internal/controller"
	"jlpt_backend/internal/fixture"
	"jlpt_backend/internal/repository"
	"jlpt_backend/internal/service"
	"jlpt_backend/pkg/database"
	"jlpt_backend/pkg/logger"
	"jlpt_backend/pkg/monitoring"
	"jlpt_backend/pkg/security"
	"jlpt_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	vocab      *repository.VocabRepository
	kanji      *repository.KanjiRepository
	grammar    *repository.GrammarRepository
	reading    *repository.ReadingRepository
	listening  *repository.ListeningRepository
	jlpt       *repository.JlptRepository
	dictionary *repository.DictionaryRepository
	chat       *repository.ChatRepository
	shadowing  *repository.ShadowingRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	vocab      *service.VocabService
	kanji      *service.KanjiService
	grammar    *service.GrammarService
	reading    *service.ReadingService
	listening  *service.ListeningService
	jlpt       *service.JlptService
	notebook   *service.NotebookService
	dictionary *service.DictionaryService
	ai         *service.AIService
	chat       *service.ChatService
	shadowing  *service.ShadowingService
}

type controllers struct {
	auth       *controller.AuthController
	vocab      *controller.VocabController
	kanji      *controller.KanjiController
	grammar    *controller.GrammarController
	reading    *controller.ReadingController
	listening  *controller.ListeningController
	jlpt       *controller.JlptController
	notebook   *controller.NotebookController
	dictionary *controller.DictionaryController
	chat       *controller.ChatController
	shadowing  *controller.ShadowingController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps the active configuration and notifies subscribers.
// Connection-level settings (database, redis, port) still require a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		vocab:      repository.NewVocabRepository(db),
		kanji:      repository.NewKanjiRepository(db),
		grammar:    repository.NewGrammarRepository(db),
		reading:    repository.NewReadingRepository(db),
		listening:  repository.NewListeningRepository(db),
		jlpt:       repository.NewJlptRepository(db),
		dictionary: repository.NewDictionaryRepository(db),
		chat:       repository.NewChatRepository(db),
		shadowing:  repository.NewShadowingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.storage, cfg)
	s.vocab = service.NewVocabService(repos.vocab)
	s.kanji = service.NewKanjiService(repos.kanji)
	s.grammar = service.NewGrammarService(repos.grammar)
	s.reading = service.NewReadingService(repos.reading)
	s.listening = service.NewListeningService(repos.listening)
	s.jlpt = service.NewJlptService(repos.jlpt)
	s.notebook = service.NewNotebookService(
		repos.vocab,
		repos.kanji,
		repos.grammar,
		repos.reading,
		repos.listening,
		repos.jlpt,
	)
	s.dictionary = service.NewDictionaryService(repos.dictionary, rdb)
	s.ai = service.NewAIService(cfg.AI)
	s.chat = service.NewChatService(repos.chat, s.ai)
	s.shadowing = service.NewShadowingService(repos.shadowing, s.storage, cfg.TTS)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		vocab:      controller.NewVocabController(s.vocab),
		kanji:      controller.NewKanjiController(s.kanji),
		grammar:    controller.NewGrammarController(s.grammar),
		reading:    controller.NewReadingController(s.reading),
		listening:  controller.NewListeningController(s.listening),
		jlpt:       controller.NewJlptController(s.jlpt),
		notebook:   controller.NewNotebookController(s.notebook),
		dictionary: controller.NewDictionaryController(s.dictionary),
		chat:       controller.NewChatController(s.chat),
		shadowing:  controller.NewShadowingController(s.shadowing),
		health:     controller.NewHealthController(db),
	}
}

func rateLimitSettings(cfg *config.Config) (int, time.Duration) {
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	return maxRequests, window
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	limiter := security.NewIPRateLimiter(rateLimitSettings(cfg))
	router.Use(limiter.Middleware())
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		limiter.SetLimits(rateLimitSettings(newCfg))
	})

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.LoadFixtures {
		if err := fixture.Load(db, cfg.FixturesPath); err != nil {
			logger.Log.Fatal("Failed to load fixtures", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, dictionary cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("jlpt-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
