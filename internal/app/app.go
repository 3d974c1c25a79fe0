package app

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/hushplay/hushplay_server/internal/auth"
	"github.com/hushplay/hushplay_server/internal/handlers"
	"github.com/hushplay/hushplay_server/internal/middlewares"
	"github.com/hushplay/hushplay_server/internal/recommend"
	"github.com/hushplay/hushplay_server/internal/store"
)

var (
	authKey       = securecookie.GenerateRandomKey(64)
	encryptionKey = securecookie.GenerateRandomKey(32)
)

type Application struct {
	Logger            *log.Logger
	AdminLogger       *log.Logger
	SessionStore      *sessions.CookieStore
	Storage           store.Storage
	ViewTracker       *store.ViewTracker
	Engine            *recommend.Engine
	Auth              *auth.PasswordAuth
	MiddlewareHandler *middlewares.MiddlewareHandler
	UserHandler       *handlers.UserHandler
	ChannelHandler    *handlers.ChannelHandler
	VideoHandler      *handlers.VideoHandler
	CommentHandler    *handlers.CommentHandler
	SocialHandler     *handlers.SocialHandler
	RecommendHandler  *handlers.RecommendHandler
	DashboardHandler  *handlers.DashboardHandler
	AdminHandler      *handlers.AdminHandler
}

func NewApplication() (*Application, error) {
	logger := log.New(os.Stdout, "LOGGING: ", log.Ldate|log.Ltime)
	adminLogger := log.New(os.Stdout, "ADMIN LOGGING: ", log.Ldate|log.Ltime)

	storage, err := store.NewStorageFromEnv(logger)
	if err != nil {
		logger.Println("Error setting up storage backend")
		return nil, err
	}

	// Redis is optional: without it trending falls back to lifetime view
	// counts.
	var tracker *store.ViewTracker
	if os.Getenv("REDIS_ADDR") != "" {
		redisClient, err := store.ConnectRedis()
		if err != nil {
			logger.Println("Error connecting to redis, windowed view counts disabled:", err)
		} else {
			tracker = store.NewViewTracker(redisClient)
			logger.Println("Redis view tracking enabled")
		}
	}

	env := os.Getenv("ENV")
	var sessionOptions = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	if env == "production" {
		sessionOptions.Secure = true
		sessionOptions.SameSite = http.SameSiteNoneMode
		sessionOptions.Domain = os.Getenv("COOKIE_DOMAIN")
	} else {
		sessionOptions.Secure = false
		sessionOptions.SameSite = http.SameSiteLaxMode
		sessionOptions.Domain = ""
	}

	sessionStore := sessions.NewCookieStore(authKey, encryptionKey)
	sessionStore.Options = sessionOptions

	engine := recommend.NewEngine(storage, tracker, logger)

	passwordAuth := auth.NewPasswordAuth(logger, sessionStore, storage)

	userHandler := handlers.NewUserHandler(storage, logger)
	channelHandler := handlers.NewChannelHandler(storage, logger)
	videoHandler := handlers.NewVideoHandler(storage, tracker, logger)
	commentHandler := handlers.NewCommentHandler(storage, logger)
	socialHandler := handlers.NewSocialHandler(storage, logger)
	recommendHandler := handlers.NewRecommendHandler(engine, storage, logger)
	dashboardHandler := handlers.NewDashboardHandler(storage, logger)
	adminHandler := handlers.NewAdminHandler(storage, adminLogger)

	middlewareHandler := middlewares.NewMiddlewareHandler(logger, adminLogger, sessionStore, storage)

	app := &Application{
		Logger:            logger,
		AdminLogger:       adminLogger,
		SessionStore:      sessionStore,
		Storage:           storage,
		ViewTracker:       tracker,
		Engine:            engine,
		Auth:              passwordAuth,
		MiddlewareHandler: middlewareHandler,
		UserHandler:       userHandler,
		ChannelHandler:    channelHandler,
		VideoHandler:      videoHandler,
		CommentHandler:    commentHandler,
		SocialHandler:     socialHandler,
		RecommendHandler:  recommendHandler,
		DashboardHandler:  dashboardHandler,
		AdminHandler:      adminHandler,
	}

	return app, nil

}
