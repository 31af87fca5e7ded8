package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/matloa/secretnotes/internal/api/handlers"
	"github.com/matloa/secretnotes/internal/api/middleware"
	"github.com/matloa/secretnotes/internal/config"
	"github.com/matloa/secretnotes/internal/db/repository"
	"github.com/matloa/secretnotes/internal/notes"
	"github.com/matloa/secretnotes/internal/session"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	config *config.Config
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	noteRepo *repository.NoteRepository,
) *Server {
	// Set Gin mode
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// Session store: signed cookie, HttpOnly, SameSite Lax
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(session.CookieName, store))

	sessionMgr := session.NewManager()

	// Create handlers
	authHandler := handlers.NewAuthHandler(cfg, userRepo, sessionMgr)
	notesHandler := handlers.NewNotesHandler(notes.NewService(noteRepo))

	// Public endpoints
	router.GET("/", authHandler.Index)
	router.POST("/login",
		middleware.RateLimit(cfg.RateLimit.LoginPerMinute),
		authHandler.Login)

	// Registration is two requests bridged by the pending session state
	register := router.Group("/register")
	register.Use(middleware.RateLimit(cfg.RateLimit.RegisterPerMinute))
	{
		register.POST("", authHandler.Register)
		register.POST("/confirm", authHandler.Confirm)
	}

	// Note endpoints (require an authenticated session)
	notesGroup := router.Group("/notes")
	notesGroup.Use(middleware.RateLimit(cfg.RateLimit.NotesPerMinute))
	notesGroup.Use(middleware.RequireLogin(sessionMgr))
	{
		notesGroup.GET("", notesHandler.List)
		notesGroup.POST("", notesHandler.Action)
	}

	router.POST("/logout", middleware.RequireLogin(sessionMgr), authHandler.Logout)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	return s.router.Run(s.config.Server.ListenAddr)
}

// Router returns the underlying Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}
