package server

import (
	"net/http"

	"campusdir/internal/config"
	"campusdir/internal/handler"
	"campusdir/internal/middleware"
	"campusdir/internal/models"
	"campusdir/internal/repository"
	"campusdir/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	log    *logrus.Logger
	zlog   *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, log *logrus.Logger, zlog *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
		log:    log,
		zlog:   zlog,
	}

	// Setup routes
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	userRepo := repository.NewUserRepository(s.db, s.log)
	blacklistRepo := repository.NewTokenBlacklistRepository(s.db, s.log)

	authService := service.NewAuthService(userRepo, blacklistRepo, s.cfg.Auth.JWTSecret, s.cfg.TokenTTL(), s.zlog)
	directoryService := service.NewDirectoryService(userRepo, s.zlog)

	authHandler := handler.NewAuthHandler(authService, s.log)
	userHandler := handler.NewUserHandler(directoryService, s.log)

	authRequired := middleware.AuthMiddleware(authService, s.zlog)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authRequired, authHandler.Logout)

	// Directory routes
	userGroup := s.router.Group("/api/users")
	userGroup.GET("/hods/:department", userHandler.CheckHODExists)

	protected := userGroup.Group("")
	protected.Use(authRequired)
	{
		protected.GET("/profile", userHandler.GetProfile)
		protected.GET("/admin", middleware.RequireRoles(models.RoleAdmin), userHandler.AdminDashboard)
		protected.GET("/hod/students", middleware.RequireRoles(models.RoleHOD), userHandler.DeptStudents)
		protected.DELETE("/students/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleHOD), userHandler.DeleteStudent)
		protected.DELETE("/hods/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.DeleteHOD)
	}
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
