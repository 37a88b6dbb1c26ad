package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefeed/backend/config"
	"github.com/platefeed/backend/internal/api"
	"github.com/platefeed/backend/internal/database"
	"github.com/platefeed/backend/internal/router"
	"github.com/platefeed/backend/internal/service"
)

// Server wires services, handlers and the HTTP listener together
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New builds a fully wired server from the config
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	store, serveMedia, err := imageStore(cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, service.NewRedisBlacklist(redisClient))
	imageService := service.NewImageService(store)

	srv := NewWithServices(cfg, db, authService, imageService)
	if serveMedia {
		srv.router.Static("/media", cfg.MediaDir)
	}
	return srv, nil
}

// NewWithServices assembles the router from pre-built dependencies.
// Tests use it to swap the database and blacklist.
func NewWithServices(cfg *config.Config, db *gorm.DB, authService *service.AuthService, imageService *service.ImageService) *Server {
	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(
		service.NewUserService(db),
		service.NewFollowService(db),
		authService,
	)
	tagHandler := api.NewTagHandler(service.NewTagService(db))
	ingredientHandler := api.NewIngredientHandler(service.NewIngredientService(db))
	recipeHandler := api.NewRecipeHandler(
		service.NewRecipeService(db, imageService),
		service.NewFavoriteService(db),
		service.NewShoppingCartService(db),
		service.NewShoppingListService(db),
		authService,
	)

	r := router.SetupRouter(authHandler, userHandler, tagHandler, ingredientHandler, recipeHandler)

	return &Server{
		cfg:    cfg,
		router: r,
		db:     db,
	}
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

func imageStore(cfg *config.Config) (service.ImageStore, bool, error) {
	if cfg.S3Bucket != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			return nil, false, err
		}
		return service.NewS3ImageStore(s3Cfg), false, nil
	}

	local, err := service.NewLocalImageStore(cfg.MediaDir, "/media")
	if err != nil {
		return nil, false, err
	}
	return local, true, nil
}
