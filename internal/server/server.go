package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/config"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/handlers"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/repository"
	"github.com/yukikurage/organiz-api/internal/revocation"
	"github.com/yukikurage/organiz-api/internal/services"
	"github.com/yukikurage/organiz-api/internal/utils"
	"github.com/yukikurage/organiz-api/internal/validation"
	"gorm.io/gorm"
)

// Services groups the domain services behind the HTTP API.
type Services struct {
	Auth       *services.AuthService
	Categories *services.CategoryService
	Statuses   *services.StatusService
	Projects   *services.ProjectService
	Tasks      *services.TaskService
}

// NewServices wires repositories and services over db. A nil redis client
// keeps revoked tokens in process memory.
func NewServices(db *gorm.DB, cfg config.AuthConfig, rdb *redis.Client, log logrus.FieldLogger) *Services {
	var revoked revocation.Store = revocation.NewMemoryStore()
	if rdb != nil {
		revoked = revocation.NewRedisStore(rdb)
	}

	auth := services.NewAuthService(
		repository.NewUserRepository(db),
		utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		revoked,
		log,
	)
	categories := services.NewCategoryService(repository.NewCategoryRepository(db), log)
	statuses := services.NewStatusService(repository.NewStatusRepository(db), log)
	projects := services.NewProjectService(repository.NewProjectRepository(db), auth, categories, statuses, log)
	tasks := services.NewTaskService(repository.NewTaskRepository(db), auth, projects, statuses, log)

	return &Services{
		Auth:       auth,
		Categories: categories,
		Statuses:   statuses,
		Projects:   projects,
		Tasks:      tasks,
	}
}

// Options configures the HTTP engine.
type Options struct {
	Services       *Services
	SessionStore   sessions.Store
	Metrics        *middleware.Metrics
	AllowedOrigins []string
	AuthRateLimit  int
	Log            logrus.FieldLogger
}

// NewRouter builds the gin engine with every route under /api/v1.
func NewRouter(opts Options) (*gin.Engine, error) {
	if err := validation.Setup(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RecoveryWithLog(opts.Log))
	r.Use(middleware.RequestLogger(opts.Log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "OrganiZ API is running",
		})
	})
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	var limiter *middleware.IPRateLimiter
	if opts.AuthRateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(opts.AuthRateLimit)
	}

	svc := opts.Services
	authHandler := handlers.NewAuthHandler(svc.Auth, opts.Log)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories, opts.Log)
	statusHandler := handlers.NewStatusHandler(svc.Statuses, opts.Log)
	projectHandler := handlers.NewProjectHandler(svc.Projects, opts.Log)
	taskHandler := handlers.NewTaskHandler(svc.Tasks, opts.Log)

	requireAuth := middleware.RequireAuth(svc.Auth)
	withID := middleware.RequireIDParam()

	api := r.Group(constants.APIPrefix)
	{
		// Account routes
		users := api.Group("/users")
		{
			users.POST("/register", middleware.RateLimit(limiter), authHandler.Register)
			users.POST("/login", middleware.RateLimit(limiter), authHandler.Login)
			users.POST("/logout", requireAuth, authHandler.Logout)
			users.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id", withID, categoryHandler.GetCategory)
			categories.PUT("/:id", withID, categoryHandler.UpdateCategory)
			categories.DELETE("/:id", withID, categoryHandler.DeleteCategory)
		}

		statuses := api.Group("/statuses")
		statuses.Use(requireAuth)
		{
			statuses.POST("", statusHandler.CreateStatus)
			statuses.GET("", statusHandler.ListStatuses)
			statuses.GET("/:id", withID, statusHandler.GetStatus)
			statuses.PUT("/:id", withID, statusHandler.UpdateStatus)
			statuses.DELETE("/:id", withID, statusHandler.DeleteStatus)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", withID, projectHandler.GetProject)
			projects.PUT("/:id", withID, projectHandler.UpdateProject)
			projects.PATCH("/:id", withID, projectHandler.AddCollaborator)
			projects.DELETE("/:id", withID, projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", withID, taskHandler.GetTask)
			tasks.PUT("/:id", withID, taskHandler.UpdateTask)
			tasks.DELETE("/:id", withID, taskHandler.DeleteTask)
		}
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
