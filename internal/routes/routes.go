package routes

import (
	"context"
	"net/http"
	"time"

	"team-task-api/internal/auth"
	apierrors "team-task-api/internal/errors"
	"team-task-api/internal/handlers"
	"team-task-api/internal/logger"
	"team-task-api/internal/middleware"
	"team-task-api/internal/repository"
	"team-task-api/internal/services"

	"github.com/gin-gonic/gin"
)

// healthTimeout bounds the store ping made by /health.
const healthTimeout = 2 * time.Second

// Dependencies are the long-lived resources shared by every request.
type Dependencies struct {
	Store  repository.Store
	Tokens *auth.TokenIssuer
	// TaskOptions configure the clock and time zone of the weekly view.
	TaskOptions []services.Option
}

func SetupRoutes(deps Dependencies) *gin.Engine {
	authService := services.NewAuthService(deps.Store.Users(), deps.Tokens)
	userService := services.NewUserService(deps.Store.Users())
	taskService := services.NewTaskService(deps.Store.Tasks(), deps.Store.Users(), deps.TaskOptions...)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	ginRouter := gin.New()
	ginRouter.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)
	ginRouter.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	ginRouter.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := deps.Store.Ping(ctx); err != nil {
			logger.Error("Health check: store unreachable", err)
			apierrors.ServiceUnavailable(c, "Database unreachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Team Task API is running",
		})
	})

	api := ginRouter.Group("/api")

	// Public routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/admin/register", authHandler.Register)
		authRoutes.POST("/user/signup", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.Authenticate(deps.Tokens))

	userRoutes := protected.Group("/users")
	{
		userRoutes.POST("/create-user", authHandler.CreateUser)
		userRoutes.GET("/all-user", userHandler.ListUsers)
		userRoutes.GET("/user/:id", userHandler.GetUser)
		userRoutes.DELETE("/delete/:id", userHandler.DeleteUser)
	}

	taskRoutes := protected.Group("/tasks")
	{
		taskRoutes.POST("/create", taskHandler.CreateTask)
		taskRoutes.GET("", taskHandler.GetTasks)
		taskRoutes.GET("/", taskHandler.GetTasks)
		taskRoutes.GET("/:id", taskHandler.GetTaskByID)
		taskRoutes.PUT("/update/:id", taskHandler.UpdateTask)
		taskRoutes.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
		taskRoutes.DELETE("/delete/:id", taskHandler.DeleteTask)
	}

	return ginRouter
}
