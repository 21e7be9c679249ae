package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/semsolhan1/todo-api202306/internal/controller"
	"github.com/semsolhan1/todo-api202306/internal/middleware"
)

// Router builds the route table. The todo API and user surfaces sit behind
// bearer-token auth; sign-up/sign-in and probes are public.
func Router(todos *controller.TodoController, auth *controller.AuthController, jwtSecret string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Health for load balancers and readiness probes
	router.GET("/health", controller.Health)
	router.GET("/ready", controller.Ready)

	// Public: account registration and sign-in
	router.POST("/api/auth/signup", auth.SignUp)
	router.POST("/api/auth/signin", auth.SignIn)

	// Protected: JWT required
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	{
		api.GET("/todos", todos.List)
		api.POST("/todos", todos.Create)
		api.PUT("/todos", todos.Update)
		api.PATCH("/todos", todos.Update)
		api.DELETE("/todos/:id", todos.Delete)
		api.POST("/users/profile-image", auth.ProfileImage)
	}

	return router
}
