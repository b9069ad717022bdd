package routes

import (
	"net/http"

	"fichaje_backend/internal/handlers"
	"fichaje_backend/internal/middleware"
	"fichaje_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP route onto the engine.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	userRepo repositories.UserRepository,
) {
	ginRouter.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api")

	setupPublicRoutes(api, appHandlers)
	setupProtectedRoutes(api, appHandlers, userRepo)
}

func setupPublicRoutes(api *gin.RouterGroup, h *handlers.AppHandlers) {
	users := api.Group("/users")
	{
		users.POST("/register", h.UserHandler.Register)
		users.POST("/login", h.UserHandler.Login)
	}

	recovery := api.Group("/recovery")
	{
		recovery.POST("/request", h.RecoveryHandler.RequestCode)
		recovery.POST("/reset", h.RecoveryHandler.ResetPassword)
	}
}

func setupProtectedRoutes(api *gin.RouterGroup, h *handlers.AppHandlers, userRepo repositories.UserRepository) {
	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware(userRepo))
	{
		users.GET("/me", h.UserHandler.GetMe)
		users.PUT("/me", h.UserHandler.UpdateMe)
		users.DELETE("/me", h.UserHandler.DeleteMe)
	}

	fichajes := api.Group("/fichajes")
	fichajes.Use(middleware.AuthMiddleware(userRepo))
	{
		fichajes.POST("/clock-in", h.FichajeHandler.ClockIn)
		fichajes.PUT("/clock-out/:id", h.FichajeHandler.ClockOut)
		fichajes.PUT("/overtime/:id", h.FichajeHandler.SetOvertime)
		fichajes.GET("/current", h.FichajeHandler.Current)
		fichajes.GET("/history", h.FichajeHandler.History)
		fichajes.DELETE("/:id", h.FichajeHandler.Delete)
		fichajes.DELETE("", h.FichajeHandler.DeleteAll)
	}
}
