package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sdemirtas/registrar/internal/app/controllers"
	"github.com/sdemirtas/registrar/internal/app/models"
	"github.com/sdemirtas/registrar/internal/middleware"
	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/metrics"
)

// RoleControllers maps each role type to its mounted controller.
type RoleControllers map[models.RoleType]*controllers.RoleController

// rolePaths fixes the URL segment for each role type.
var rolePaths = map[models.RoleType]string{
	models.RoleStudent: "students",
	models.RoleFaculty: "faculty",
	models.RoleStaff:   "staff",
}

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	personController *controllers.PersonController,
	roleControllers RoleControllers,
	searchController *controllers.SearchController,
	m *metrics.Metrics,
) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(m))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")

	persons := v1.Group("/persons")
	{
		persons.GET("", personController.ListPersons)
		persons.POST("", personController.CreatePerson)
		persons.GET("/:id", personController.GetPerson)
		persons.PUT("/:id", personController.UpdatePerson)
		persons.DELETE("/:id", personController.DeletePerson)
	}

	for roleType, path := range rolePaths {
		controller, ok := roleControllers[roleType]
		if !ok {
			continue
		}
		group := v1.Group("/" + path)
		{
			group.GET("", controller.List)
			group.POST("", controller.Enroll)
			group.POST("/attach/:personId", controller.Attach)
			group.GET("/:identifier", controller.Get)
			group.PUT("/:identifier", controller.Update)
			group.PATCH("/:identifier/status", controller.Transition)
			group.GET("/:identifier/transitions", controller.AllowedTransitions)
		}
	}

	v1.GET("/search", searchController.Search)
	v1.GET("/stats", searchController.Stats)
	v1.GET("/history/:role/:identifier", searchController.History)

	router.NoRoute(func(ctx *gin.Context) {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError("Route not found"))
	})
}
