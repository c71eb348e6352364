package routes

import (
	"github.com/luizverissimo/desafio-ignite-nodejs-02/config"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/controllers"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/middlewares"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the long-lived handles shared by every request.
type Deps struct {
	DB      *gorm.DB
	Hub     *services.RealtimeHub
	Session config.SessionConfig

	AllowedOrigins []string
}

func SetupRouter(d Deps) *gin.Engine {
	controllers.UseJSONFieldNames()
	if d.Hub == nil {
		d.Hub = services.NewRealtimeHub()
	}

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.Logger(), gin.Recovery())

	mealSvc := services.NewMealService(d.DB)
	mealCtl := controllers.NewMealController(
		mealSvc,
		services.NewMetricsService(mealSvc),
		services.NewEventBus(d.Hub),
	)
	rtCtl := controllers.NewRealtimeController(d.Hub, d.AllowedOrigins)

	r.GET("/health", controllers.NewHealthController(d.DB).Health)

	meals := r.Group("/meals")
	{
		meals.POST("", middlewares.ResolveSession(d.Session), mealCtl.Create)
	}

	// session required
	guarded := meals.Group("", middlewares.RequireSession(d.Session))
	{
		guarded.GET("", mealCtl.List)
		guarded.GET("/metrics", mealCtl.GetMetrics)
		guarded.GET("/events", rtCtl.MealEventsWS)
		guarded.GET("/:id", mealCtl.Get)
		guarded.PUT("/:id", mealCtl.Update)
		guarded.DELETE("/:id", mealCtl.Delete)
	}

	return r
}
