package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	// v1 routes
	{
		apiV1 := api.Group("/v1")

		// placement routes
		apiV1.POST("/placements", h.echoHandler(h.CompilePlacement))
		apiV1.GET("/placements/:instanceID", h.echoHandlerWithParams(h.GetPlacement))

		// running-task tracking routes
		apiV1.POST("/tasks", h.echoHandler(h.TrackTask))
		apiV1.DELETE("/agents/:agentID/tasks/:taskID", h.echoHandlerWithParams(h.ForgetTask))
		apiV1.GET("/agents/:agentID/tasks", h.echoHandlerWithParams(h.ListRunningTasks))
	}
}
