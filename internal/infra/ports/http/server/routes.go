package server

import (
	"github.com/labstack/echo/v4"

	"github.com/jssrooms/backend/internal/application/config"
	"github.com/jssrooms/backend/internal/infra/ports/http/handlers"
	"github.com/jssrooms/backend/internal/infra/ports/http/middleware"
)

func New(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	eventHandler *handlers.EventHandler,
	checkinHandler *handlers.CheckinHandler,
	wsHandler *handlers.WSHandler,
) *echo.Echo {
	e := echo.New()

	e.Use(middleware.SlogLogger())
	e.Use(middleware.PrometheusMiddleware())

	api := e.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		v1 := api.Group("/v1")
		v1.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		{
			v1.GET("/me", authHandler.GetMe)

			v1.GET("/ws", wsHandler.Handle)

			v1.GET("/rooms", roomHandler.ListRooms)
			v1.POST("/rooms", roomHandler.CreateRoom, middleware.RequireAdmin())
			v1.POST("/rooms/close", roomHandler.CloseRoom, middleware.RequireAdmin())

			v1.GET("/events", eventHandler.ListEvents)
			v1.POST("/events", eventHandler.CreateEvent, middleware.RequireAdmin())
			v1.POST("/events/register", eventHandler.Register)
			v1.GET("/events/registrations", eventHandler.ListRegistrations)

			v1.POST("/events/checkin", checkinHandler.CheckIn, middleware.RequireAdmin())
		}
	}

	return e
}
