package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/circlepot/notifier/internal/api/handlers/notification"
	"github.com/circlepot/notifier/internal/api/handlers/preferences"
	"github.com/circlepot/notifier/internal/api/handlers/push"
	"github.com/circlepot/notifier/internal/middlewares"
)

func New(
	notifHandler *notification.Handler,
	prefsHandler *preferences.Handler,
	pushHandler *push.Handler,
) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")

	notifications := api.Group("/notifications")
	notifications.GET("/:account", notifHandler.List)
	notifications.GET("/:account/unread-count", notifHandler.UnreadCount)
	notifications.PUT("/:account/read-all", notifHandler.MarkAllRead)
	notifications.PUT("/:account/:id/read", notifHandler.MarkRead)
	notifications.DELETE("/:account/:id", notifHandler.Remove)
	notifications.DELETE("/:account", notifHandler.Clear)

	prefs := api.Group("/preferences")
	prefs.GET("/:account", prefsHandler.Get)
	prefs.PUT("/:account", prefsHandler.Update)

	pushGroup := api.Group("/push")
	pushGroup.POST("/subscribe", pushHandler.Subscribe)
	pushGroup.POST("/unsubscribe", pushHandler.Unsubscribe)
	pushGroup.GET("/check", notifHandler.Check)

	return e
}
