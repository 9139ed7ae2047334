package router

import (
	"courtbook/core/middleware"
	"courtbook/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	Controller *controller.NotificationController
}

func NewNotificationRouter(ctrl *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{Controller: ctrl}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	group := v1.Group("/notifications", mw.AuthMiddleware())
	group.GET("", r.Controller.GetMyNotifications)
	group.GET("/unread-count", r.Controller.CountUnread)
	group.PUT("/mark-read", r.Controller.MarkAsRead)
	group.PUT("/mark-all-read", r.Controller.MarkAllAsRead)
}
