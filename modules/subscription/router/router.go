package router

import (
	"courtbook/core/constants"
	"courtbook/core/middleware"
	"courtbook/modules/subscription/controller"

	"github.com/labstack/echo/v4"
)

type SubscriptionRouter struct {
	Controller *controller.SubscriptionController
}

func NewSubscriptionRouter(ctrl *controller.SubscriptionController) *SubscriptionRouter {
	return &SubscriptionRouter{Controller: ctrl}
}

func (r *SubscriptionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/public/plans", r.Controller.ListPlans)

	owner := v1.Group("/owner", mw.AuthMiddleware(), mw.RequireRole(constants.RoleOwner))
	owner.POST("/subscription", r.Controller.Submit)
	owner.GET("/subscription", r.Controller.GetMySubscription)

	admin := v1.Group("/admin", mw.AuthMiddleware(), mw.RequireRole(constants.RoleAdmin))
	admin.POST("/plans", r.Controller.CreatePlan)
	admin.POST("/subscriptions/:id/activate", r.Controller.Activate)
}
