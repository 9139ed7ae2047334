package router

import (
	"courtbook/core/constants"
	"courtbook/core/middleware"
	"courtbook/modules/slot/controller"

	"github.com/labstack/echo/v4"
)

type SlotRouter struct {
	Controller *controller.SlotController
}

func NewSlotRouter(ctrl *controller.SlotController) *SlotRouter {
	return &SlotRouter{Controller: ctrl}
}

func (r *SlotRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/public/courts/:id/availability", r.Controller.GetAvailability)

	owner := v1.Group("/owner", mw.AuthMiddleware(), mw.RequireRole(constants.RoleOwner))
	owner.POST("/courts/:id/slots/generate", r.Controller.GenerateSlots)
	owner.POST("/slots/block", r.Controller.BlockSlots)
	owner.POST("/slots/unblock", r.Controller.UnblockSlots)
}
