package router

import (
	"courtbook/core/constants"
	"courtbook/core/middleware"
	"courtbook/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	user := v1.Group("", mw.AuthMiddleware())
	user.POST("/bookings", r.Controller.Create)
	user.GET("/bookings", r.Controller.ListMine)
	user.GET("/bookings/:id", r.Controller.GetByID)
	user.POST("/bookings/:id/cancel", r.Controller.Cancel)

	owner := v1.Group("/owner", mw.AuthMiddleware(), mw.RequireRole(constants.RoleOwner))
	owner.GET("/bookings", r.Controller.ListForOwner)
	owner.POST("/bookings/:id/approve", r.Controller.Approve)
	owner.POST("/bookings/:id/reject", r.Controller.Reject)
	owner.POST("/bookings/:id/complete", r.Controller.Complete)
}
