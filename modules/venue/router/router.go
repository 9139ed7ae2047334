package router

import (
	"courtbook/core/constants"
	"courtbook/core/middleware"
	"courtbook/modules/venue/controller"

	"github.com/labstack/echo/v4"
)

type VenueRouter struct {
	Controller *controller.VenueController
}

func NewVenueRouter(ctrl *controller.VenueController) *VenueRouter {
	return &VenueRouter{Controller: ctrl}
}

func (r *VenueRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/public/venues/:slug", r.Controller.GetVenueBySlug)
	v1.GET("/public/sports", r.Controller.ListSports)

	owner := v1.Group("/owner", mw.AuthMiddleware(), mw.RequireRole(constants.RoleOwner))
	owner.POST("/venues", r.Controller.CreateVenue)
	owner.GET("/venues", r.Controller.GetMyVenues)
	owner.PUT("/venues/:id", r.Controller.UpdateVenue)
	owner.POST("/venues/:id/deactivate", r.Controller.DeactivateVenue)
	owner.POST("/venues/:id/courts", r.Controller.CreateCourt)
	owner.PUT("/courts/:id", r.Controller.UpdateCourt)
	owner.POST("/courts/:id/deactivate", r.Controller.DeactivateCourt)
}
