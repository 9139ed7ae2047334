package venue

import (
	"courtbook/core/database"
	"courtbook/core/middleware"
	subscriptionService "courtbook/modules/subscription/service"
	"courtbook/modules/venue/controller"
	"courtbook/modules/venue/repository"
	"courtbook/modules/venue/router"
	venueService "courtbook/modules/venue/service"

	"github.com/labstack/echo/v4"
)

// Init takes the repository from the caller because the quota gate is
// built on top of it before this module is wired.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, repo *repository.VenueRepository, quota subscriptionService.QuotaGateInterface) venueService.VenueServiceInterface {
	svc := venueService.NewVenueService(repo, quota)

	ctrl := controller.NewVenueController(svc)
	router.NewVenueRouter(ctrl).Setup(e, mw)

	return svc
}
