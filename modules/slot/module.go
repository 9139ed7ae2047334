package slot

import (
	"courtbook/core/cache"
	"courtbook/core/database"
	"courtbook/core/middleware"
	"courtbook/modules/slot/controller"
	"courtbook/modules/slot/repository"
	"courtbook/modules/slot/router"
	slotService "courtbook/modules/slot/service"
	venueRepository "courtbook/modules/venue/repository"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware, venueRepo *venueRepository.VenueRepository) (*repository.SlotRepository, slotService.SlotServiceInterface) {
	repo := repository.NewSlotRepository(db)
	svc := slotService.NewSlotService(repo, venueRepo, c)

	ctrl := controller.NewSlotController(svc)
	router.NewSlotRouter(ctrl).Setup(e, mw)

	return repo, svc
}
