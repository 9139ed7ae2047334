package booking

import (
	"courtbook/core/database"
	"courtbook/core/middleware"
	"courtbook/core/storage"
	"courtbook/core/tasks"
	"courtbook/modules/booking/controller"
	"courtbook/modules/booking/repository"
	"courtbook/modules/booking/router"
	bookingService "courtbook/modules/booking/service"
	slotRepository "courtbook/modules/slot/repository"
	slotService "courtbook/modules/slot/service"
	subService "courtbook/modules/subscription/service"
	venueRepository "courtbook/modules/venue/repository"

	"github.com/labstack/echo/v4"
)

func Init(
	e *echo.Echo,
	db database.Database,
	mw *middleware.Middleware,
	slotRepo slotRepository.SlotRepositoryInterface,
	slotSvc slotService.SlotServiceInterface,
	venueRepo venueRepository.VenueRepositoryInterface,
	quota subService.QuotaGateInterface,
	dispatcher tasks.Dispatcher,
	proofStorage storage.ProofStorage,
) bookingService.BookingServiceInterface {
	repo := repository.NewBookingRepository(db, slotRepo)
	svc := bookingService.NewBookingService(repo, slotSvc, venueRepo, quota, dispatcher)

	ctrl := controller.NewBookingController(svc, proofStorage)
	router.NewBookingRouter(ctrl).Setup(e, mw)

	return svc
}
