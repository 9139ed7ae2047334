package subscription

import (
	"courtbook/core/database"
	"courtbook/core/middleware"
	"courtbook/core/storage"
	"courtbook/modules/subscription/controller"
	"courtbook/modules/subscription/repository"
	"courtbook/modules/subscription/router"
	subscriptionService "courtbook/modules/subscription/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, proofStorage storage.ProofStorage) (subscriptionService.SubscriptionServiceInterface, *repository.SubscriptionRepository) {
	repo := repository.NewSubscriptionRepository(db)
	svc := subscriptionService.NewSubscriptionService(repo)

	ctrl := controller.NewSubscriptionController(svc, proofStorage)
	router.NewSubscriptionRouter(ctrl).Setup(e, mw)

	return svc, repo
}
