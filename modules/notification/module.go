package notification

import (
	"courtbook/core/database"
	"courtbook/core/middleware"
	"courtbook/modules/notification/controller"
	"courtbook/modules/notification/repository"
	"courtbook/modules/notification/router"
	notificationService "courtbook/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) notificationService.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := notificationService.NewNotificationService(repo)

	ctrl := controller.NewNotificationController(svc)
	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}
