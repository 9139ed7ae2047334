package controller

import (
	"courtbook/core/constants"
	"courtbook/core/controller"
	"courtbook/core/errors"
	"courtbook/core/logger"
	"courtbook/core/params"
	"courtbook/core/storage"
	"courtbook/core/utils"
	"courtbook/modules/booking/dto"
	"courtbook/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	BookingService service.BookingServiceInterface
	ProofStorage   storage.ProofStorage
}

func NewBookingController(svc service.BookingServiceInterface, proofStorage storage.ProofStorage) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		BookingService: svc,
		ProofStorage:   proofStorage,
	}
}

func (c *BookingController) getClaims(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// Create handles POST /bookings (multipart or JSON)
// @Summary Reserve slots and create a pending booking
// @Tags Booking
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /bookings [post]
func (c *BookingController) Create(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	var proofRef *string
	if file, err := ctx.FormFile("proof"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Cannot read proof file")
		}
		defer src.Close()

		key, err := c.ProofStorage.UploadProof(ctx.Request().Context(), "bookings/"+claims.UserID.String(), file.Header.Get("Content-Type"), src)
		if err != nil {
			// The reservation must not fail because storage hiccuped; the
			// owner can request the proof again before approving.
			logger.Warn("BookingController:Create:ProofUpload", "user_id", claims.UserID, "error", err)
		} else {
			proofRef = &key
		}
	}

	result, appErr := c.BookingService.Create(ctx.Request().Context(), claims.UserID, &req, proofRef)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Booking created, pending approval")
}

// GetByID handles GET /bookings/:id
// @Summary Get a booking by id
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Produce json
// @Success 200 {object} dto.BookingResponse
// @Router /bookings/{id} [get]
func (c *BookingController) GetByID(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.GetByID(ctx.Request().Context(), claims.UserID, claims.Role, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListMine handles GET /bookings
// @Summary List the caller's bookings
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} entity.PaginatedBookingEntity
// @Router /bookings [get]
func (c *BookingController) ListMine(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.BookingService.ListMyBookings(ctx.Request().Context(), claims.UserID, params.FromEcho(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// ListForOwner handles GET /owner/bookings
// @Summary List bookings across the owner's venues, pending first
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Success 200 {object} entity.PaginatedBookingEntity
// @Router /owner/bookings [get]
func (c *BookingController) ListForOwner(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.BookingService.ListOwnerBookings(ctx.Request().Context(), claims.UserID, params.FromEcho(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Approve handles POST /owner/bookings/:id/approve
// @Summary Confirm a pending booking
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /owner/bookings/{id}/approve [post]
func (c *BookingController) Approve(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.Approve(ctx.Request().Context(), claims.UserID, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Booking confirmed")
}

// Reject handles POST /owner/bookings/:id/reject
// @Summary Reject a pending booking with a reason
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body dto.RejectBookingRequest true "Rejection reason"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /owner/bookings/{id}/reject [post]
func (c *BookingController) Reject(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	var req dto.RejectBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.BookingService.Reject(ctx.Request().Context(), claims.UserID, bookingID, req.Reason)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Booking rejected")
}

// Cancel handles POST /bookings/:id/cancel
// @Summary Cancel a booking as the booker or the venue owner
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} errors.AppError
// @Router /bookings/{id}/cancel [post]
func (c *BookingController) Cancel(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.Cancel(ctx.Request().Context(), claims.UserID, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Booking cancelled")
}

// Complete handles POST /owner/bookings/:id/complete
// @Summary Mark a confirmed booking as completed after its time window
// @Tags Booking
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} errors.AppError
// @Router /owner/bookings/{id}/complete [post]
func (c *BookingController) Complete(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid booking ID")
	}

	result, appErr := c.BookingService.Complete(ctx.Request().Context(), claims.UserID, bookingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Booking completed")
}
