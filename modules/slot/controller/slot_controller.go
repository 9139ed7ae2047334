package controller

import (
	"time"

	"courtbook/core/constants"
	"courtbook/core/controller"
	"courtbook/core/errors"
	"courtbook/core/utils"
	"courtbook/modules/slot/dto"
	"courtbook/modules/slot/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SlotController struct {
	controller.BaseController
	SlotService service.SlotServiceInterface
}

func NewSlotController(svc service.SlotServiceInterface) *SlotController {
	return &SlotController{
		BaseController: controller.NewBaseController(),
		SlotService:    svc,
	}
}

func (c *SlotController) getClaims(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// GetAvailability handles GET /public/courts/:id/availability
// @Summary Court availability for a date range
// @Description Read-only slot listing; defaults to the next 7 days
// @Tags Slot
// @Produce json
// @Param id path string true "Court ID"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Success 200 {object} dto.AvailabilityResponse
// @Router /public/courts/{id}/availability [get]
func (c *SlotController) GetAvailability(ctx echo.Context) error {
	courtID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid court ID")
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)

	if v := ctx.QueryParam("date_from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid date_from")
		}
		from = parsed
	}
	if v := ctx.QueryParam("date_to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid date_to")
		}
		to = parsed.AddDate(0, 0, 1) // inclusive end date
	}

	result, appErr := c.SlotService.GetAvailability(ctx.Request().Context(), courtID, from, to)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GenerateSlots handles POST /owner/courts/:id/slots/generate
// @Summary Pre-generate slots for a court over a date range
// @Tags Slot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Court ID"
// @Param request body dto.GenerateSlotsRequest true "Generation window"
// @Success 200 {object} dto.GenerateSlotsResponse
// @Failure 403 {object} errors.AppError
// @Router /owner/courts/{id}/slots/generate [post]
func (c *SlotController) GenerateSlots(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	courtID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid court ID")
	}

	var req dto.GenerateSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.SlotService.GenerateSlots(ctx.Request().Context(), courtID, claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Slots generated")
}

// BlockSlots handles POST /owner/slots/block
// @Summary Block slots for maintenance
// @Tags Slot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BlockSlotsRequest true "Slot ids and reason"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.AppError
// @Router /owner/slots/block [post]
func (c *SlotController) BlockSlots(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.BlockSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	slotIDs, err := parseIDs(req.SlotIDs)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID in list")
	}

	if appErr := c.SlotService.Block(ctx.Request().Context(), claims.UserID, slotIDs, req.Reason); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Slots blocked")
}

// UnblockSlots handles POST /owner/slots/unblock
func (c *SlotController) UnblockSlots(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UnblockSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	slotIDs, err := parseIDs(req.SlotIDs)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot ID in list")
	}

	if appErr := c.SlotService.Unblock(ctx.Request().Context(), claims.UserID, slotIDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Slots unblocked")
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
