package controller

import (
	"courtbook/core/constants"
	"courtbook/core/controller"
	"courtbook/core/errors"
	"courtbook/core/utils"
	"courtbook/modules/venue/dto"
	"courtbook/modules/venue/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type VenueController struct {
	controller.BaseController
	VenueService service.VenueServiceInterface
}

func NewVenueController(svc service.VenueServiceInterface) *VenueController {
	return &VenueController{
		BaseController: controller.NewBaseController(),
		VenueService:   svc,
	}
}

func (c *VenueController) getClaims(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// CreateVenue handles POST /owner/venues
// @Summary Create a venue
// @Description Creates a venue for the authenticated owner; gated by the plan's venue quota
// @Tags Venue
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateVenueRequest true "Venue details"
// @Success 201 {object} entity.Venue
// @Failure 403 {object} errors.AppError
// @Router /owner/venues [post]
func (c *VenueController) CreateVenue(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateVenueRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	venue, appErr := c.VenueService.CreateVenue(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, venue, "Venue created successfully")
}

// GetMyVenues handles GET /owner/venues
// @Summary List the caller's venues
// @Tags Venue
// @Security BearerAuth
// @Produce json
// @Success 200 {array} entity.Venue
// @Router /owner/venues [get]
func (c *VenueController) GetMyVenues(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	venues, appErr := c.VenueService.GetMyVenues(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, venues, "Success")
}

// UpdateVenue handles PUT /owner/venues/:id
func (c *VenueController) UpdateVenue(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid venue ID")
	}

	var req dto.UpdateVenueRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	venue, appErr := c.VenueService.UpdateVenue(ctx.Request().Context(), venueID, claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, venue, "Venue updated successfully")
}

// DeactivateVenue handles POST /owner/venues/:id/deactivate
func (c *VenueController) DeactivateVenue(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid venue ID")
	}

	if appErr := c.VenueService.DeactivateVenue(ctx.Request().Context(), venueID, claims.UserID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Venue deactivated")
}

// GetVenueBySlug handles GET /public/venues/:slug
// @Summary Public venue page
// @Tags Venue
// @Produce json
// @Param slug path string true "Venue slug"
// @Success 200 {object} dto.VenueDetailResponse
// @Failure 404 {object} errors.AppError
// @Router /public/venues/{slug} [get]
func (c *VenueController) GetVenueBySlug(ctx echo.Context) error {
	result, appErr := c.VenueService.GetVenueBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// CreateCourt handles POST /owner/venues/:id/courts
// @Summary Create a court in a venue
// @Description Gated by the plan's per-venue court quota
// @Tags Venue
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.CreateCourtRequest true "Court details"
// @Success 201 {object} entity.Court
// @Failure 403 {object} errors.AppError
// @Router /owner/venues/{id}/courts [post]
func (c *VenueController) CreateCourt(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	venueID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid venue ID")
	}

	var req dto.CreateCourtRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	court, appErr := c.VenueService.CreateCourt(ctx.Request().Context(), venueID, claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, court, "Court created successfully")
}

// UpdateCourt handles PUT /owner/courts/:id
func (c *VenueController) UpdateCourt(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	courtID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid court ID")
	}

	var req dto.UpdateCourtRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	court, appErr := c.VenueService.UpdateCourt(ctx.Request().Context(), courtID, claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, court, "Court updated successfully")
}

// DeactivateCourt handles POST /owner/courts/:id/deactivate
func (c *VenueController) DeactivateCourt(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	courtID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid court ID")
	}

	if appErr := c.VenueService.DeactivateCourt(ctx.Request().Context(), courtID, claims.UserID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Court deactivated")
}

// ListSports handles GET /public/sports
func (c *VenueController) ListSports(ctx echo.Context) error {
	sports, appErr := c.VenueService.ListSports(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, sports, "Success")
}
