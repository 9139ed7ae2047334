package controller

import (
	"courtbook/core/constants"
	"courtbook/core/controller"
	"courtbook/core/errors"
	"courtbook/core/logger"
	"courtbook/core/storage"
	"courtbook/core/utils"
	"courtbook/modules/subscription/dto"
	"courtbook/modules/subscription/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SubscriptionController struct {
	controller.BaseController
	SubscriptionService service.SubscriptionServiceInterface
	ProofStorage        storage.ProofStorage
}

func NewSubscriptionController(svc service.SubscriptionServiceInterface, proofStorage storage.ProofStorage) *SubscriptionController {
	return &SubscriptionController{
		BaseController:      controller.NewBaseController(),
		SubscriptionService: svc,
		ProofStorage:        proofStorage,
	}
}

func (c *SubscriptionController) getClaims(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// ListPlans handles GET /public/plans
// @Summary List subscription plans
// @Tags Subscription
// @Produce json
// @Success 200 {array} entity.Plan
// @Router /public/plans [get]
func (c *SubscriptionController) ListPlans(ctx echo.Context) error {
	plans, appErr := c.SubscriptionService.ListPlans(ctx.Request().Context(), true)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, plans, "Success")
}

// CreatePlan handles POST /admin/plans
// @Summary Create a subscription plan
// @Tags Subscription
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} entity.Plan
// @Failure 400 {object} errors.AppError
// @Router /admin/plans [post]
func (c *SubscriptionController) CreatePlan(ctx echo.Context) error {
	var req dto.CreatePlanRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	plan, appErr := c.SubscriptionService.CreatePlan(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, plan, "Plan created successfully")
}

// Submit handles POST /owner/subscription (multipart: plan_id, utr?, proof?)
// @Summary Submit a subscription with payment evidence
// @Tags Subscription
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} errors.AppError
// @Router /owner/subscription [post]
func (c *SubscriptionController) Submit(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := dto.SubmitSubscriptionRequest{PlanID: ctx.FormValue("plan_id")}
	if utr := ctx.FormValue("utr"); utr != "" {
		req.UTR = &utr
	}

	var proofRef *string
	if file, err := ctx.FormFile("proof"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Cannot read proof file")
		}
		defer src.Close()

		key, err := c.ProofStorage.UploadProof(ctx.Request().Context(), "subscriptions/"+claims.UserID.String(), file.Header.Get("Content-Type"), src)
		if err != nil {
			// Evidence upload failure should not lose the submission; the
			// owner can re-upload from their dashboard.
			logger.Warn("SubscriptionController:Submit:ProofUpload", "owner_id", claims.UserID, "error", err)
		} else {
			proofRef = &key
		}
	}

	result, appErr := c.SubscriptionService.Submit(ctx.Request().Context(), claims.UserID, &req, proofRef)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Subscription submitted, pending verification")
}

// GetMySubscription handles GET /owner/subscription
// @Summary Get the caller's current subscription and usage
// @Tags Subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SubscriptionResponse
// @Router /owner/subscription [get]
func (c *SubscriptionController) GetMySubscription(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.SubscriptionService.GetMySubscription(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// Activate handles POST /admin/subscriptions/:id/activate
// @Summary Activate a pending subscription after payment verification
// @Tags Subscription
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.AppError
// @Router /admin/subscriptions/{id}/activate [post]
func (c *SubscriptionController) Activate(ctx echo.Context) error {
	subID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid subscription ID")
	}

	if appErr := c.SubscriptionService.Activate(ctx.Request().Context(), subID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Subscription activated")
}
