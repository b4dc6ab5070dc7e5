package handlers

import (
	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

type ProfileHandlerInterface interface {
	GetProfile(c fiber.Ctx) error
	UpdateProfile(c fiber.Ctx) error
}

type ProfileHandler struct {
	baseHandler
	flow businessflow.ProfileFlow
}

func NewProfileHandler(flow businessflow.ProfileFlow, v *validation.Validator) ProfileHandlerInterface {
	return &ProfileHandler{
		baseHandler: newBaseHandler(v),
		flow:        flow,
	}
}

// GetProfile returns the authenticated admin's account and details
// @Summary Get profile
// @Description Retrieve the authenticated admin's account and optional details
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AdminProfileResponse} "Profile retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/profile [get]
func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/profile")
	defer cancel()

	res, err := h.flow.GetProfile(ctx, adminID)
	if err != nil {
		return h.flowError(c, err, "Get profile")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", res)
}

// UpdateProfile creates or patches the authenticated admin's details
// @Summary Update profile
// @Description Absent fields stay unchanged, empty strings clear the field
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminDetailsRequest true "Profile details"
// @Success 200 {object} dto.APIResponse{data=dto.AdminProfileResponse} "Profile updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 409 {object} dto.APIResponse "Username taken"
// @Router /api/v1/admin/profile [put]
func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}

	var req dto.AdminDetailsRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/profile")
	defer cancel()

	res, err := h.flow.UpdateProfile(ctx, adminID, &req)
	if err != nil {
		return h.flowError(c, err, "Update profile")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Profile updated successfully", res)
}
