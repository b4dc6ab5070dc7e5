package handlers

import (
	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

// AdminPaymentMethodHandlerInterface defines the endpoints for the payment methods of the calling admin
type AdminPaymentMethodHandlerInterface interface {
	List(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// AdminPaymentMethodHandler implements AdminPaymentMethodHandlerInterface
type AdminPaymentMethodHandler struct {
	baseHandler
	flow businessflow.AdminPaymentMethodFlow
}

func NewAdminPaymentMethodHandler(flow businessflow.AdminPaymentMethodFlow, v *validation.Validator) AdminPaymentMethodHandlerInterface {
	return &AdminPaymentMethodHandler{
		baseHandler: newBaseHandler(v),
		flow:        flow,
	}
}

// List returns the payment methods attached to the calling admin
// @Summary List my payment methods
// @Tags Admin Payment Methods
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminPaymentMethodDTO} "Payment methods"
// @Router /api/v1/admin/payment-methods/mine [get]
func (h *AdminPaymentMethodHandler) List(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/payment-methods/mine")
	defer cancel()

	items, err := h.flow.List(ctx, adminID)
	if err != nil {
		return h.flowError(c, err, "List admin payment methods")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Payment methods retrieved", items)
}

// Create attaches a payment method to the calling admin
// @Summary Attach payment method
// @Description Setting is_default clears the default flag on the admin's other payment methods
// @Tags Admin Payment Methods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdminPaymentMethodRequest true "Payment method"
// @Success 201 {object} dto.APIResponse{data=dto.AdminPaymentMethodDTO} "Payment method attached"
// @Failure 400 {object} dto.APIResponse "Unknown payment method or inactive default"
// @Failure 409 {object} dto.APIResponse "Already attached"
// @Router /api/v1/admin/payment-methods/mine [post]
func (h *AdminPaymentMethodHandler) Create(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}

	var req dto.AdminPaymentMethodRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/payment-methods/mine")
	defer cancel()

	item, err := h.flow.Create(ctx, adminID, &req)
	if err != nil {
		return h.flowError(c, err, "Attach payment method")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Payment method attached", item)
}

// Update changes the flags of one of the calling admin's payment methods
// @Summary Update my payment method
// @Tags Admin Payment Methods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin payment method ID"
// @Param request body dto.UpdateAdminPaymentMethodRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=dto.AdminPaymentMethodDTO} "Payment method updated"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/admin/payment-methods/mine/{id} [patch]
func (h *AdminPaymentMethodHandler) Update(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	var req dto.UpdateAdminPaymentMethodRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/payment-methods/mine/:id")
	defer cancel()

	item, err := h.flow.Update(ctx, adminID, id, &req)
	if err != nil {
		return h.flowError(c, err, "Update payment method")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Payment method updated", item)
}

// Delete detaches one of the calling admin's payment methods
// @Summary Detach payment method
// @Tags Admin Payment Methods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin payment method ID"
// @Success 200 {object} dto.APIResponse "Payment method detached"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/admin/payment-methods/mine/{id} [delete]
func (h *AdminPaymentMethodHandler) Delete(c fiber.Ctx) error {
	adminID, ok, err := h.adminID(c)
	if !ok {
		return err
	}
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/payment-methods/mine/:id")
	defer cancel()

	if err := h.flow.Delete(ctx, adminID, id); err != nil {
		return h.flowError(c, err, "Detach payment method")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Payment method detached", nil)
}
