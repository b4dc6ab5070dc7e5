package handlers

import (
	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

// SpecializationHandler adds the active flag endpoint to the specialization CRUD
type SpecializationHandler struct {
	*CatalogHandler[dto.SpecializationRequest, dto.SpecializationDTO]
	specializations businessflow.SpecializationFlow
}

func NewSpecializationHandler(flow businessflow.SpecializationFlow, v *validation.Validator) *SpecializationHandler {
	return &SpecializationHandler{
		CatalogHandler:  NewCatalogHandler[dto.SpecializationRequest, dto.SpecializationDTO](flow, "specializations", "specialization", v),
		specializations: flow,
	}
}

// Register mounts the CRUD routes plus PATCH /:id/active
func (h *SpecializationHandler) Register(router fiber.Router) {
	router.Patch("/specializations/:id/active", h.SetActive)
	h.CatalogHandler.Register(router)
}

// SetActive sets a specialization's active flag
// @Summary Set specialization active flag
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Specialization ID"
// @Param request body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} dto.APIResponse{data=dto.SpecializationDTO} "Specialization updated"
// @Failure 404 {object} dto.APIResponse "Specialization not found"
// @Router /api/v1/admin/specializations/{id}/active [patch]
func (h *SpecializationHandler) SetActive(c fiber.Ctx) error {
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	var req dto.SetActiveRequest
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/specializations/:id/active")
	defer cancel()

	item, err := h.specializations.SetActive(ctx, id, *req.ActiveFlag)
	if err != nil {
		return h.flowError(c, err, "Set specialization active flag")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Specialization updated", item)
}
