package handlers

import (
	"github.com/a-h/templ"
	"github.com/amirphl/Omoikane/app/validation"
	"github.com/amirphl/Omoikane/app/views"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

// UIHandler serves the server-rendered admin pages
type UIHandler struct {
	baseHandler
	specializations businessflow.SpecializationFlow
}

func NewUIHandler(specializations businessflow.SpecializationFlow, v *validation.Validator) *UIHandler {
	return &UIHandler{
		baseHandler:     newBaseHandler(v),
		specializations: specializations,
	}
}

// SpecializationsPage renders every specialization with its active checkbox
// @Summary Specializations page
// @Tags Admin UI
// @Produce html
// @Security BearerAuth
// @Success 200 {string} string "HTML page"
// @Router /api/v1/admin/ui/specializations [get]
func (h *UIHandler) SpecializationsPage(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/ui/specializations")
	defer cancel()

	items, err := h.specializations.All(ctx)
	if err != nil {
		return h.flowError(c, err, "Render specializations")
	}

	return h.render(c, views.SpecializationsPage(items))
}

// ToggleSpecialization flips the active flag and answers with the re-rendered checkbox
// @Summary Toggle specialization
// @Tags Admin UI
// @Produce html
// @Security BearerAuth
// @Param id path int true "Specialization ID"
// @Success 200 {string} string "HTML fragment"
// @Failure 404 {object} dto.APIResponse "Specialization not found"
// @Router /api/v1/admin/ui/specializations/{id}/toggle [post]
func (h *UIHandler) ToggleSpecialization(c fiber.Ctx) error {
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/ui/specializations/:id/toggle")
	defer cancel()

	item, err := h.specializations.Toggle(ctx, id)
	if err != nil {
		return h.flowError(c, err, "Toggle specialization")
	}

	return h.render(c, views.SpecializationToggle(*item))
}

func (h *UIHandler) render(c fiber.Ctx, component templ.Component) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Context(), c.Response().BodyWriter())
}
