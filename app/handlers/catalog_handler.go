package handlers

import (
	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

// CatalogHandler serves the CRUD endpoints of one lookup resource.
// R is the request payload and D the response representation.
type CatalogHandler[R any, D any] struct {
	baseHandler
	flow businessflow.CatalogFlow[R, D]
	// path is the resource segment under /api/v1/admin, e.g. "services"
	path string
	// label names the resource in response messages
	label string
}

func NewCatalogHandler[R any, D any](flow businessflow.CatalogFlow[R, D], path, label string, v *validation.Validator) *CatalogHandler[R, D] {
	return &CatalogHandler[R, D]{
		baseHandler: newBaseHandler(v),
		flow:        flow,
		path:        path,
		label:       label,
	}
}

// Register mounts the CRUD routes on router
func (h *CatalogHandler[R, D]) Register(router fiber.Router) {
	group := router.Group("/" + h.path)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

func (h *CatalogHandler[R, D]) endpoint(suffix string) string {
	return "/api/v1/admin/" + h.path + suffix
}

// List returns one page of the resource
// @Summary List lookup records
// @Description Lists services, specializations, payment-methods, languages, currencies, units, roles, client-contacts, vendor-contacts or email-payment-details
// @Tags Admin Catalog
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Case-insensitive substring search"
// @Success 200 {object} dto.APIResponse "Page of records"
// @Failure 400 {object} dto.APIResponse "Invalid paging"
// @Router /api/v1/admin/{resource} [get]
func (h *CatalogHandler[R, D]) List(c fiber.Ctx) error {
	var req dto.ListRequest
	if ok, err := h.bindQuery(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, h.endpoint(""))
	defer cancel()

	page, err := h.flow.List(ctx, &req)
	if err != nil {
		return h.flowError(c, err, "List "+h.label)
	}

	return h.SuccessResponse(c, fiber.StatusOK, capitalizeLabel(h.label)+" list retrieved", page)
}

// Get returns one record
// @Summary Get lookup record
// @Tags Admin Catalog
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse "Record"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Router /api/v1/admin/{resource}/{id} [get]
func (h *CatalogHandler[R, D]) Get(c fiber.Ctx) error {
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, h.endpoint("/:id"))
	defer cancel()

	item, err := h.flow.Get(ctx, id)
	if err != nil {
		return h.flowError(c, err, "Get "+h.label)
	}

	return h.SuccessResponse(c, fiber.StatusOK, capitalizeLabel(h.label)+" retrieved", item)
}

// Create adds a record
// @Summary Create lookup record
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Success 201 {object} dto.APIResponse "Created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 409 {object} dto.APIResponse "Duplicate value"
// @Router /api/v1/admin/{resource} [post]
func (h *CatalogHandler[R, D]) Create(c fiber.Ctx) error {
	var req R
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, h.endpoint(""))
	defer cancel()

	item, err := h.flow.Create(ctx, &req)
	if err != nil {
		return h.flowError(c, err, "Create "+h.label)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, capitalizeLabel(h.label)+" created", item)
}

// Update replaces a record's editable fields
// @Summary Update lookup record
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse "Updated"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Failure 409 {object} dto.APIResponse "Duplicate value"
// @Router /api/v1/admin/{resource}/{id} [put]
func (h *CatalogHandler[R, D]) Update(c fiber.Ctx) error {
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	var req R
	if ok, err := h.bindJSON(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, h.endpoint("/:id"))
	defer cancel()

	item, err := h.flow.Update(ctx, id, &req)
	if err != nil {
		return h.flowError(c, err, "Update "+h.label)
	}

	return h.SuccessResponse(c, fiber.StatusOK, capitalizeLabel(h.label)+" updated", item)
}

// Delete removes a record
// @Summary Delete lookup record
// @Tags Admin Catalog
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 404 {object} dto.APIResponse "Not found"
// @Failure 409 {object} dto.APIResponse "Still referenced"
// @Router /api/v1/admin/{resource}/{id} [delete]
func (h *CatalogHandler[R, D]) Delete(c fiber.Ctx) error {
	id, ok, err := h.pathID(c)
	if !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, h.endpoint("/:id"))
	defer cancel()

	if err := h.flow.Delete(ctx, id); err != nil {
		return h.flowError(c, err, "Delete "+h.label)
	}

	return h.SuccessResponse(c, fiber.StatusOK, capitalizeLabel(h.label)+" deleted", nil)
}

func capitalizeLabel(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
