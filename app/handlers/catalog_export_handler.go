package handlers

import (
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/gofiber/fiber/v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CatalogExportHandler struct {
	baseHandler
	flow businessflow.CatalogExportFlow
}

func NewCatalogExportHandler(flow businessflow.CatalogExportFlow, v *validation.Validator) *CatalogExportHandler {
	return &CatalogExportHandler{
		baseHandler: newBaseHandler(v),
		flow:        flow,
	}
}

// Export downloads every lookup table as one XLSX workbook
// @Summary Export catalog
// @Description One sheet per lookup table ordered by id
// @Tags Admin Catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "Workbook"
// @Failure 500 {object} dto.APIResponse "Export failed"
// @Router /api/v1/admin/catalog/export [get]
func (h *CatalogExportHandler) Export(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/v1/admin/catalog/export")
	defer cancel()

	filename, content, err := h.flow.Export(ctx)
	if err != nil {
		return h.flowError(c, err, "Catalog export")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(content)
}
