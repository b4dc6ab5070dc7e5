package businessflow

import (
	"context"
	"strconv"

	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	"github.com/amirphl/Omoikane/utils"
	"github.com/xuri/excelize/v2"
)

const CatalogExportFilename = "catalog.xlsx"

// CatalogExportFlow renders every lookup table into one workbook
type CatalogExportFlow interface {
	Export(ctx context.Context) (filename string, content []byte, err error)
}

// CatalogRepositories groups the lookup repositories read by the export
type CatalogRepositories struct {
	Services        repository.ServiceRepository
	Specializations repository.SpecializationRepository
	PaymentMethods  repository.PaymentMethodRepository
	Languages       repository.LanguageRepository
	Currencies      repository.CurrencyRepository
	Units           repository.UnitRepository
	Roles           repository.RoleRepository
}

// CatalogExportFlowImpl implements CatalogExportFlow
type CatalogExportFlowImpl struct {
	repos CatalogRepositories
}

func NewCatalogExportFlow(repos CatalogRepositories) CatalogExportFlow {
	return &CatalogExportFlowImpl{repos: repos}
}

// catalogSheet is one worksheet: a header row followed by data rows
type catalogSheet struct {
	name   string
	header []string
	rows   func(ctx context.Context) ([][]string, error)
}

// Export writes one sheet per lookup table, in a fixed order, ids ascending
func (f *CatalogExportFlowImpl) Export(ctx context.Context) (string, []byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	for i, sheet := range f.sheets() {
		if i == 0 {
			if err := xl.SetSheetName(xl.GetSheetName(0), sheet.name); err != nil {
				return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
			}
		} else if _, err := xl.NewSheet(sheet.name); err != nil {
			return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
		}

		header := sheet.header
		if err := xl.SetSheetRow(sheet.name, "A1", &header); err != nil {
			return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
		}

		rows, err := sheet.rows(ctx)
		if err != nil {
			return "", nil, NewBusinessErrorf("CATALOG_EXPORT_FAILED", "Failed to read %s", err, sheet.name)
		}
		for ri, record := range rows {
			cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
			if err := xl.SetSheetRow(sheet.name, cellRef, &record); err != nil {
				return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
			}
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return CatalogExportFilename, buf.Bytes(), nil
}

func (f *CatalogExportFlowImpl) sheets() []catalogSheet {
	r := f.repos
	return []catalogSheet{
		{
			name:   "services",
			header: []string{"id", "name", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.Services.ByFilter(ctx, models.ServiceFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.Service) []string {
					return []string{uintCell(m.ID), m.Name, utils.FormatRFC3339(m.CreatedAt), utils.FormatRFC3339(m.UpdatedAt)}
				})
			},
		},
		{
			name:   "specializations",
			header: []string{"id", "domain_name", "active_flag", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.Specializations.ByFilter(ctx, models.SpecializationFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.Specialization) []string {
					return []string{
						uintCell(m.ID),
						m.DomainName,
						strconv.FormatBool(utils.IsTrue(m.ActiveFlag)),
						utils.FormatRFC3339(m.CreatedAt),
						utils.FormatRFC3339(m.UpdatedAt),
					}
				})
			},
		},
		{
			name:   "payment_methods",
			header: []string{"id", "name", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.PaymentMethods.ByFilter(ctx, models.PaymentMethodFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.PaymentMethod) []string {
					return []string{uintCell(m.ID), m.Name, utils.FormatRFC3339(m.CreatedAt), utils.FormatRFC3339(m.UpdatedAt)}
				})
			},
		},
		{
			name:   "languages",
			header: []string{"id", "name", "code", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.Languages.ByFilter(ctx, models.LanguageFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.Language) []string {
					return []string{uintCell(m.ID), m.Name, m.Code, utils.FormatRFC3339(m.CreatedAt), utils.FormatRFC3339(m.UpdatedAt)}
				})
			},
		},
		{
			name:   "currencies",
			header: []string{"id", "code", "symbol", "name", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.Currencies.ByFilter(ctx, models.CurrencyFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.Currency) []string {
					return []string{
						uintCell(m.ID),
						m.Code,
						m.Symbol,
						m.Name,
						utils.FormatRFC3339(m.CreatedAt),
						utils.FormatRFC3339(m.UpdatedAt),
					}
				})
			},
		},
		{
			name:   "units",
			header: []string{"id", "name", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.Units.ByFilter(ctx, models.UnitFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.Unit) []string {
					return []string{uintCell(m.ID), m.Name, utils.FormatRFC3339(m.CreatedAt), utils.FormatRFC3339(m.UpdatedAt)}
				})
			},
		},
		{
			name:   "roles",
			header: []string{"id", "name", "category", "created_at", "updated_at"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := r.Roles.ByFilter(ctx, models.RoleFilter{}, "id ASC", 0, 0)
				return mapRows(items, err, func(m *models.Role) []string {
					return []string{
						uintCell(m.ID),
						m.Name,
						utils.Deref(m.Category),
						utils.FormatRFC3339(m.CreatedAt),
						utils.FormatRFC3339(m.UpdatedAt),
					}
				})
			},
		},
	}
}

func mapRows[M any](items []*M, err error, row func(*M) []string) ([][]string, error) {
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(items))
	for _, m := range items {
		out = append(out, row(m))
	}
	return out, nil
}

func uintCell(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
