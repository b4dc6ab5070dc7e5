package businessflow_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/amirphl/Omoikane/app/dto"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCatalogExportFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		db := testDB.DB

		_, err := businessflow.NewServiceFlow(repository.NewServiceRepository(db)).Create(ctx, &dto.ServiceRequest{Name: "Translation"})
		require.NoError(t, err)
		_, err = businessflow.NewSpecializationFlow(repository.NewSpecializationRepository(db)).
			Create(ctx, &dto.SpecializationRequest{DomainName: "Legal", ActiveFlag: utils.ToPtr(false)})
		require.NoError(t, err)
		_, err = businessflow.NewRoleFlow(repository.NewRoleRepository(db)).Create(ctx, &dto.RoleRequest{Name: "Reviewer"})
		require.NoError(t, err)

		flow := businessflow.NewCatalogExportFlow(businessflow.CatalogRepositories{
			Services:        repository.NewServiceRepository(db),
			Specializations: repository.NewSpecializationRepository(db),
			PaymentMethods:  repository.NewPaymentMethodRepository(db),
			Languages:       repository.NewLanguageRepository(db),
			Currencies:      repository.NewCurrencyRepository(db),
			Units:           repository.NewUnitRepository(db),
			Roles:           repository.NewRoleRepository(db),
		})

		filename, content, err := flow.Export(ctx)
		require.NoError(t, err)
		assert.Equal(t, businessflow.CatalogExportFilename, filename)

		xl, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		defer func() { _ = xl.Close() }()

		assert.Equal(t, []string{"services", "specializations", "payment_methods", "languages", "currencies", "units", "roles"}, xl.GetSheetList())

		rows, err := xl.GetRows("services")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"id", "name", "created_at", "updated_at"}, rows[0])
		assert.Equal(t, "Translation", rows[1][1])

		rows, err = xl.GetRows("specializations")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "false", rows[1][2])

		rows, err = xl.GetRows("roles")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "", rows[1][2])

		rows, err = xl.GetRows("currencies")
		require.NoError(t, err)
		assert.Len(t, rows, 1, "empty tables keep the header row")

		return nil
	})
	require.NoError(t, err)
}
