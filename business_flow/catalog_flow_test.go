package businessflow_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/amirphl/Omoikane/app/dto"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorCode(t *testing.T, err error) string {
	t.Helper()
	be, ok := businessflow.AsBusinessError(err)
	require.True(t, ok, "expected a business error, got %v", err)
	return be.Code
}

func TestServiceFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		flow := businessflow.NewServiceFlow(repository.NewServiceRepository(testDB.DB))

		t.Run("CreateAndGet", func(t *testing.T) {
			created, err := flow.Create(ctx, &dto.ServiceRequest{Name: "  Translation  "})
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.Equal(t, "Translation", created.Name)
			assert.NotEmpty(t, created.CreatedAt)

			got, err := flow.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Name, got.Name)
		})

		t.Run("Duplicate", func(t *testing.T) {
			_, err := flow.Create(ctx, &dto.ServiceRequest{Name: "Proofreading"})
			require.NoError(t, err)

			_, err = flow.Create(ctx, &dto.ServiceRequest{Name: "Proofreading"})
			require.Error(t, err)
			assert.True(t, businessflow.IsAlreadyExists(err))
			assert.Equal(t, "SERVICE_EXISTS", errorCode(t, err))
		})

		t.Run("GetMissing", func(t *testing.T) {
			_, err := flow.Get(ctx, 999999)
			require.Error(t, err)
			assert.True(t, businessflow.IsNotFound(err))
			assert.Equal(t, "SERVICE_NOT_FOUND", errorCode(t, err))
		})

		t.Run("Update", func(t *testing.T) {
			created, err := flow.Create(ctx, &dto.ServiceRequest{Name: "Subtitling"})
			require.NoError(t, err)

			updated, err := flow.Update(ctx, created.ID, &dto.ServiceRequest{Name: "Subtitling and captioning"})
			require.NoError(t, err)
			assert.Equal(t, "Subtitling and captioning", updated.Name)

			_, err = flow.Update(ctx, created.ID, &dto.ServiceRequest{Name: "Translation"})
			assert.True(t, businessflow.IsAlreadyExists(err))

			_, err = flow.Update(ctx, 999999, &dto.ServiceRequest{Name: "Nothing"})
			assert.True(t, businessflow.IsNotFound(err))
		})

		t.Run("Delete", func(t *testing.T) {
			created, err := flow.Create(ctx, &dto.ServiceRequest{Name: "Interpreting"})
			require.NoError(t, err)

			require.NoError(t, flow.Delete(ctx, created.ID))

			err = flow.Delete(ctx, created.ID)
			assert.True(t, businessflow.IsNotFound(err))
		})

		t.Run("ListPagingAndSearch", func(t *testing.T) {
			for i := 1; i <= 5; i++ {
				_, err := flow.Create(ctx, &dto.ServiceRequest{Name: fmt.Sprintf("Paged %02d", i)})
				require.NoError(t, err)
			}

			resp, err := flow.List(ctx, &dto.ListRequest{Page: 2, PageSize: 2, Search: "paged"})
			require.NoError(t, err)
			assert.Equal(t, int64(5), resp.Pagination.Total)
			assert.Equal(t, 3, resp.Pagination.TotalPages)
			require.Len(t, resp.Items, 2)
			assert.Equal(t, "Paged 03", resp.Items[0].Name)
			assert.Equal(t, "Paged 04", resp.Items[1].Name)

			all, err := flow.List(ctx, nil)
			require.NoError(t, err)
			assert.Equal(t, utils.DefaultPageSize, all.Pagination.PageSize)
			assert.GreaterOrEqual(t, all.Pagination.Total, int64(5))
		})

		t.Run("ListRejectsBadPaging", func(t *testing.T) {
			_, err := flow.List(ctx, &dto.ListRequest{Page: -1})
			assert.True(t, businessflow.IsInvalidPage(err))

			_, err = flow.List(ctx, &dto.ListRequest{PageSize: utils.MaxPageSize + 1})
			assert.True(t, businessflow.IsInvalidPageSize(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestSpecializationFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		flow := businessflow.NewSpecializationFlow(repository.NewSpecializationRepository(testDB.DB))

		created, err := flow.Create(ctx, &dto.SpecializationRequest{DomainName: "Legal"})
		require.NoError(t, err)
		assert.True(t, created.ActiveFlag, "new specializations are active by default")

		inactive, err := flow.Create(ctx, &dto.SpecializationRequest{DomainName: "Medical", ActiveFlag: utils.ToPtr(false)})
		require.NoError(t, err)
		assert.False(t, inactive.ActiveFlag)

		t.Run("SetActive", func(t *testing.T) {
			got, err := flow.SetActive(ctx, created.ID, false)
			require.NoError(t, err)
			assert.False(t, got.ActiveFlag)

			stored, err := flow.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.False(t, stored.ActiveFlag)
		})

		t.Run("Toggle", func(t *testing.T) {
			got, err := flow.Toggle(ctx, inactive.ID)
			require.NoError(t, err)
			assert.True(t, got.ActiveFlag)

			got, err = flow.Toggle(ctx, inactive.ID)
			require.NoError(t, err)
			assert.False(t, got.ActiveFlag)

			_, err = flow.Toggle(ctx, 999999)
			assert.True(t, businessflow.IsNotFound(err))
		})

		t.Run("UpdateKeepsFlagWhenAbsent", func(t *testing.T) {
			_, err := flow.SetActive(ctx, created.ID, true)
			require.NoError(t, err)

			got, err := flow.Update(ctx, created.ID, &dto.SpecializationRequest{DomainName: "Legal and patents"})
			require.NoError(t, err)
			assert.Equal(t, "Legal and patents", got.DomainName)
			assert.True(t, got.ActiveFlag)
		})

		t.Run("AllOrderedByDomain", func(t *testing.T) {
			all, err := flow.All(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Legal and patents", all[0].DomainName)
			assert.Equal(t, "Medical", all[1].DomainName)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLookupFlows(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()

		t.Run("LanguageCodeIsLowercased", func(t *testing.T) {
			flow := businessflow.NewLanguageFlow(repository.NewLanguageRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.LanguageRequest{Name: "German", Code: "DE"})
			require.NoError(t, err)
			assert.Equal(t, "de", got.Code)

			_, err = flow.Create(ctx, &dto.LanguageRequest{Name: "Deutsch", Code: "de"})
			assert.True(t, businessflow.IsAlreadyExists(err))
			assert.Equal(t, "LANGUAGE_EXISTS", errorCode(t, err))
		})

		t.Run("Currency", func(t *testing.T) {
			flow := businessflow.NewCurrencyFlow(repository.NewCurrencyRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.CurrencyRequest{Code: "EUR", Symbol: "€", Name: "Euro"})
			require.NoError(t, err)
			assert.Equal(t, "€", got.Symbol)

			_, err = flow.Create(ctx, &dto.CurrencyRequest{Code: "EUR", Symbol: "E", Name: "Euro again"})
			assert.True(t, businessflow.IsAlreadyExists(err))
		})

		t.Run("RoleCategory", func(t *testing.T) {
			flow := businessflow.NewRoleFlow(repository.NewRoleRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.RoleRequest{Name: "Reviewer", Category: utils.ToPtr("quality")})
			require.NoError(t, err)
			require.NotNil(t, got.Category)
			assert.Equal(t, "quality", *got.Category)

			got, err = flow.Update(ctx, got.ID, &dto.RoleRequest{Name: "Reviewer"})
			require.NoError(t, err)
			assert.Nil(t, got.Category)
		})

		t.Run("Unit", func(t *testing.T) {
			flow := businessflow.NewUnitFlow(repository.NewUnitRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.UnitRequest{Name: "Word"})
			require.NoError(t, err)

			list, err := flow.List(ctx, &dto.ListRequest{Search: "wor"})
			require.NoError(t, err)
			require.Len(t, list.Items, 1)
			assert.Equal(t, got.ID, list.Items[0].ID)
		})

		t.Run("PaymentMethodInUse", func(t *testing.T) {
			fixtures := testingutil.NewTestFixtures(testDB)
			flow := businessflow.NewPaymentMethodFlow(repository.NewPaymentMethodRepository(testDB.DB))

			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			apm, err := fixtures.CreateTestAdminPaymentMethod(admin, false)
			require.NoError(t, err)

			err = flow.Delete(ctx, apm.PaymentMethodID)
			require.Error(t, err)
			assert.True(t, businessflow.IsInUse(err))
			assert.Equal(t, "PAYMENT_METHOD_IN_USE", errorCode(t, err))

			_, err = flow.Get(ctx, apm.PaymentMethodID)
			require.NoError(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestContactFlows(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()

		t.Run("ClientContact", func(t *testing.T) {
			flow := businessflow.NewClientContactFlow(repository.NewClientContactPersonRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.ClientContactPersonRequest{
				ClientName: "Acme",
				FullName:   "Jane Roe",
				Email:      "Jane.Roe@Acme.example",
				Phone:      utils.ToPtr("+4915112345678"),
			})
			require.NoError(t, err)
			assert.Equal(t, "Acme", got.Company)
			assert.Equal(t, "jane.roe@acme.example", got.Email)

			_, err = flow.Create(ctx, &dto.ClientContactPersonRequest{
				ClientName: "Other",
				FullName:   "Jane Doe",
				Email:      "jane.roe@acme.example",
			})
			assert.True(t, businessflow.IsAlreadyExists(err))
			assert.Equal(t, "CLIENT_CONTACT_EXISTS", errorCode(t, err))

			list, err := flow.List(ctx, &dto.ListRequest{Search: "roe"})
			require.NoError(t, err)
			require.Len(t, list.Items, 1)
		})

		t.Run("VendorContactSharesEmailWithClient", func(t *testing.T) {
			flow := businessflow.NewVendorContactFlow(repository.NewVendorContactPersonRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.VendorContactPersonRequest{
				VendorName: "Lingua GmbH",
				FullName:   "Jane Roe",
				Email:      "jane.roe@acme.example",
			})
			require.NoError(t, err)
			assert.Equal(t, "Lingua GmbH", got.Company)

			updated, err := flow.Update(ctx, got.ID, &dto.VendorContactPersonRequest{
				VendorName: "Lingua AG",
				FullName:   "Jane Roe",
				Email:      "jane@lingua.example",
			})
			require.NoError(t, err)
			assert.Equal(t, "Lingua AG", updated.Company)
			assert.Equal(t, "jane@lingua.example", updated.Email)

			require.NoError(t, flow.Delete(ctx, got.ID))
		})

		t.Run("EmailPaymentDetail", func(t *testing.T) {
			flow := businessflow.NewEmailPaymentDetailFlow(repository.NewEmailPaymentDetailRepository(testDB.DB))

			got, err := flow.Create(ctx, &dto.EmailPaymentDetailRequest{Email: "Payouts@Example.com", AccountHolderName: "Jane Roe"})
			require.NoError(t, err)
			assert.Equal(t, "payouts@example.com", got.Email)

			list, err := flow.List(ctx, &dto.ListRequest{Search: "jane"})
			require.NoError(t, err)
			require.Len(t, list.Items, 1)
			assert.Equal(t, got.ID, list.Items[0].ID)

			_, err = flow.Get(ctx, 999999)
			assert.Equal(t, "EMAIL_PAYMENT_DETAIL_NOT_FOUND", errorCode(t, err))
		})

		return nil
	})
	require.NoError(t, err)
}
