package businessflow_test

import (
	"context"
	"testing"

	"github.com/amirphl/Omoikane/app/dto"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminPaymentMethodFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := context.Background()

		repo := repository.NewAdminPaymentMethodRepository(testDB.DB)
		flow := businessflow.NewAdminPaymentMethodFlow(
			repo,
			repository.NewPaymentMethodRepository(testDB.DB),
			repository.NewEmailPaymentDetailRepository(testDB.DB),
			testDB.DB,
		)

		defaults := func(t *testing.T, adminID uint) []uint {
			t.Helper()
			items, err := flow.List(ctx, adminID)
			require.NoError(t, err)
			var ids []uint
			for _, item := range items {
				if item.IsDefault {
					ids = append(ids, item.ID)
				}
			}
			return ids
		}

		t.Run("CreateWithDetail", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			pm, err := fixtures.CreateTestPaymentMethod()
			require.NoError(t, err)
			detail, err := fixtures.CreateTestEmailPaymentDetail()
			require.NoError(t, err)

			got, err := flow.Create(ctx, admin.ID, &dto.AdminPaymentMethodRequest{
				PaymentMethodID:      pm.ID,
				EmailPaymentDetailID: &detail.ID,
			})
			require.NoError(t, err)
			assert.True(t, got.ActiveFlag)
			assert.False(t, got.IsDefault)
			require.NotNil(t, got.PaymentMethod)
			assert.Equal(t, pm.Name, got.PaymentMethod.Name)
			require.NotNil(t, got.EmailPaymentDetail)
			assert.Equal(t, detail.Email, got.EmailPaymentDetail.Email)
		})

		t.Run("CreateUnknownReferences", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			pm, err := fixtures.CreateTestPaymentMethod()
			require.NoError(t, err)

			_, err = flow.Create(ctx, admin.ID, &dto.AdminPaymentMethodRequest{PaymentMethodID: 999999})
			assert.True(t, businessflow.IsPaymentMethodNotFound(err))

			_, err = flow.Create(ctx, admin.ID, &dto.AdminPaymentMethodRequest{
				PaymentMethodID:      pm.ID,
				EmailPaymentDetailID: utils.ToPtr(uint(999999)),
			})
			assert.True(t, businessflow.IsEmailPaymentDetailNotFound(err))

			items, err := flow.List(ctx, admin.ID)
			require.NoError(t, err)
			assert.Empty(t, items)
		})

		t.Run("SingleDefault", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			first, err := fixtures.CreateTestAdminPaymentMethod(admin, true)
			require.NoError(t, err)
			pm, err := fixtures.CreateTestPaymentMethod()
			require.NoError(t, err)

			second, err := flow.Create(ctx, admin.ID, &dto.AdminPaymentMethodRequest{
				PaymentMethodID: pm.ID,
				IsDefault:       utils.ToPtr(true),
			})
			require.NoError(t, err)
			assert.True(t, second.IsDefault)
			assert.Equal(t, []uint{second.ID}, defaults(t, admin.ID))

			_, err = flow.Update(ctx, admin.ID, first.ID, &dto.UpdateAdminPaymentMethodRequest{IsDefault: utils.ToPtr(true)})
			require.NoError(t, err)
			assert.Equal(t, []uint{first.ID}, defaults(t, admin.ID))
		})

		t.Run("DefaultsAreScopedPerAdmin", func(t *testing.T) {
			alice, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			bob, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			aliceDefault, err := fixtures.CreateTestAdminPaymentMethod(alice, true)
			require.NoError(t, err)
			pm, err := fixtures.CreateTestPaymentMethod()
			require.NoError(t, err)

			_, err = flow.Create(ctx, bob.ID, &dto.AdminPaymentMethodRequest{PaymentMethodID: pm.ID, IsDefault: utils.ToPtr(true)})
			require.NoError(t, err)
			assert.Equal(t, []uint{aliceDefault.ID}, defaults(t, alice.ID))
		})

		t.Run("DeactivatingDefaultClearsIt", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			apm, err := fixtures.CreateTestAdminPaymentMethod(admin, true)
			require.NoError(t, err)

			got, err := flow.Update(ctx, admin.ID, apm.ID, &dto.UpdateAdminPaymentMethodRequest{ActiveFlag: utils.ToPtr(false)})
			require.NoError(t, err)
			assert.False(t, got.ActiveFlag)
			assert.False(t, got.IsDefault)
			assert.Empty(t, defaults(t, admin.ID))
		})

		t.Run("InactiveCannotBeDefault", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			pm, err := fixtures.CreateTestPaymentMethod()
			require.NoError(t, err)

			_, err = flow.Create(ctx, admin.ID, &dto.AdminPaymentMethodRequest{
				PaymentMethodID: pm.ID,
				IsDefault:       utils.ToPtr(true),
				ActiveFlag:      utils.ToPtr(false),
			})
			assert.True(t, businessflow.IsInactiveDefault(err))

			apm, err := fixtures.CreateTestAdminPaymentMethod(admin, false)
			require.NoError(t, err)
			_, err = flow.Update(ctx, admin.ID, apm.ID, &dto.UpdateAdminPaymentMethodRequest{
				IsDefault:  utils.ToPtr(true),
				ActiveFlag: utils.ToPtr(false),
			})
			assert.True(t, businessflow.IsInactiveDefault(err))
		})

		t.Run("OwnershipIsEnforced", func(t *testing.T) {
			owner, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			other, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			apm, err := fixtures.CreateTestAdminPaymentMethod(owner, false)
			require.NoError(t, err)

			_, err = flow.Update(ctx, other.ID, apm.ID, &dto.UpdateAdminPaymentMethodRequest{IsDefault: utils.ToPtr(true)})
			assert.True(t, businessflow.IsNotFound(err))

			err = flow.Delete(ctx, other.ID, apm.ID)
			assert.True(t, businessflow.IsNotFound(err))

			require.NoError(t, flow.Delete(ctx, owner.ID, apm.ID))
			stored, err := repo.ByID(ctx, apm.ID)
			require.NoError(t, err)
			assert.Nil(t, stored)
		})

		return nil
	})
	require.NoError(t, err)
}
