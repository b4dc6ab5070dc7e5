package businessflow_test

import (
	"context"
	"testing"

	"github.com/amirphl/Omoikane/app/dto"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/models"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := context.Background()

		detailsRepo := repository.NewAdminDetailsRepository(testDB.DB)
		flow := businessflow.NewProfileFlow(repository.NewAdminAuthRepository(testDB.DB), detailsRepo, testDB.DB)

		t.Run("EmptyProfile", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			got, err := flow.GetProfile(ctx, admin.ID)
			require.NoError(t, err)
			assert.Equal(t, admin.Username, got.Admin.Username)
			assert.Nil(t, got.DisplayUsername)
			assert.Nil(t, got.CompanyName)
		})

		t.Run("UpdateCreatesThenPatches", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			got, err := flow.UpdateProfile(ctx, admin.ID, &dto.AdminDetailsRequest{
				Username:    utils.ToPtr(" jane "),
				CompanyName: utils.ToPtr("Acme"),
			})
			require.NoError(t, err)
			require.NotNil(t, got.DisplayUsername)
			assert.Equal(t, "jane", *got.DisplayUsername)

			got, err = flow.UpdateProfile(ctx, admin.ID, &dto.AdminDetailsRequest{CompanyName: utils.ToPtr("Acme Translations")})
			require.NoError(t, err)
			assert.Equal(t, "jane", *got.DisplayUsername)
			assert.Equal(t, "Acme Translations", *got.CompanyName)

			got, err = flow.UpdateProfile(ctx, admin.ID, &dto.AdminDetailsRequest{CompanyName: utils.ToPtr("")})
			require.NoError(t, err)
			assert.Nil(t, got.CompanyName)

			count, err := detailsRepo.Count(ctx, models.AdminDetailsFilter{AdminAuthID: &admin.ID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("UsernameTaken", func(t *testing.T) {
			first, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			second, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			_, err = flow.UpdateProfile(ctx, first.ID, &dto.AdminDetailsRequest{Username: utils.ToPtr("shared")})
			require.NoError(t, err)

			_, err = flow.UpdateProfile(ctx, second.ID, &dto.AdminDetailsRequest{Username: utils.ToPtr("shared")})
			require.Error(t, err)
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))

			// re-saving your own name is fine
			_, err = flow.UpdateProfile(ctx, first.ID, &dto.AdminDetailsRequest{Username: utils.ToPtr("shared")})
			require.NoError(t, err)
		})

		t.Run("UnknownAdmin", func(t *testing.T) {
			_, err := flow.GetProfile(ctx, 999999)
			assert.True(t, businessflow.IsAdminNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
