package scheduler

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/amirphl/Omoikane/config"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchedule = config.SchedulerConfig{
	Enabled:              true,
	ResetTokenPurgeSpec:  "@every 15m",
	ActivationExpirySpec: "@hourly",
}

func TestTokenCleanupScheduler(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := context.Background()
		adminRepo := repository.NewAdminAuthRepository(testDB.DB)

		var logs bytes.Buffer
		s, err := NewTokenCleanupScheduler(adminRepo, testSchedule, 24*time.Hour, log.New(&logs, "", 0))
		require.NoError(t, err)

		t.Run("PurgeResetTokens", func(t *testing.T) {
			expired, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, fixtures.SetResetToken(expired, "old-token", utils.UTCNowAdd(-time.Minute)))

			valid, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, fixtures.SetResetToken(valid, "fresh-token", utils.UTCNowAdd(time.Hour)))

			n, err := s.PurgeResetTokens(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			got, err := adminRepo.ByID(ctx, expired.ID)
			require.NoError(t, err)
			assert.Nil(t, got.ResetToken)

			got, err = adminRepo.ByID(ctx, valid.ID)
			require.NoError(t, err)
			require.NotNil(t, got.ResetToken)
			assert.Equal(t, "fresh-token", *got.ResetToken)
		})

		t.Run("ExpireActivationTokens", func(t *testing.T) {
			stale, _, err := fixtures.CreateInvitedAdmin()
			require.NoError(t, err)
			require.NoError(t, testDB.DB.Model(stale).Update("created_at", utils.UTCNowAdd(-48*time.Hour)).Error)

			recent, _, err := fixtures.CreateInvitedAdmin()
			require.NoError(t, err)

			n, err := s.ExpireActivationTokens(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			got, err := adminRepo.ByID(ctx, stale.ID)
			require.NoError(t, err)
			assert.Nil(t, got.ActivationToken)

			got, err = adminRepo.ByID(ctx, recent.ID)
			require.NoError(t, err)
			assert.NotNil(t, got.ActivationToken)
		})

		t.Run("StartRunsJobsImmediately", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, fixtures.SetResetToken(admin, "start-token", utils.UTCNowAdd(-time.Minute)))

			stop := s.Start(ctx)
			stop()

			got, err := adminRepo.ByID(ctx, admin.ID)
			require.NoError(t, err)
			assert.Nil(t, got.ResetToken)
			assert.Contains(t, logs.String(), "scheduler: started with 2 jobs")
			assert.Contains(t, logs.String(), "purged 1 expired reset tokens")
		})

		return nil
	})
	require.NoError(t, err)
}

func TestNewTokenCleanupScheduler_InvalidSpec(t *testing.T) {
	cfg := testSchedule
	cfg.ResetTokenPurgeSpec = "whenever"

	_, err := NewTokenCleanupScheduler(nil, cfg, time.Hour, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whenever")
}
