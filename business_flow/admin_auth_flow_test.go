package businessflow_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/services"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/repository"
	testingutil "github.com/amirphl/Omoikane/testing"
	"github.com/amirphl/Omoikane/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt-signing-32-chars"

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	tokenService, err := services.NewTokenService(time.Hour, 24*time.Hour, "test-issuer", "test-audience", false, "", "", testSecret, nil)
	require.NoError(t, err)
	return tokenService
}

// knownChallengeCaptcha accepts a single challenge answered with a fixed angle
type knownChallengeCaptcha struct {
	id    string
	angle float64
	used  bool
}

func (c *knownChallengeCaptcha) GenerateRotate(context.Context) (*services.RotateChallenge, error) {
	return &services.RotateChallenge{ID: c.id}, nil
}

func (c *knownChallengeCaptcha) VerifyRotate(_ context.Context, challengeID string, userAngle float64) bool {
	if c.used || challengeID != c.id || userAngle != c.angle {
		return false
	}
	c.used = true
	return true
}

func (c *knownChallengeCaptcha) Close() {}

func tokenFromLink(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, "token=")
	require.GreaterOrEqual(t, i, 0, "email body carries no token link")
	return strings.Fields(body[i+len("token="):])[0]
}

func TestAdminAuthFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := context.Background()

		adminRepo := repository.NewAdminAuthRepository(testDB.DB)
		tokenService := newTestTokenService(t)
		mailbox := services.NewMockEmailProvider()

		authFlow := businessflow.NewAdminAuthFlow(
			adminRepo,
			tokenService,
			nil,
			services.NewNotificationService(mailbox),
			businessflow.AdminAuthOptions{
				BcryptCost:    bcrypt.MinCost,
				PublicBaseURL: "https://admin.example.com/",
			},
		)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("LoginSuccess", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			resp, err := authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: testingutil.TestAdminPassword,
			}, metadata)
			require.NoError(t, err)
			require.NotNil(t, resp)

			assert.Equal(t, admin.ID, resp.Admin.ID)
			assert.Equal(t, admin.UUID.String(), resp.Admin.UUID)
			assert.NotNil(t, resp.Admin.LastLoginAt)
			assert.NotEmpty(t, resp.Session.AccessToken)
			assert.NotEmpty(t, resp.Session.RefreshToken)
			assert.Equal(t, "Bearer", resp.Session.TokenType)
			assert.Equal(t, 3600, resp.Session.ExpiresIn)

			claims, err := tokenService.ValidateAdminToken(ctx, resp.Session.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, admin.ID, claims.AdminID)

			stored, err := adminRepo.ByID(ctx, admin.ID)
			require.NoError(t, err)
			assert.NotNil(t, stored.LastLoginAt)
		})

		t.Run("LoginUnknownAdmin", func(t *testing.T) {
			_, err := authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: "nobody_here",
				Password: testingutil.TestAdminPassword,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAdminNotFound(err))
		})

		t.Run("LoginWrongPassword", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: "WrongPass123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))

			be, ok := businessflow.AsBusinessError(err)
			require.True(t, ok)
			assert.Equal(t, "ADMIN_INCORRECT_PASSWORD", be.Code)
		})

		t.Run("LoginInactiveAdmin", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, adminRepo.UpdateFields(ctx, admin.ID, map[string]any{"is_active": false}))

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: testingutil.TestAdminPassword,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsAdminInactive(err))

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: "WrongPassword123!",
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
			assert.False(t, businessflow.IsAdminInactive(err))
		})

		t.Run("LoginSetupIncomplete", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, adminRepo.UpdateFields(ctx, admin.ID, map[string]any{"setup_completed": false}))

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: "WrongPassword123!",
			}, metadata)
			assert.True(t, businessflow.IsIncorrectPassword(err))

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: testingutil.TestAdminPassword,
			}, metadata)
			assert.True(t, businessflow.IsAdminSetupIncomplete(err))
		})

		t.Run("LoginBeforeActivation", func(t *testing.T) {
			admin, _, err := fixtures.CreateInvitedAdmin()
			require.NoError(t, err)

			// no password has been set yet
			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: testingutil.TestAdminPassword,
			}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("RefreshRotatesTokens", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			login, err := authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: testingutil.TestAdminPassword,
			}, metadata)
			require.NoError(t, err)

			session, err := authFlow.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: login.Session.RefreshToken})
			require.NoError(t, err)
			assert.NotEmpty(t, session.AccessToken)
			assert.NotEqual(t, login.Session.RefreshToken, session.RefreshToken)

			// a refresh token is single use
			_, err = authFlow.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: login.Session.RefreshToken})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidRefreshToken(err))

			_, err = authFlow.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: login.Session.AccessToken})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidRefreshToken(err))
		})

		t.Run("LogoutRevokesTokens", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			login, err := authFlow.Login(ctx, &dto.AdminLoginRequest{
				Username: admin.Username,
				Password: testingutil.TestAdminPassword,
			}, metadata)
			require.NoError(t, err)

			err = authFlow.Logout(ctx, login.Session.AccessToken, &dto.LogoutRequest{RefreshToken: login.Session.RefreshToken})
			require.NoError(t, err)

			_, err = tokenService.ValidateAdminToken(ctx, login.Session.AccessToken)
			assert.ErrorIs(t, err, services.ErrTokenRevoked)

			_, err = authFlow.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: login.Session.RefreshToken})
			assert.True(t, businessflow.IsInvalidRefreshToken(err))
		})

		t.Run("InviteAndActivate", func(t *testing.T) {
			resp, err := authFlow.InviteAdmin(ctx, &dto.InviteAdminRequest{
				Username: "  new_admin  ",
				Email:    "New.Admin@Example.com",
			})
			require.NoError(t, err)
			assert.Equal(t, "new_admin", resp.Admin.Username)
			assert.Equal(t, "new.admin@example.com", resp.Admin.Email)
			assert.False(t, resp.Admin.SetupCompleted)
			assert.True(t, resp.ActivationSent)

			mail, ok := mailbox.Last()
			require.True(t, ok)
			assert.Equal(t, "new.admin@example.com", mail.To)
			assert.Contains(t, mail.Body, "https://admin.example.com/admin/activate?token=")
			token := tokenFromLink(t, mail.Body)

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{Username: "new_admin", Password: "Activated123!"}, metadata)
			assert.True(t, businessflow.IsIncorrectPassword(err))

			activated, err := authFlow.ActivateAccount(ctx, &dto.ActivateAccountRequest{Token: token, Password: "Activated123!"})
			require.NoError(t, err)
			assert.True(t, activated.SetupCompleted)

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{Username: "new_admin", Password: "Activated123!"}, metadata)
			require.NoError(t, err)

			// the activation token is cleared after use
			_, err = authFlow.ActivateAccount(ctx, &dto.ActivateAccountRequest{Token: token, Password: "Another123!"})
			assert.True(t, businessflow.IsInvalidActivationToken(err))
		})

		t.Run("InviteDuplicate", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			_, err = authFlow.InviteAdmin(ctx, &dto.InviteAdminRequest{Username: admin.Username, Email: "unique.one@example.com"})
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))

			_, err = authFlow.InviteAdmin(ctx, &dto.InviteAdminRequest{Username: "unique_one", Email: strings.ToUpper(admin.Email)})
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("ActivateUnknownToken", func(t *testing.T) {
			_, err := authFlow.ActivateAccount(ctx, &dto.ActivateAccountRequest{Token: "does-not-exist", Password: "Activated123!"})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidActivationToken(err))
		})

		t.Run("LongPasswordRoundTrip", func(t *testing.T) {
			_, token, err := fixtures.CreateInvitedAdmin()
			require.NoError(t, err)

			password := strings.Repeat("Ab1!", 32)
			activated, err := authFlow.ActivateAccount(ctx, &dto.ActivateAccountRequest{Token: token, Password: password})
			require.NoError(t, err)

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{Username: activated.Username, Password: password}, metadata)
			require.NoError(t, err)
		})

		t.Run("PasswordResetFlow", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			before := len(mailbox.Sent())

			err = authFlow.RequestPasswordReset(ctx, &dto.RequestPasswordResetRequest{Email: admin.Email})
			require.NoError(t, err)
			require.Len(t, mailbox.Sent(), before+1)

			mail, _ := mailbox.Last()
			assert.Contains(t, mail.Body, "/admin/reset-password?token=")
			token := tokenFromLink(t, mail.Body)

			stored, err := adminRepo.ByID(ctx, admin.ID)
			require.NoError(t, err)
			require.NotNil(t, stored.ResetTokenExpiry)
			assert.True(t, stored.ResetTokenExpiry.After(time.Now()))

			err = authFlow.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "BrandNew123!"})
			require.NoError(t, err)

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{Username: admin.Username, Password: "BrandNew123!"}, metadata)
			require.NoError(t, err)

			err = authFlow.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: token, NewPassword: "Again123!!"})
			assert.True(t, businessflow.IsInvalidResetToken(err))
		})

		t.Run("PasswordResetUnknownEmail", func(t *testing.T) {
			before := len(mailbox.Sent())

			err := authFlow.RequestPasswordReset(ctx, &dto.RequestPasswordResetRequest{Email: "ghost@example.com"})
			require.NoError(t, err)
			assert.Len(t, mailbox.Sent(), before)
		})

		t.Run("PasswordResetExpiredToken", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)
			require.NoError(t, fixtures.SetResetToken(admin, "expired-token", utils.UTCNowAdd(-time.Minute)))

			err = authFlow.ResetPassword(ctx, &dto.ResetPasswordRequest{Token: "expired-token", NewPassword: "BrandNew123!"})
			require.Error(t, err)
			assert.True(t, businessflow.IsResetTokenExpired(err))

			stored, err := adminRepo.ByID(ctx, admin.ID)
			require.NoError(t, err)
			assert.Nil(t, stored.ResetToken)
			assert.Nil(t, stored.ResetTokenExpiry)
		})

		t.Run("ChangePassword", func(t *testing.T) {
			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			err = authFlow.ChangePassword(ctx, admin.ID, &dto.ChangePasswordRequest{
				CurrentPassword: "WrongPass123!",
				NewPassword:     "Changed123!",
			})
			assert.True(t, businessflow.IsIncorrectPassword(err))

			err = authFlow.ChangePassword(ctx, admin.ID, &dto.ChangePasswordRequest{
				CurrentPassword: testingutil.TestAdminPassword,
				NewPassword:     testingutil.TestAdminPassword,
			})
			assert.True(t, businessflow.IsPasswordUnchanged(err))

			err = authFlow.ChangePassword(ctx, admin.ID, &dto.ChangePasswordRequest{
				CurrentPassword: testingutil.TestAdminPassword,
				NewPassword:     "Changed123!",
			})
			require.NoError(t, err)

			_, err = authFlow.Login(ctx, &dto.AdminLoginRequest{Username: admin.Username, Password: "Changed123!"}, metadata)
			require.NoError(t, err)
		})

		t.Run("CaptchaRequiredWhenEnabled", func(t *testing.T) {
			captcha, err := services.NewCaptchaServiceRotate(time.Minute, 5, 160)
			require.NoError(t, err)
			defer captcha.Close()

			guarded := businessflow.NewAdminAuthFlow(adminRepo, tokenService, captcha, services.NewNotificationService(mailbox),
				businessflow.AdminAuthOptions{CaptchaEnabled: true, BcryptCost: bcrypt.MinCost})

			admin, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			_, err = guarded.Login(ctx, &dto.AdminLoginRequest{Username: admin.Username, Password: testingutil.TestAdminPassword}, metadata)
			assert.True(t, businessflow.IsInvalidCaptcha(err))

			_, err = guarded.Login(ctx, &dto.AdminLoginRequest{
				Username:    admin.Username,
				Password:    testingutil.TestAdminPassword,
				ChallengeID: "unknown",
				UserAngle:   utils.ToPtr(90.0),
			}, metadata)
			assert.True(t, businessflow.IsInvalidCaptcha(err))

			challenge, err := guarded.InitCaptcha(ctx)
			require.NoError(t, err)
			assert.NotEmpty(t, challenge.ChallengeID)

			_, err = authFlow.InitCaptcha(ctx)
			assert.True(t, businessflow.IsCaptchaNotAvailable(err))

			known := &knownChallengeCaptcha{id: "known", angle: 270}
			solved := businessflow.NewAdminAuthFlow(adminRepo, tokenService, known, services.NewNotificationService(mailbox),
				businessflow.AdminAuthOptions{CaptchaEnabled: true, BcryptCost: bcrypt.MinCost})
			login := &dto.AdminLoginRequest{
				Username:    admin.Username,
				Password:    testingutil.TestAdminPassword,
				ChallengeID: "known",
				UserAngle:   utils.ToPtr(270.0),
			}

			resp, err := solved.Login(ctx, login, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Session.AccessToken)

			// a solved challenge cannot be replayed
			_, err = solved.Login(ctx, login, metadata)
			assert.True(t, businessflow.IsInvalidCaptcha(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAdminAuthFlow_BootstrapAdmin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := context.Background()
		authFlow := businessflow.NewAdminAuthFlow(
			repository.NewAdminAuthRepository(testDB.DB),
			newTestTokenService(t),
			nil,
			services.NewNotificationService(services.NewMockEmailProvider()),
			businessflow.AdminAuthOptions{BcryptCost: bcrypt.MinCost},
		)

		token, created, err := authFlow.BootstrapAdmin(ctx, "root", "root@example.com")
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEmpty(t, token)

		token, created, err = authFlow.BootstrapAdmin(ctx, "root2", "root2@example.com")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, token)

		return nil
	})
	require.NoError(t, err)
}
