package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/db"
	"github.com/matmarket/matmarket-backend/pkg/util"
)

const testJWTSecret = "test-secret-key"

func setupAuthService(t *testing.T) (AuthService, repository.AdminCodeRepository) {
	t.Helper()

	gormDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gormDB) })

	userRepo := repository.NewUserRepository(gormDB)
	codeRepo := repository.NewAdminCodeRepository(gormDB)
	svc := NewAuthService(userRepo, codeRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	return svc, codeRepo
}

func TestAuthService_RegisterCustomer(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, tokens, err := svc.RegisterCustomer("buyer@example.com", "secret123", "Ivan Petrov", "+359 88 123 4567")

	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, testJWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(model.RoleCustomer), claims.Role)
}

func TestAuthService_RegisterCustomerDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.RegisterCustomer("buyer@example.com", "secret123", "Ivan", "")
	require.NoError(t, err)

	_, _, err = svc.RegisterCustomer("buyer@example.com", "another456", "Georgi", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_RegisterRejectsShortPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.RegisterCustomer("buyer@example.com", "abc", "Ivan", "")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_RegisterCompany(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, _, err := svc.RegisterCompany("sales@buildco.example", "secret123", "Maria Ivanova", "",
		CompanyDetails{
			CompanyName:        "BuildCo Ltd",
			RegistrationNumber: "BG123456789",
			VATNumber:          "BG123456789",
		})

	require.NoError(t, err)
	assert.Equal(t, model.RoleCompany, user.Role)
	assert.Equal(t, "BuildCo Ltd", user.CompanyName)
}

func TestAuthService_RegisterCompanyWithPurchasingBecomesHybrid(t *testing.T) {
	svc, _ := setupAuthService(t)

	user, _, err := svc.RegisterCompany("sales@buildco.example", "secret123", "Maria", "",
		CompanyDetails{CompanyName: "BuildCo Ltd", PurchaseAlso: true})

	require.NoError(t, err)
	assert.Equal(t, model.RoleHybrid, user.Role)
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	svc, codeRepo := setupAuthService(t)
	require.NoError(t, codeRepo.Create(&model.AdminConfirmationCode{Code: "bootstrap-code"}))

	user, tokens, err := svc.RegisterAdmin("admin@matmarket.example", "secret123", "Admin", "bootstrap-code")

	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.True(t, user.Verified)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_RegisterAdminInvalidCode(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.RegisterAdmin("admin@matmarket.example", "secret123", "Admin", "no-such-code")
	assert.ErrorIs(t, err, ErrAdminCodeInvalid)
}

func TestAuthService_RegisterAdminCodeIsSingleUse(t *testing.T) {
	svc, codeRepo := setupAuthService(t)
	require.NoError(t, codeRepo.Create(&model.AdminConfirmationCode{Code: "once-only"}))

	_, _, err := svc.RegisterAdmin("first@matmarket.example", "secret123", "First", "once-only")
	require.NoError(t, err)

	_, _, err = svc.RegisterAdmin("second@matmarket.example", "secret123", "Second", "once-only")
	assert.ErrorIs(t, err, ErrAdminCodeInvalid)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupAuthService(t)
	_, _, err := svc.RegisterCustomer("buyer@example.com", "secret123", "Ivan", "")
	require.NoError(t, err)

	user, tokens, err := svc.Login("buyer@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthService(t)
	_, _, err := svc.RegisterCustomer("buyer@example.com", "secret123", "Ivan", "")
	require.NoError(t, err)

	_, _, err = svc.Login("buyer@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, _, err := svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc, _ := setupAuthService(t)
	user, _, err := svc.RegisterCustomer("buyer@example.com", "secret123", "Ivan", "")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(user.ID, "Ivan Petrov", "+359 88 999 0000")

	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", updated.Name)
	assert.Equal(t, "+359 88 999 0000", updated.Phone)
}

func TestAuthService_VerifyAdminCode(t *testing.T) {
	svc, codeRepo := setupAuthService(t)
	require.NoError(t, codeRepo.Create(&model.AdminConfirmationCode{Code: "check-me"}))

	// Verification does not consume.
	for i := 0; i < 2; i++ {
		valid, err := svc.VerifyAdminCode("check-me")
		require.NoError(t, err)
		assert.True(t, valid)
	}

	valid, err := svc.VerifyAdminCode("unknown")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestAuthService_GenerateAdminCode(t *testing.T) {
	svc, _ := setupAuthService(t)

	code, err := svc.GenerateAdminCode()
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	valid, err := svc.VerifyAdminCode(code)
	require.NoError(t, err)
	assert.True(t, valid)
}
