package service

import (
	"fmt"
	"testing"
	"time"

	"studio"
	"studio/internal/api/handler/request"
	"studio/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTestDB(t *testing.T) {
	studio.InitConfig("../../../.env.test")

	err := studio.DB.AutoMigrate(&models.User{})
	require.NoError(t, err, "Failed to migrate user table")
}

func cleanupUser(t *testing.T, id uint) {
	if id > 0 {
		studio.DB.Unscoped().Delete(&models.User{}, id)
	}
}

func uniqueEmail() string {
	return fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
}

func TestUser_Register(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	dto := request.RegisterDTO{
		Email:     email,
		Password:  "testpassword123",
		FirstName: "Jean",
		LastName:  "Dupont",
	}

	result, err := service.Register(dto)
	require.NoError(t, err, "Failed to register user")
	require.NotNil(t, result)
	defer cleanupUser(t, result.User.ID)

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, email, result.User.Email)
	assert.Equal(t, "Jean", result.User.FirstName)
	assert.Equal(t, "Dupont", result.User.LastName)
	assert.True(t, result.User.Active)
}

func TestUser_Register_AlwaysClientRole(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	dto := request.RegisterDTO{
		Email:     email,
		Password:  "testpassword123",
		FirstName: "Self",
		LastName:  "Service",
	}

	result, err := service.Register(dto)
	require.NoError(t, err)
	defer cleanupUser(t, result.User.ID)

	// Self-registration can never mint a staff account.
	assert.Equal(t, string(models.RoleClient), result.User.Role)
}

func TestUser_Register_DuplicateEmail(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	dto := request.RegisterDTO{
		Email:     email,
		Password:  "testpassword123",
		FirstName: "Jean",
		LastName:  "Dupont",
	}

	result, err := service.Register(dto)
	require.NoError(t, err)
	defer cleanupUser(t, result.User.ID)

	_, err = service.Register(dto)
	require.Error(t, err, "Should fail on duplicate email")
	assert.Contains(t, err.Error(), "already exists")
}

func TestUser_Login(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	regDTO := request.RegisterDTO{
		Email:     email,
		Password:  "loginpassword",
		FirstName: "Marie",
		LastName:  "Martin",
	}
	regResult, err := service.Register(regDTO)
	require.NoError(t, err)
	defer cleanupUser(t, regResult.User.ID)

	loginDTO := request.LoginDTO{
		Email:    email,
		Password: "loginpassword",
	}

	loginResult, err := service.Login(loginDTO)
	require.NoError(t, err, "Failed to login")
	require.NotNil(t, loginResult)

	assert.NotEmpty(t, loginResult.Token)
	assert.NotEmpty(t, loginResult.RefreshToken)
	assert.Equal(t, email, loginResult.User.Email)
}

func TestUser_Login_WrongPassword(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	regDTO := request.RegisterDTO{
		Email:     email,
		Password:  "correctpassword",
		FirstName: "Pierre",
		LastName:  "Durand",
	}
	regResult, err := service.Register(regDTO)
	require.NoError(t, err)
	defer cleanupUser(t, regResult.User.ID)

	loginDTO := request.LoginDTO{
		Email:    email,
		Password: "wrongpassword",
	}

	_, err = service.Login(loginDTO)
	require.Error(t, err, "Should fail on wrong password")
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestUser_Login_InactiveAccount(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	regDTO := request.RegisterDTO{
		Email:     email,
		Password:  "testpassword",
		FirstName: "Inactive",
		LastName:  "User",
	}
	regResult, err := service.Register(regDTO)
	require.NoError(t, err)
	defer cleanupUser(t, regResult.User.ID)

	studio.DB.Model(&models.User{}).Where("id = ?", regResult.User.ID).Update("active", false)

	loginDTO := request.LoginDTO{
		Email:    email,
		Password: "testpassword",
	}

	_, err = service.Login(loginDTO)
	require.Error(t, err, "Should fail on inactive account")
	assert.Equal(t, "account is inactive", err.Error())
}

func TestUser_Create_WithRole(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	dto := request.CreateUser{
		Email:     email,
		Password:  "staffpassword",
		FirstName: "Sarah",
		LastName:  "Lens",
		Role:      "photographer",
	}

	user, err := service.Create(dto)
	require.NoError(t, err, "Failed to create staff user")
	defer cleanupUser(t, user.ID)

	assert.Equal(t, "photographer", user.Role)
	assert.True(t, user.Active)
}

func TestUser_RefreshToken(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	regDTO := request.RegisterDTO{
		Email:     email,
		Password:  "testpassword",
		FirstName: "Refresh",
		LastName:  "Token",
	}
	regResult, err := service.Register(regDTO)
	require.NoError(t, err)
	defer cleanupUser(t, regResult.User.ID)

	refreshResult, err := service.RefreshToken(regResult.RefreshToken)
	require.NoError(t, err, "Failed to refresh token")

	assert.NotEmpty(t, refreshResult.Token)
	assert.NotEmpty(t, refreshResult.RefreshToken)
	assert.Equal(t, email, refreshResult.User.Email)
	assert.NotEqual(t, regResult.RefreshToken, refreshResult.RefreshToken)
}

func TestUser_RefreshToken_Mismatch(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()
	email := uniqueEmail()

	regDTO := request.RegisterDTO{
		Email:     email,
		Password:  "testpassword",
		FirstName: "Mismatch",
		LastName:  "Test",
	}
	regResult, err := service.Register(regDTO)
	require.NoError(t, err)
	defer cleanupUser(t, regResult.User.ID)

	oldRefreshToken := regResult.RefreshToken

	// Logging in again rotates the stored refresh token.
	loginDTO := request.LoginDTO{
		Email:    email,
		Password: "testpassword",
	}
	_, err = service.Login(loginDTO)
	require.NoError(t, err)

	_, err = service.RefreshToken(oldRefreshToken)
	require.Error(t, err, "Should fail on mismatched refresh token")
	assert.Contains(t, err.Error(), "invalid refresh token")
}

func TestUser_GetByID_NotFound(t *testing.T) {
	setupUserTestDB(t)

	service := NewUserService()

	_, err := service.GetByID(99999)
	require.Error(t, err, "Should return error for non-existent user")
	assert.Equal(t, "user not found", err.Error())
}
