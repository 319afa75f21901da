package services_test

import (
	"fmt"
	"testing"
	"time"

	"carrental/internal/models"
	"carrental/internal/repositories"
	"carrental/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func notFound(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func signMap(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nopLogger)

	input := services.RegisterInput{Name: "Jojo", Email: " Jojo@Binar.co.id ", Password: "password123"}

	mockRepo.On("GetByEmail", "jojo@binar.co.id").Return(nil, notFound("jojo@binar.co.id")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleCustomer &&
			u.Email == "jojo@binar.co.id" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	user, err := authService.RegisterUser(input)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "jojo@binar.co.id").Return(&models.User{ID: 1}, nil).Once()
	_, err = authService.RegisterUser(input)
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)

	// Invalid payload never reaches the repository
	_, err = authService.RegisterUser(services.RegisterInput{Email: "not-an-email", Password: "123"})
	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "password")
}

func TestAuthService_SeedAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nopLogger)

	mockRepo.On("GetByEmail", "admin@binar.co.id").Return(nil, notFound("admin@binar.co.id")).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool { return u.Role == models.RoleAdmin })).Return(nil).Once()
	assert.NoError(t, authService.SeedAdmin("Johnny", "admin@binar.co.id", "secret123"))

	mockRepo.On("GetByEmail", "admin@binar.co.id").Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil).Once()
	assert.NoError(t, authService.SeedAdmin("Johnny", "admin@binar.co.id", "secret123"))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour, nopLogger)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       6,
		Name:     "Johnny",
		Email:    "johnny@binar.co.id",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(user.Email, "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(6), claims.ID)
	assert.Equal(t, "Johnny", claims.Name)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user gets the same generic error
	mockRepo.On("GetByEmail", "ghost@binar.co.id").Return(nil, notFound("ghost@binar.co.id")).Once()
	_, err = authService.LoginUser("ghost@binar.co.id", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour, nopLogger)

	// Same payload shape as tokens issued by the original API, without exp.
	valid := signMap(t, jwt.MapClaims{
		"id":    6,
		"name":  "Johnny",
		"email": "johnny@binar.co.id",
		"image": nil,
		"role":  map[string]interface{}{"id": 2, "name": "ADMIN"},
		"iat":   1699885541,
	}, testJWTSecret)

	claims, err := authService.ValidateToken(valid)
	require.NoError(t, err)
	assert.Equal(t, int64(6), claims.ID)
	assert.Equal(t, "johnny@binar.co.id", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Nil(t, claims.Image)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "invalid.token.string"},
		{"wrong secret", signMap(t, jwt.MapClaims{
			"id": 6, "email": "johnny@binar.co.id", "role": map[string]interface{}{"id": 2, "name": "ADMIN"},
		}, "other_secret")},
		{"expired", signMap(t, jwt.MapClaims{
			"id": 6, "email": "johnny@binar.co.id", "role": map[string]interface{}{"id": 2, "name": "ADMIN"},
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, testJWTSecret)},
		{"missing id", signMap(t, jwt.MapClaims{
			"email": "johnny@binar.co.id", "role": map[string]interface{}{"id": 2, "name": "ADMIN"},
		}, testJWTSecret)},
		{"unknown role", signMap(t, jwt.MapClaims{
			"id": 6, "email": "johnny@binar.co.id", "role": map[string]interface{}{"id": 9, "name": "ROOT"},
		}, testJWTSecret)},
		{"role id does not match name", signMap(t, jwt.MapClaims{
			"id": 6, "email": "jojo@binar.co.id", "role": map[string]interface{}{"id": 1, "name": "ADMIN"},
		}, testJWTSecret)},
		{"role without id", signMap(t, jwt.MapClaims{
			"id": 6, "email": "johnny@binar.co.id", "role": map[string]interface{}{"name": "ADMIN"},
		}, testJWTSecret)},
		{"role as string", signMap(t, jwt.MapClaims{
			"id": 6, "email": "johnny@binar.co.id", "role": "ADMIN",
		}, testJWTSecret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := authService.ValidateToken(tt.token)
			assert.ErrorIs(t, err, services.ErrUnauthenticated)
		})
	}
}

func TestAuthService_IssueToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, time.Hour, nopLogger)

	token, err := authService.IssueToken(&models.User{ID: 7, Name: "Jojo", Email: "jojo@binar.co.id", Role: models.RoleCustomer})
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(testJWTSecret), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(7), claims["id"])
	assert.Equal(t, map[string]interface{}{"id": float64(1), "name": "CUSTOMER"}, claims["role"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
}
