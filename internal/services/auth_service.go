package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"carrental/internal/models"
	"carrental/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// roleClaim is the wire shape of the role inside a token: {"id": 2, "name": "ADMIN"}.
type roleClaim struct {
	ID   int         `json:"id"`
	Name models.Role `json:"name"`
}

// tokenClaims is the JWT payload issued and accepted by the API.
type tokenClaims struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image *string   `json:"image"`
	Role  roleClaim `json:"role"`
	jwt.StandardClaims
}

// Valid checks expiry and rejects payloads that do not carry a usable identity.
func (c tokenClaims) Valid() error {
	if err := c.StandardClaims.Valid(); err != nil {
		return err
	}
	if c.ID <= 0 {
		return errors.New("claim 'id' must be a positive integer")
	}
	if c.Email == "" {
		return errors.New("claim 'email' is required")
	}
	if !c.Role.Name.Valid() {
		return fmt.Errorf("claim 'role' has unknown name %q", c.Role.Name)
	}
	if c.Role.ID != c.Role.Name.ID() {
		return fmt.Errorf("claim 'role' id %d does not match name %q", c.Role.ID, c.Role.Name)
	}
	return nil
}

// RegisterInput is the payload for registering a new customer.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthService handles business logic for authentication.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

// NewAuthService creates a new AuthService. A zero tokenTTL issues tokens without expiry.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		validate:  newValidator(),
		log:       log,
		now:       time.Now,
	}
}

// RegisterUser validates input, hashes the password and stores a new CUSTOMER.
func (s *AuthService) RegisterUser(input RegisterInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, fmt.Errorf("email '%s': %w", input.Email, ErrEmailTaken)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	return s.createUser(input.Name, input.Email, input.Password, models.RoleCustomer)
}

// SeedAdmin creates an ADMIN account unless the email is already registered.
func (s *AuthService) SeedAdmin(name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		s.log.Info("admin account already present", zap.String("email", email))
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if _, err := s.createUser(name, email, password, models.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("seeded admin account", zap.String("email", email))
	return nil
}

func (s *AuthService) createUser(name, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("email '%s': %w", email, ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates by email and password and returns a signed token.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user)
}

// IssueToken signs an HS256 token carrying the user's claims.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Image: user.Image,
		Role:  roleClaim{ID: user.Role.ID(), Name: user.Role},
		StandardClaims: jwt.StandardClaims{
			IssuedAt: now.Unix(),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = now.Add(s.tokenTTL).Unix()
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning typed claims if valid.
// Every failure wraps ErrUnauthenticated.
func (s *AuthService) ValidateToken(tokenString string) (*models.UserClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("empty token: %w", ErrUnauthenticated)
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, ErrUnauthenticated)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", ErrUnauthenticated)
	}

	return &models.UserClaims{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
		Image: claims.Image,
		Role:  claims.Role.Name,
	}, nil
}
