package service

import (
	"errors"
	"fmt"
	"time"

	"campusdir/internal/models"
	"campusdir/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ( // Define custom errors
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidDepartment  = errors.New("department is required and must be one of ECE, CSE, IT, MECH, CIVIL")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoToken            = errors.New("no token provided")
	ErrTokenInvalidated   = errors.New("token has been invalidated")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService interface {
	Register(username, email, password string, role models.Role, department models.Department) (*models.User, error)
	Login(email, password string) (string, time.Time, error) // Returns JWT token, expiration time, and error
	Logout(token string) error
	ValidateToken(token string) (*models.Claims, error)
}

type authService struct {
	users     repository.UserRepository
	blacklist repository.TokenBlacklistRepository
	secret    []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepository, blacklist repository.TokenBlacklistRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		users:     users,
		blacklist: blacklist,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *authService) Register(username, email, password string, role models.Role, department models.Department) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// Admin accounts carry no department; everyone else must name one.
	if role == models.RoleAdmin {
		department = ""
	} else if !department.Valid() {
		return nil, ErrInvalidDepartment
	}

	_, err := s.users.GetUserByEmail(email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
		Department:   department,
	}

	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *authService) Login(email, password string) (string, time.Time, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same error as a wrong password, so the response does not
			// reveal whether the email is registered.
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.tokenTTL)
	claims := &models.Claims{
		UserID:   user.ID,
		Role:     user.Role,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully.", zap.String("id", user.ID))
	return tokenString, expirationTime, nil
}

// Logout blacklists the token under its own expiry claim. The blacklist
// insert is idempotent, so logging out twice with the same token succeeds.
func (s *authService) Logout(tokenString string) error {
	if tokenString == "" {
		return ErrNoToken
	}

	// The expiry is copied from the token's own exp claim; the signature was
	// already verified by the auth middleware.
	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}

	if err := s.blacklist.Add(tokenString, claims.ExpiresAt.Time); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	s.logger.Info("User logged out successfully.", zap.String("id", claims.UserID))
	return nil
}

// ValidateToken checks the blacklist before the signature so a logged-out
// but not-yet-expired token is rejected as invalidated, not as expired.
func (s *authService) ValidateToken(tokenString string) (*models.Claims, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	blacklisted, err := s.blacklist.IsBlacklisted(tokenString)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if blacklisted {
		return nil, ErrTokenInvalidated
	}

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
