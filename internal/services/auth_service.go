package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/models"
	"github.com/yukikurage/organiz-api/internal/repository"
	"github.com/yukikurage/organiz-api/internal/revocation"
	"github.com/yukikurage/organiz-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrTokenRevoked         = fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
)

// Login against an unknown email still pays for one hash computation.
var (
	dummySalt = strings.Repeat("0", constants.PasswordSaltBytes*2)
	dummyHash = utils.HashPassword("organiz-dummy-password", dummySalt)
)

// AuthService handles account registration, login and token lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenManager
	revoked  revocation.Store
	log      logrus.FieldLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *utils.TokenManager, revoked revocation.Store, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		revoked:  revoked,
		log:      log.WithField("component", "auth"),
	}
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// Register creates a new account with a freshly salted password hash.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	salt, err := utils.GenerateSalt(constants.PasswordSaltBytes)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Firstname:    strings.TrimSpace(input.Firstname),
		Lastname:     strings.TrimSpace(input.Lastname),
		Email:        input.Email,
		PasswordHash: utils.HashPassword(input.Password, salt),
		PasswordSalt: salt,
		Role:         constants.DefaultRole,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("Account registered")
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated account and its bearer token.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.VerifyPassword(input.Password, dummySalt, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.VerifyPassword(input.Password, user.PasswordSalt, user.PasswordHash) {
		s.log.WithField("user_id", user.ID).Warn("Login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(utils.JWTMessage{
		UserID:    user.ID,
		Email:     user.Email,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Role:      user.Role,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Authenticate validates a bearer token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := s.tokens.CheckToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.RegisteredClaims.ID, claims.ExpiresAt.Time)
}

// GetByID retrieves an account by ID.
func (s *AuthService) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// GetByEmail retrieves an account by exact email.
func (s *AuthService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}
	return user, nil
}
