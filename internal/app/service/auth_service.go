package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/ikkim/furniture-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrPasswordTooLong     = util.ErrPasswordTooLong
)

// TokenBlacklist remembers revoked access tokens until they expire.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiry time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// JoinInput carries the sign-up form.
type JoinInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

type AuthService interface {
	Join(ctx context.Context, input JoinInput) (*model.User, *util.TokenPair, error)
	Login(ctx context.Context, email, password string) (*model.User, *util.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, p Principal, accessToken string) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	blacklist     TokenBlacklist
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	rotateWindow  time.Duration
}

// AuthOptions holds token lifetimes. A zero RotateWindow always rotates the
// refresh token on refresh.
type AuthOptions struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	RotateWindow  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, blacklist TokenBlacklist, opts AuthOptions) AuthService {
	return &authService{
		userRepo:      userRepo,
		blacklist:     blacklist,
		jwtSecret:     opts.Secret,
		accessExpiry:  opts.AccessExpiry,
		refreshExpiry: opts.RefreshExpiry,
		rotateWindow:  opts.RotateWindow,
	}
}

func (s *authService) Join(ctx context.Context, input JoinInput) (*model.User, *util.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	logger.Info("Attempting user registration", map[string]interface{}{
		"email": email,
	})

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}
	if exists {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})
	return user, tokens, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, *util.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown email", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

// Refresh exchanges a stored refresh token for a new access token. The refresh
// token itself is only replaced once it is close to expiring.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateTokenOfType(refreshToken, s.jwtSecret, util.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		logger.Warn("Refresh token does not match stored token", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrInvalidRefreshToken
	}

	access, err := util.GenerateToken(user.ID, user.Email, string(user.Role), util.AccessToken, s.jwtSecret, s.accessExpiry)
	if err != nil {
		return nil, err
	}

	pair := &util.TokenPair{AccessToken: access, RefreshToken: refreshToken}
	if claims.RemainingLifetime() < s.rotateWindow || s.rotateWindow <= 0 {
		rotated, err := util.GenerateToken(user.ID, user.Email, string(user.Role), util.RefreshToken, s.jwtSecret, s.refreshExpiry)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &rotated); err != nil {
			return nil, err
		}
		pair.RefreshToken = rotated
		logger.Debug("Refresh token rotated", map[string]interface{}{
			"user_id": user.ID,
		})
	}

	return pair, nil
}

// Logout drops the stored refresh token and revokes the presented access
// token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, p Principal, accessToken string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, p.UserID, nil); err != nil {
		return err
	}

	if s.blacklist != nil && accessToken != "" {
		claims, err := util.ValidateToken(accessToken, s.jwtSecret)
		if err == nil {
			if err := s.blacklist.Add(ctx, accessToken, claims.RemainingLifetime()); err != nil {
				logger.Error("Failed to blacklist access token", err, map[string]interface{}{
					"user_id": p.UserID,
				})
				return err
			}
		}
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": p.UserID,
	})
	return nil
}

func (s *authService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role), s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &tokens.RefreshToken); err != nil {
		return nil, err
	}
	return tokens, nil
}
