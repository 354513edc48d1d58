package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"service-desk/internal/dto"
	"service-desk/internal/entities"
	"service-desk/internal/repositories"
	"service-desk/pkg/config"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/service"
	"service-desk/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        config.AuthConfig
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *AuthService) issue(user *entities.User) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(user.Actor())
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
		User:         dto.ActorDTO{ID: user.ID, Name: user.Name, Role: string(user.Role)},
	}, nil
}

// Login checks the password and issues a token pair. After MaxLoginAttempts
// failures the login is locked for LockoutDuration. Cache errors never block
// a login.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	login := strings.ToLower(strings.TrimSpace(payload.Login))
	logger := s.logger.With(zap.String("login", login))
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, login)

	if s.cfg.MaxLoginAttempts > 0 {
		if raw, err := s.cacheRepo.Get(ctx, attemptsKey); err == nil {
			if attempts, _ := strconv.Atoi(raw); attempts >= s.cfg.MaxLoginAttempts {
				logger.Warn("login locked out", zap.Int("attempts", attempts))
				return nil, apperrors.NewHttpError(http.StatusTooManyRequests, "too many failed login attempts, try again later", apperrors.ErrInvalidCredentials, nil)
			}
		}
	}

	user, err := s.userRepo.FindUserByLogin(ctx, login)
	if err == nil {
		if cmpErr := utils.ComparePasswords(user.PasswordHash, payload.Password); cmpErr != nil {
			err = apperrors.ErrInvalidCredentials
		}
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.recordFailure(ctx, attemptsKey, logger)
		}
		return nil, err
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		logger.Warn("reset login attempts", zap.Error(err))
	}
	logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.issue(user)
}

func (s *AuthService) recordFailure(ctx context.Context, key string, logger *zap.Logger) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	n, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		logger.Warn("count failed login", zap.Error(err))
		return
	}
	if n == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			logger.Warn("expire failed login counter", zap.Error(err))
		}
	}
	logger.Warn("invalid credentials", zap.Int64("attempts", n))
}

// RefreshTokens re-reads the user so renamed or re-roled accounts get fresh
// claims.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return s.issue(user)
}
