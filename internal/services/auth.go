package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"roombook/internal/dto"
	"roombook/internal/repositories"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/service"
)

type AuthService struct {
	userRepository  repositories.UserRepositoryInterface
	cacheRepository repositories.CacheRepositoryInterface
	jwtService      service.JWTService
	logger          *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepository:  userRepository,
		cacheRepository: cacheRepository,
		jwtService:      jwtService,
		logger:          logger,
	}
}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("session:refresh:%d", userID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uint64, username, role string) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwtService.GenerateTokens(userID, username, role)
	if err != nil {
		return nil, err
	}

	// The stored refresh token is the single valid session; issuing a new
	// pair invalidates the previous one.
	if err := s.cacheRepository.Set(ctx, sessionKey(userID), refresh, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepository.FindByUsername(ctx, payload.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, apperrors.ErrUserDisabled
	}

	s.logger.Info("user logged in", zap.Uint64("user_id", user.ID), zap.String("username", user.Username))
	return s.issueTokens(ctx, user.ID, user.Username, user.Role)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	stored, err := s.cacheRepository.Get(ctx, sessionKey(claims.UserID))
	if err != nil || stored != payload.RefreshToken {
		return nil, apperrors.ErrSessionExpired
	}

	user, err := s.userRepository.FindUser(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrSessionExpired
	}
	if !user.Enabled {
		return nil, apperrors.ErrUserDisabled
	}

	return s.issueTokens(ctx, user.ID, user.Username, user.Role)
}

// Me resolves the authenticated caller's profile from the token's user id.
func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepository.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	userDTO := mapUserToDTO(*user)
	return &userDTO, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	if err := s.cacheRepository.Del(ctx, sessionKey(userID)); err != nil {
		s.logger.Warn("failed to drop session", zap.Uint64("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
