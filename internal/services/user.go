package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"roombook/internal/dto"
	"roombook/internal/entities"
	"roombook/internal/repositories"
	"roombook/pkg/types"
)

type UserService struct {
	userRepository    repositories.UserRepositoryInterface
	bookingRepository repositories.BookingRepositoryInterface
	logger            *zap.Logger
}

func NewUserService(
	userRepository repositories.UserRepositoryInterface,
	bookingRepository repositories.BookingRepositoryInterface,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepository:    userRepository,
		bookingRepository: bookingRepository,
		logger:            logger,
	}
}

func mapUserToDTO(u entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		Enabled:     u.Enabled,
	}
}

func (s *UserService) GetCurrentUser(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepository.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	userDTO := mapUserToDTO(*user)
	return &userDTO, nil
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepository.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, mapUserToDTO(u))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepository.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	userDTO := mapUserToDTO(*user)
	return &userDTO, nil
}

// GetOrganizers lists the distinct organizer names already used on
// bookings, for the booking form's picker.
func (s *UserService) GetOrganizers(ctx context.Context) ([]string, error) {
	return s.bookingRepository.DistinctOrganizers(ctx)
}

func (s *UserService) SetUserStatus(ctx context.Context, id uint64, payload dto.UpdateUserStatusDTO) (*dto.UserDTO, error) {
	if err := s.userRepository.SetEnabled(ctx, id, *payload.Enabled); err != nil {
		return nil, err
	}
	return s.FindUser(ctx, id)
}

// ResetPassword issues a random temporary password and stores its hash.
// The plaintext is returned once for the admin to hand over.
func (s *UserService) ResetPassword(ctx context.Context, id uint64) (*dto.ResetPasswordResultDTO, error) {
	if _, err := s.userRepository.FindUser(ctx, id); err != nil {
		return nil, err
	}

	temporary := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.userRepository.SetPasswordHash(ctx, id, string(hash)); err != nil {
		return nil, err
	}
	return &dto.ResetPasswordResultDTO{TemporaryPassword: temporary}, nil
}

// ValidateUsername reports availability for a syntactically valid
// username. Format checks ran already in request validation.
func (s *UserService) ValidateUsername(ctx context.Context, payload dto.ValidateUsernameDTO) (*dto.UsernameValidationResultDTO, error) {
	exists, err := s.userRepository.UsernameExists(ctx, payload.Username)
	if err != nil {
		return nil, err
	}

	result := &dto.UsernameValidationResultDTO{Valid: true, Available: !exists}
	if exists {
		result.Message = "username is already taken"
	}
	return result, nil
}
