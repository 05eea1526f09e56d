package services

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"roombook/internal/dto"
	"roombook/internal/entities"
	"roombook/internal/repositories"
	"roombook/pkg/filestorage"
	"roombook/pkg/types"
	"roombook/pkg/utils"
)

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	fileStorage         filestorage.FileStorageInterface
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		fileStorage:         fileStorage,
		logger:              logger,
	}
}

func mapEquipmentToDTO(e entities.Equipment) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		Mobile:      e.Mobile,
		ImageURL:    e.ImageURL,
		CreatedAt:   utils.FormatDateTimeLocal(e.CreatedAt),
		UpdatedAt:   utils.FormatDateTimeLocal(e.UpdatedAt),
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	equipments, total, err := s.equipmentRepository.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(equipments))
	for _, e := range equipments {
		result = append(result, mapEquipmentToDTO(e))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	equipmentDTO := mapEquipmentToDTO(*equipment)
	return &equipmentDTO, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	equipment := entities.Equipment{
		Name:     payload.Name,
		Quantity: payload.Quantity,
		Mobile:   payload.Mobile,
	}
	if payload.Description.Valid {
		equipment.Description = &payload.Description.String
	}

	id, err := s.equipmentRepository.CreateEquipment(ctx, equipment)
	if err != nil {
		return nil, err
	}
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	current, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	equipment := *current
	if payload.Name != nil {
		equipment.Name = *payload.Name
	}
	if payload.Description.Valid {
		equipment.Description = &payload.Description.String
	}
	if payload.Quantity != nil {
		equipment.Quantity = *payload.Quantity
	}
	if payload.Mobile != nil {
		equipment.Mobile = *payload.Mobile
	}

	if err := s.equipmentRepository.UpdateEquipment(ctx, id, equipment); err != nil {
		return nil, err
	}
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	equipment, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.equipmentRepository.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	if equipment.ImageURL != nil {
		if err := s.fileStorage.Delete(*equipment.ImageURL); err != nil {
			s.logger.Warn("failed to delete equipment image file",
				zap.Uint64("equipment_id", id), zap.Error(err))
		}
	}
	return nil
}

// GetAvailableEquipments returns mobile equipment with the quantity still
// free inside [start, end). The booking with excludeBookingID keeps its own
// reservations out of the count so an edit form sees its current picks as
// free.
func (s *EquipmentService) GetAvailableEquipments(ctx context.Context, start, end time.Time, excludeBookingID uint64) ([]dto.AvailableEquipmentDTO, error) {
	equipments, err := s.equipmentRepository.GetMobileEquipments(ctx)
	if err != nil {
		return nil, err
	}

	var exclude []uint64
	if excludeBookingID != 0 {
		exclude = []uint64{excludeBookingID}
	}
	booked, err := s.equipmentRepository.BookedQuantities(ctx, start, end, exclude)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AvailableEquipmentDTO, 0, len(equipments))
	for _, e := range equipments {
		remaining := e.Quantity - booked[e.ID]
		if remaining < 0 {
			remaining = 0
		}
		result = append(result, dto.AvailableEquipmentDTO{
			Equipment: mapEquipmentToDTO(e),
			Remaining: remaining,
		})
	}
	return result, nil
}

func (s *EquipmentService) UploadImage(ctx context.Context, id uint64, file io.Reader, filename, pathPrefix string) (*dto.EquipmentDTO, error) {
	current, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.fileStorage.Save(file, filename, pathPrefix)
	if err != nil {
		return nil, err
	}

	if err := s.equipmentRepository.SetImageURL(ctx, id, &imageURL); err != nil {
		if delErr := s.fileStorage.Delete(imageURL); delErr != nil {
			s.logger.Warn("failed to clean up orphaned image file",
				zap.String("path", imageURL), zap.Error(delErr))
		}
		return nil, err
	}

	if current.ImageURL != nil {
		if err := s.fileStorage.Delete(*current.ImageURL); err != nil {
			s.logger.Warn("failed to delete replaced equipment image",
				zap.Uint64("equipment_id", id), zap.Error(err))
		}
	}
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteImage(ctx context.Context, id uint64) error {
	current, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return err
	}
	if current.ImageURL == nil {
		return nil
	}

	if err := s.equipmentRepository.SetImageURL(ctx, id, nil); err != nil {
		return err
	}
	if err := s.fileStorage.Delete(*current.ImageURL); err != nil {
		s.logger.Warn("failed to delete equipment image file",
			zap.Uint64("equipment_id", id), zap.Error(err))
	}
	return nil
}
