package services

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"roombook/internal/dto"
	"roombook/internal/entities"
	"roombook/internal/repositories"
	"roombook/pkg/filestorage"
	"roombook/pkg/types"
	"roombook/pkg/utils"
)

type RoomService struct {
	storage        *pgxpool.Pool
	roomRepository repositories.RoomRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewRoomService(
	storage *pgxpool.Pool,
	roomRepository repositories.RoomRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		storage:        storage,
		roomRepository: roomRepository,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

func mapRoomToDTO(room entities.Room) dto.RoomDTO {
	equipments := make([]dto.RoomEquipmentDTO, 0, len(room.Equipments))
	for _, re := range room.Equipments {
		equipments = append(equipments, dto.RoomEquipmentDTO{
			EquipmentID: re.EquipmentID,
			Name:        re.EquipmentName,
			Mobile:      re.Mobile,
			Quantity:    re.Quantity,
		})
	}
	return dto.RoomDTO{
		ID:         room.ID,
		Name:       room.Name,
		Capacity:   room.Capacity,
		ImageURL:   room.ImageURL,
		Equipments: equipments,
		CreatedAt:  utils.FormatDateTimeLocal(room.CreatedAt),
		UpdatedAt:  utils.FormatDateTimeLocal(room.UpdatedAt),
	}
}

func (s *RoomService) GetRooms(ctx context.Context, filter types.Filter) ([]dto.RoomDTO, uint64, error) {
	rooms, total, err := s.roomRepository.GetRooms(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.RoomDTO, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, mapRoomToDTO(room))
	}
	return result, total, nil
}

func (s *RoomService) FindRoom(ctx context.Context, id uint64) (*dto.RoomDTO, error) {
	room, err := s.roomRepository.FindRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	roomDTO := mapRoomToDTO(*room)
	return &roomDTO, nil
}

func equipmentInputs(inputs []dto.RoomEquipmentInput) []entities.RoomEquipment {
	equipments := make([]entities.RoomEquipment, 0, len(inputs))
	for _, in := range inputs {
		equipments = append(equipments, entities.RoomEquipment{
			EquipmentID: in.EquipmentID,
			Quantity:    in.Quantity,
		})
	}
	return equipments
}

func (s *RoomService) CreateRoom(ctx context.Context, payload dto.CreateRoomDTO) (*dto.RoomDTO, error) {
	var id uint64
	err := repositories.WithTransaction(ctx, s.storage, func(tx pgx.Tx) error {
		var txErr error
		id, txErr = s.roomRepository.CreateRoom(ctx, tx, entities.Room{
			Name:       payload.Name,
			Capacity:   payload.Capacity,
			Equipments: equipmentInputs(payload.Equipments),
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return s.FindRoom(ctx, id)
}

func (s *RoomService) UpdateRoom(ctx context.Context, id uint64, payload dto.UpdateRoomDTO) (*dto.RoomDTO, error) {
	current, err := s.roomRepository.FindRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	room := entities.Room{
		Name:       current.Name,
		Capacity:   current.Capacity,
		Equipments: current.Equipments,
	}
	if payload.Name != nil {
		room.Name = *payload.Name
	}
	if payload.Capacity != nil {
		room.Capacity = *payload.Capacity
	}
	replaceEquipments := payload.Equipments != nil
	if replaceEquipments {
		room.Equipments = equipmentInputs(payload.Equipments)
	}

	err = repositories.WithTransaction(ctx, s.storage, func(tx pgx.Tx) error {
		return s.roomRepository.UpdateRoom(ctx, tx, id, room, replaceEquipments)
	})
	if err != nil {
		return nil, err
	}
	return s.FindRoom(ctx, id)
}

func (s *RoomService) DeleteRoom(ctx context.Context, id uint64) error {
	room, err := s.roomRepository.FindRoom(ctx, id)
	if err != nil {
		return err
	}

	if err := s.roomRepository.DeleteRoom(ctx, id); err != nil {
		return err
	}

	if room.ImageURL != nil {
		if err := s.fileStorage.Delete(*room.ImageURL); err != nil {
			s.logger.Warn("failed to delete room image file",
				zap.Uint64("room_id", id), zap.Error(err))
		}
	}
	return nil
}

// UploadImage stores a new room image and drops the previous file once the
// database points at the new one.
func (s *RoomService) UploadImage(ctx context.Context, id uint64, file io.Reader, filename, pathPrefix string) (*dto.RoomDTO, error) {
	current, err := s.roomRepository.FindRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.fileStorage.Save(file, filename, pathPrefix)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepository.SetImageURL(ctx, id, &imageURL); err != nil {
		if delErr := s.fileStorage.Delete(imageURL); delErr != nil {
			s.logger.Warn("failed to clean up orphaned image file",
				zap.String("path", imageURL), zap.Error(delErr))
		}
		return nil, err
	}

	if current.ImageURL != nil {
		if err := s.fileStorage.Delete(*current.ImageURL); err != nil {
			s.logger.Warn("failed to delete replaced room image",
				zap.Uint64("room_id", id), zap.Error(err))
		}
	}
	return s.FindRoom(ctx, id)
}

func (s *RoomService) DeleteImage(ctx context.Context, id uint64) error {
	current, err := s.roomRepository.FindRoom(ctx, id)
	if err != nil {
		return err
	}
	if current.ImageURL == nil {
		return nil
	}

	if err := s.roomRepository.SetImageURL(ctx, id, nil); err != nil {
		return err
	}
	if err := s.fileStorage.Delete(*current.ImageURL); err != nil {
		s.logger.Warn("failed to delete room image file",
			zap.Uint64("room_id", id), zap.Error(err))
	}
	return nil
}
