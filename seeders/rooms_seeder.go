package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func SeedRooms(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - seeding 'rooms' and 'room_equipments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE rooms RESTART IDENTITY CASCADE"); err != nil {
		return err
	}

	roomIDs := make(map[string]uint64, len(roomsData))
	for _, r := range roomsData {
		var id uint64
		err := tx.QueryRow(ctx,
			`INSERT INTO rooms (name, capacity) VALUES ($1, $2) RETURNING id`,
			r.Name, r.Capacity,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert room %q: %w", r.Name, err)
		}
		roomIDs[r.Name] = id
	}

	for _, re := range roomEquipmentsData {
		roomID, ok := roomIDs[re.RoomName]
		if !ok {
			return fmt.Errorf("unknown room %q in room equipment data", re.RoomName)
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO room_equipments (room_id, equipment_id, quantity)
			 SELECT $1, id, $3 FROM equipments WHERE name = $2`,
			roomID, re.EquipmentName, re.Quantity,
		)
		if err != nil {
			return fmt.Errorf("failed to link equipment %q to room %q: %w", re.EquipmentName, re.RoomName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Printf("  - done: %d rooms", len(roomsData))
	return nil
}
