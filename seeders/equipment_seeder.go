package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func SeedEquipments(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - seeding 'equipments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE equipments RESTART IDENTITY CASCADE"); err != nil {
		return err
	}

	for _, e := range equipmentsData {
		_, err := tx.Exec(ctx,
			`INSERT INTO equipments (name, description, quantity, mobile) VALUES ($1, $2, $3, $4)`,
			e.Name, e.Description, e.Quantity, e.Mobile,
		)
		if err != nil {
			return fmt.Errorf("failed to insert equipment %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Printf("  - done: %d equipment items", len(equipmentsData))
	return nil
}
