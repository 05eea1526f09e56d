package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - seeding 'users'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE users RESTART IDENTITY CASCADE"); err != nil {
		return err
	}

	for _, u := range usersData {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", u.Username, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO users (username, first_name, last_name, email, role, enabled, password_hash)
			 VALUES ($1, $2, $3, $4, $5, TRUE, $6)`,
			u.Username, u.FirstName, u.LastName, u.Email, u.Role, string(hash),
		)
		if err != nil {
			return fmt.Errorf("failed to insert user %q: %w", u.Username, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Printf("  - done: %d users", len(usersData))
	return nil
}
