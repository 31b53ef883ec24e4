package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
	"github.com/iliyamo/sports-facility-reservation/internal/utils"
)

// Seed inserts starter data when the database is empty: an administrator,
// a demo customer, and a small catalogue of branches, sports and sessions
// so the API is usable immediately after first boot.  It is a no-op when
// any user row already exists.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int, log zerolog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Info().Msg("empty database, inserting seed data")

	adminHash, err := utils.HashPassword("Admin123!", bcryptCost)
	if err != nil {
		return err
	}
	userHash, err := utils.HashPassword("User123!", bcryptCost)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const insUser = `INSERT INTO users (full_name, email, password_hash, role) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insUser, "Admin User", "admin@example.com", adminHash, model.RoleAdmin); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insUser, "Test User", "user@example.com", userHash, model.RoleCustomer); err != nil {
		return err
	}

	const insBranch = `INSERT INTO branches (name, description) VALUES (?, ?)`
	branchRes, err := tx.ExecContext(ctx, insBranch, "Downtown", "Central facility with indoor rink and courts")
	if err != nil {
		return err
	}
	branchID, err := branchRes.LastInsertId()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insBranch, "Riverside", "Outdoor fields by the river"); err != nil {
		return err
	}

	const insSport = `INSERT INTO sports (name, description, is_active) VALUES (?, ?, 1)`
	sportRes, err := tx.ExecContext(ctx, insSport, "Ice Skating", "Indoor rink sessions")
	if err != nil {
		return err
	}
	sportID, err := sportRes.LastInsertId()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insSport, "Football", "Five-a-side pitch"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insSport, "Basketball", "Full court"); err != nil {
		return err
	}

	const insSession = `INSERT INTO sessions (branch_id, sport_id, start_time, duration_minutes, quota, price)
	                    VALUES (?, ?, ?, ?, ?, ?)`
	start := time.Now().UTC().Truncate(time.Hour).Add(48 * time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := tx.ExecContext(ctx, insSession,
			branchID, sportID, start.Add(time.Duration(i)*2*time.Hour), 60, 20, 150.00); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	log.Info().Msg("seed data inserted")
	return nil
}
