package server

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// ImportPlayers loads datasets for sports that have no players yet.
// Sports already populated, for example through the admin API, are left
// untouched.
func ImportPlayers(ctx context.Context, logger *slog.Logger, store Store, datasets map[athlete.Sport][]athlete.Player) error {
	for _, sport := range athlete.Sports {
		players, ok := datasets[sport]
		if !ok || len(players) == 0 {
			continue
		}

		n, err := store.PlayerCount(ctx, sport)
		if err != nil {
			return fmt.Errorf("counting %s players: %w", sport, err)
		}
		if n > 0 {
			continue
		}

		if err := store.ReplacePlayers(ctx, sport, players); err != nil {
			return fmt.Errorf("importing %s players: %w", sport, err)
		}
		logger.Info("dataset imported", "sport", sport, "players", len(players))
	}
	return nil
}

// SeedAdmin creates the admin account if it does not exist. An empty
// password disables seeding.
func SeedAdmin(ctx context.Context, logger *slog.Logger, admin AdminStore, email, password string) error {
	if password == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if err := admin.EnsureAdmin(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	logger.Info("admin account ready", "email", email)
	return nil
}
