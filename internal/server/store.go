package server

import (
	"context"
	"errors"

	"github.com/playperu/athleteunknown/internal/athlete"
)

var ErrNotFound = errors.New("not found")

// Store holds the player datasets and the recorded round results.
type Store interface {
	ListPlayers(ctx context.Context, sport athlete.Sport) ([]athlete.Player, error)
	ReplacePlayers(ctx context.Context, sport athlete.Sport, players []athlete.Player) error
	PlayerCount(ctx context.Context, sport athlete.Sport) (int, error)

	RecordResult(ctx context.Context, res athlete.Result) error
	ListResults(ctx context.Context, sport athlete.Sport, playDate, playerName string) ([]athlete.Result, error)
}

// AdminStore manages dataset administrators and their login sessions.
type AdminStore interface {
	EnsureAdmin(ctx context.Context, email, passwordHash string) error
	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
}
