package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/athleteunknown/internal/athlete"
)

var (
	_ Store      = (*SQLiteStore)(nil)
	_ AdminStore = (*SQLiteStore)(nil)
)

// SQLiteStore implements Store and AdminStore on the migrated schema.
// Player records are kept as JSONB documents.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ListPlayers(ctx context.Context, sport athlete.Sport) ([]athlete.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT json(data) FROM players WHERE sport = ? ORDER BY position
	`, string(sport))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []athlete.Player
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var p athlete.Player
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("decoding player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ReplacePlayers swaps the whole dataset for sport in one transaction.
func (s *SQLiteStore) ReplacePlayers(ctx context.Context, sport athlete.Sport, players []athlete.Player) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players WHERE sport = ?`, string(sport)); err != nil {
		return err
	}
	for i, p := range players {
		p.Sport = sport
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO players (sport, position, name, data) VALUES (?, ?, ?, jsonb(?))
		`, string(sport), i, p.Name, string(data)); err != nil {
			return fmt.Errorf("inserting player %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) PlayerCount(ctx context.Context, sport athlete.Sport) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players WHERE sport = ?`, string(sport)).Scan(&n)
	return n, err
}

func (s *SQLiteStore) RecordResult(ctx context.Context, res athlete.Result) error {
	pattern, err := json.Marshal(res.FlippedTilesPattern)
	if err != nil {
		return err
	}
	var completedAt sql.NullString
	if res.CompletedAt != nil {
		completedAt = sql.NullString{String: res.CompletedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	completed := 0
	if res.Completed {
		completed = 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO game_results (
			user_id, sport, play_date, player_name, score, tiles_flipped,
			incorrect_guesses, pattern, first_tile, last_tile, completed, completed_at, rank
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, res.UserID, string(res.Sport), res.PlayDate, res.PlayerName, res.Score, res.TilesFlipped,
		res.IncorrectGuesses, string(pattern), string(res.FirstTileFlipped), string(res.LastTileFlipped),
		completed, completedAt, res.Rank)
	return err
}

func (s *SQLiteStore) ListResults(ctx context.Context, sport athlete.Sport, playDate, playerName string) ([]athlete.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, sport, player_name, score, tiles_flipped,
		       incorrect_guesses, pattern, first_tile, last_tile, completed, completed_at, rank
		FROM game_results
		WHERE sport = ? AND play_date = ? AND player_name = ?
		ORDER BY id
	`, string(sport), playDate, playerName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []athlete.Result
	for rows.Next() {
		var (
			res         athlete.Result
			pattern     string
			completed   int
			completedAt sql.NullString
		)
		if err := rows.Scan(&res.UserID, &res.Sport, &res.PlayerName, &res.Score,
			&res.TilesFlipped, &res.IncorrectGuesses, &pattern, &res.FirstTileFlipped,
			&res.LastTileFlipped, &completed, &completedAt, &res.Rank); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(pattern), &res.FlippedTilesPattern); err != nil {
			return nil, fmt.Errorf("decoding tile pattern: %w", err)
		}
		// The driver hands date-like text columns back as time values, so
		// play_date comes from the filter rather than the row.
		res.PlayDate = playDate
		res.Completed = completed == 1
		if completedAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, completedAt.String); err == nil {
				res.CompletedAt = &t
			}
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
		ON CONFLICT(email) DO NOTHING
	`, email, passwordHash)
	return err
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

// AdminFromSession resolves a session cookie. Sessions older than
// adminSessionTTL are treated as missing.
func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ? AND s.created_at > ?
	`, sessionID, sqliteTime(time.Now().Add(-adminSessionTTL))).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

// sqliteTime formats t like the schema's strftime('%Y-%m-%dT%H:%M:%fZ')
// defaults so the two compare as strings.
func sqliteTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
