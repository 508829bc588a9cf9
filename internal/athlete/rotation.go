package athlete

import (
	"context"
	"fmt"
	"strconv"
)

// PlayerIndexKey is the KV key holding a client's rotation position.
func PlayerIndexKey(sport Sport, client string) string {
	return fmt.Sprintf("playerIndex_%s_%s", sport, client)
}

// SubmissionKey is the KV key marking that client already recorded a
// result for sport on playDate.
func SubmissionKey(sport Sport, playDate, client string) string {
	return fmt.Sprintf("submitted_%s_%s_%s", sport, playDate, client)
}

// NextPlayer returns the player at the stored rotation index (wrapped to
// the dataset size) and advances the index stored under key. It also
// returns the position it picked.
func NextPlayer(ctx context.Context, kv KVStore, key string, players []Player) (Player, int, error) {
	if len(players) == 0 {
		return Player{}, 0, ErrNoPlayers
	}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return Player{}, 0, fmt.Errorf("reading rotation index: %w", err)
	}

	stored := 0
	if ok {
		// A corrupt index restarts the rotation.
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			stored = n
		}
	}

	idx := stored % len(players)
	next := strconv.Itoa((idx + 1) % len(players))
	if err := kv.Set(ctx, key, next); err != nil {
		return Player{}, 0, fmt.Errorf("storing rotation index: %w", err)
	}
	return players[idx], idx, nil
}

// DrawKey is the KV key holding the rotation position client drew for
// sport on playDate.
func DrawKey(sport Sport, playDate, client string) string {
	return fmt.Sprintf("drawn_%s_%s_%s", sport, playDate, client)
}

// DailyPlayer returns the player client plays for sport on playDate. The
// first call of the day advances the rotation and stores the pick under
// DrawKey; later calls return the stored pick without advancing. A stored
// pick outside the dataset is drawn again.
func DailyPlayer(ctx context.Context, kv KVStore, sport Sport, playDate, client string, players []Player) (Player, int, error) {
	key := DrawKey(sport, playDate, client)
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return Player{}, 0, fmt.Errorf("reading daily draw: %w", err)
	}
	if ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n < len(players) {
			return players[n], n, nil
		}
	}

	player, idx, err := NextPlayer(ctx, kv, PlayerIndexKey(sport, client), players)
	if err != nil {
		return Player{}, 0, err
	}
	if err := kv.Set(ctx, key, strconv.Itoa(idx)); err != nil {
		return Player{}, 0, fmt.Errorf("storing daily draw: %w", err)
	}
	return player, idx, nil
}
