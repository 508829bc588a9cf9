// Package dataset reads the per-sport player files shipped with the game.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// Decode parses a JSON array of players and checks every entry has a name.
// Players without an explicit sport are tagged with sport.
func Decode(data []byte, sport athlete.Sport) ([]athlete.Player, error) {
	var players []athlete.Player
	if err := json.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("decoding players: %w", err)
	}
	if err := Validate(players); err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].Sport == "" {
			players[i].Sport = sport
		}
	}
	return players, nil
}

// Validate rejects players with a blank name.
func Validate(players []athlete.Player) error {
	for i, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player %d: name is required", i)
		}
	}
	return nil
}

// LoadDir reads <sport>.json from dir for every known sport. Missing files
// are skipped.
func LoadDir(dir string) (map[athlete.Sport][]athlete.Player, error) {
	out := make(map[athlete.Sport][]athlete.Player)
	for _, sport := range athlete.Sports {
		path := filepath.Join(dir, string(sport)+".json")
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		players, err := Decode(data, sport)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out[sport] = players
	}
	return out, nil
}
