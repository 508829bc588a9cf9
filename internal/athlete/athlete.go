// Package athlete implements the Athlete Unknown guessing engine: tiles,
// fuzzy name matching, scoring and round stats. It has no external
// dependencies; storage is reached only through the KVStore interface.
package athlete

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoPlayers    = errors.New("no players loaded")
	ErrUnknownTile  = errors.New("unknown tile")
	ErrUnknownSport = errors.New("unknown sport")
)

type Sport string

const (
	SportBaseball   Sport = "baseball"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
)

// Sports lists every supported sport in display order.
var Sports = []Sport{SportBaseball, SportBasketball, SportFootball}

func ParseSport(s string) (Sport, error) {
	for _, sp := range Sports {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSport, s)
}

// Player is one mystery athlete. Each fact field backs one tile.
type Player struct {
	Name                 string `json:"name"`
	Sport                Sport  `json:"sport,omitempty"`
	SportsReferencePath  string `json:"sportsReferencePath,omitempty"`
	Bio                  string `json:"bio"`
	PlayerInformation    string `json:"playerInformation"`
	DraftInformation     string `json:"draftInformation"`
	YearsActive          string `json:"yearsActive"`
	TeamsPlayedOn        string `json:"teamsPlayedOn"`
	JerseyNumbers        string `json:"jerseyNumbers"`
	CareerStats          string `json:"careerStats"`
	PersonalAchievements string `json:"personalAchievements"`
	Photo                string `json:"photo"`
	DailyNumber          int    `json:"dailyNumber,omitempty"`
	PlayDate             string `json:"playDate,omitempty"`
}

// Fact returns the value revealed by flipping t.
func (p Player) Fact(t Tile) string {
	switch t {
	case TileBio:
		return p.Bio
	case TilePlayerInformation:
		return p.PlayerInformation
	case TileDraftInformation:
		return p.DraftInformation
	case TileYearsActive:
		return p.YearsActive
	case TileTeamsPlayedOn:
		return p.TeamsPlayedOn
	case TileJerseyNumbers:
		return p.JerseyNumbers
	case TileCareerStats:
		return p.CareerStats
	case TilePersonalAchievements:
		return p.PersonalAchievements
	case TilePhoto:
		return p.Photo
	}
	return ""
}

var referenceBaseURLs = map[Sport]string{
	SportBaseball:   "https://www.baseball-reference.com/players/",
	SportBasketball: "https://www.basketball-reference.com/players/",
	SportFootball:   "https://www.pro-football-reference.com/players/",
}

// ReferenceURL links to the player's sports-reference page, or "" when
// the path or sport is unknown.
func (p Player) ReferenceURL() string {
	base, ok := referenceBaseURLs[p.Sport]
	if !ok || p.SportsReferencePath == "" {
		return ""
	}
	return base + p.SportsReferencePath + ".html"
}

// RoundInfo identifies the daily puzzle a round belongs to.
type RoundInfo struct {
	Sport    Sport  `json:"sport"`
	Number   int    `json:"number"`
	PlayDate string `json:"playDate"`
}

// ID renders the round as "sport#number".
func (ri RoundInfo) ID() string {
	return fmt.Sprintf("%s#%d", ri.Sport, ri.Number)
}

// PlayDate formats t the way round play dates are keyed.
func PlayDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// KVStore is the small persistence surface the engine needs for
// per-client markers such as the player rotation index.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
