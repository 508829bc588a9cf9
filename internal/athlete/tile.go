package athlete

import "fmt"

type Tile string

const (
	TileBio                  Tile = "bio"
	TilePlayerInformation    Tile = "playerInformation"
	TileDraftInformation     Tile = "draftInformation"
	TileYearsActive          Tile = "yearsActive"
	TileTeamsPlayedOn        Tile = "teamsPlayedOn"
	TileJerseyNumbers        Tile = "jerseyNumbers"
	TileCareerStats          Tile = "careerStats"
	TilePersonalAchievements Tile = "personalAchievements"
	TilePhoto                Tile = "photo"
)

// Tiles is the board order. The share grid and result pattern follow it.
var Tiles = []Tile{
	TileBio,
	TilePlayerInformation,
	TileDraftInformation,
	TileYearsActive,
	TileTeamsPlayedOn,
	TileJerseyNumbers,
	TileCareerStats,
	TilePersonalAchievements,
	TilePhoto,
}

type tileSpec struct {
	label        string
	penalty      int
	flippedEmoji string
}

var tileSpecs = map[Tile]tileSpec{
	TileBio:                  {"Bio", RegularTilePenalty, "🟨"},
	TilePlayerInformation:    {"Player Information", RegularTilePenalty, "🟨"},
	TileDraftInformation:     {"Draft Information", RegularTilePenalty, "🟨"},
	TileYearsActive:          {"Years Active", RegularTilePenalty, "🟨"},
	TileTeamsPlayedOn:        {"Teams Played On", RegularTilePenalty, "🟨"},
	TileJerseyNumbers:        {"Jersey Numbers", RegularTilePenalty, "🟨"},
	TileCareerStats:          {"Career Stats", RegularTilePenalty, "🟨"},
	TilePersonalAchievements: {"Personal Achievements", RegularTilePenalty, "🟨"},
	TilePhoto:                {"Photo", PhotoTilePenalty, "🟧"},
}

func ParseTile(s string) (Tile, error) {
	t := Tile(s)
	if _, ok := tileSpecs[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTile, s)
	}
	return t, nil
}

// Label is the caption shown on the tile front.
func (t Tile) Label() string { return tileSpecs[t].label }

// Penalty is the score cost of flipping t during an active round.
func (t Tile) Penalty() int { return tileSpecs[t].penalty }

func (t Tile) emoji() string { return tileSpecs[t].flippedEmoji }

func (t Tile) index() int {
	for i, tt := range Tiles {
		if tt == t {
			return i
		}
	}
	return -1
}
