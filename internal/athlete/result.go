package athlete

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	shareGridCols  = 3
	unflippedEmoji = "🟦"
	wonEmoji       = "✅"
	gaveUpEmoji    = "❌"
)

// Result is the payload submitted to the stats recorder when a round ends.
type Result struct {
	UserID              string     `json:"userId"`
	Sport               Sport      `json:"sport"`
	PlayDate            string     `json:"playDate"`
	PlayerName          string     `json:"playerName"`
	Score               int        `json:"score"`
	TilesFlipped        int        `json:"tilesFlipped"`
	IncorrectGuesses    int        `json:"incorrectGuesses"`
	FlippedTilesPattern []bool     `json:"flippedTilesPattern"`
	FirstTileFlipped    Tile       `json:"firstTileFlipped,omitempty"`
	LastTileFlipped     Tile       `json:"lastTileFlipped,omitempty"`
	Completed           bool       `json:"completed"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	Rank                string     `json:"rank,omitempty"`
}

// Result snapshots the round for userID.
func (r *Round) Result(userID string, now time.Time) Result {
	res := Result{
		UserID:              userID,
		Sport:               r.Info.Sport,
		PlayDate:            r.Info.PlayDate,
		PlayerName:          r.Player.Name,
		Score:               r.Score,
		TilesFlipped:        r.TilesFlippedCount(),
		IncorrectGuesses:    r.IncorrectGuesses,
		FlippedTilesPattern: r.Pattern(),
		FirstTileFlipped:    r.FirstTileFlipped,
		LastTileFlipped:     r.LastTileFlipped,
		Completed:           r.Completed,
		Rank:                r.Rank,
	}
	if r.Completed {
		t := now.UTC()
		res.CompletedAt = &t
	}
	return res
}

// ShareText renders the emoji grid summary players paste elsewhere.
// The first cell is the won/gave-up marker, followed by every tile in
// board order, three cells per row.
func (r *Round) ShareText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Athlete Unknown %s #%d\n", titleCase(string(r.Info.Sport)), r.Info.Number)

	won := r.Won()
	cells := make([]string, 0, len(Tiles)+1)
	if won {
		cells = append(cells, wonEmoji)
	} else {
		cells = append(cells, gaveUpEmoji)
	}
	for i, flipped := range r.Pattern() {
		if flipped {
			cells = append(cells, Tiles[i].emoji())
		} else {
			cells = append(cells, unflippedEmoji)
		}
	}

	for i, c := range cells {
		b.WriteString(c)
		if (i+1)%shareGridCols == 0 || i == len(cells)-1 {
			b.WriteString("\n")
		}
	}

	if won {
		fmt.Fprintf(&b, "Score: %d", r.Score)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func titleCase(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
