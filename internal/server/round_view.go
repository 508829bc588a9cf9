package server

import (
	"slices"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// TileView is one board tile. Value is only set once the tile is flipped.
type TileView struct {
	Tile    athlete.Tile `json:"tile"`
	Label   string       `json:"label"`
	Penalty int          `json:"penalty"`
	Flipped bool         `json:"flipped"`
	Value   string       `json:"value,omitempty"`
}

// AnswerView reveals the mystery player after the round completes.
type AnswerView struct {
	Name         string `json:"name"`
	ReferenceURL string `json:"referenceUrl,omitempty"`
	Photo        string `json:"photo,omitempty"`
}

// RoundResponse is the player-facing round state. It never includes the
// answer while the round is active.
type RoundResponse struct {
	Round            athlete.RoundInfo   `json:"round"`
	Score            int                 `json:"score"`
	Tiles            []TileView          `json:"tiles"`
	TilesFlipped     int                 `json:"tilesFlipped"`
	PhotoRevealed    bool                `json:"photoRevealed"`
	PreviousGuesses  []string            `json:"previousGuesses"`
	IncorrectGuesses int                 `json:"incorrectGuesses"`
	Hint             string              `json:"hint,omitempty"`
	Message          string              `json:"message,omitempty"`
	MessageType      athlete.MessageType `json:"messageType,omitempty"`
	Completed        bool                `json:"completed"`
	Outcome          athlete.Outcome     `json:"outcome,omitempty"`
	Rank             string              `json:"rank,omitempty"`
	Answer           *AnswerView         `json:"answer,omitempty"`
}

// GuessResponse is the response for POST /api/{sport}/round/guesses.
type GuessResponse struct {
	Result athlete.GuessResult `json:"result"`
	Round  RoundResponse       `json:"round"`
}

func viewRound(r *athlete.Round) RoundResponse {
	tiles := make([]TileView, 0, len(athlete.Tiles))
	for _, t := range athlete.Tiles {
		tv := TileView{
			Tile:    t,
			Label:   t.Label(),
			Penalty: t.Penalty(),
			Flipped: slices.Contains(r.Flipped, t),
		}
		if tv.Flipped {
			tv.Value = r.Player.Fact(t)
		}
		tiles = append(tiles, tv)
	}

	guesses := r.PreviousGuesses
	if guesses == nil {
		guesses = []string{}
	}

	resp := RoundResponse{
		Round:            r.Info,
		Score:            r.Score,
		Tiles:            tiles,
		TilesFlipped:     r.TilesFlippedCount(),
		PhotoRevealed:    r.PhotoRevealed,
		PreviousGuesses:  guesses,
		IncorrectGuesses: r.IncorrectGuesses,
		Hint:             r.Hint,
		Message:          r.Message,
		MessageType:      r.MessageType,
		Completed:        r.Completed,
		Outcome:          r.Outcome,
		Rank:             r.Rank,
	}
	if r.Completed {
		resp.Answer = &AnswerView{
			Name:         r.Player.Name,
			ReferenceURL: r.Player.ReferenceURL(),
			Photo:        r.Player.Photo,
		}
	}
	return resp
}
