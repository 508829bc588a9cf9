package athlete

import (
	"fmt"
	"slices"
)

// Scoring rules.
const (
	StartingScore         = 100
	IncorrectGuessPenalty = 2
	RegularTilePenalty    = 3
	PhotoTilePenalty      = 6

	// VeryCloseDistance is the largest edit distance treated as a spelling
	// slip. Such guesses need a second, closer attempt to be accepted.
	VeryCloseDistance = 2
	// CloseDistance is the largest edit distance accepted outright as close.
	CloseDistance = 4

	// HintThreshold is the score under which the initials hint appears.
	HintThreshold = 80
)

type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeCorrect Outcome = "correct"
	OutcomeClose   Outcome = "close"
	OutcomeGaveUp  Outcome = "gave_up"
)

type MessageType string

const (
	MessageNone    MessageType = ""
	MessageSuccess MessageType = "success"
	MessageAlmost  MessageType = "almost"
	MessageClose   MessageType = "close"
	MessageError   MessageType = "error"
)

type GuessStatus string

const (
	GuessRejectedEmpty    GuessStatus = "rejected_empty"
	GuessRejectedRepeat   GuessStatus = "rejected_repeat"
	GuessIgnoredCompleted GuessStatus = "ignored_completed"
	GuessCorrect          GuessStatus = "correct"
	GuessVeryClose        GuessStatus = "very_close"
	GuessClose            GuessStatus = "close"
	GuessIncorrect        GuessStatus = "incorrect"
)

// GuessResult describes what a single SubmitGuess call did.
type GuessResult struct {
	Status      GuessStatus `json:"status"`
	Distance    int         `json:"distance"`
	Message     string      `json:"message,omitempty"`
	MessageType MessageType `json:"messageType,omitempty"`
	// ShowResults asks the caller to (re)open the results view.
	ShowResults bool `json:"showResults"`
}

// Changed reports whether the guess mutated the round.
func (g GuessResult) Changed() bool {
	switch g.Status {
	case GuessRejectedEmpty, GuessRejectedRepeat, GuessIgnoredCompleted:
		return false
	}
	return true
}

// Round is the state of one player's attempt at one daily puzzle. A Round
// is not safe for concurrent use; callers serialize events per round.
type Round struct {
	Info   RoundInfo
	Player Player

	Score               int
	Flipped             []Tile
	FlippedAtCompletion []Tile
	FirstTileFlipped    Tile
	LastTileFlipped     Tile
	PhotoRevealed       bool

	PreviousGuesses    []string
	PreviousCloseGuess string
	LastSubmittedGuess string
	IncorrectGuesses   int
	Hint               string

	Message     string
	MessageType MessageType

	Completed bool
	GaveUp    bool
	Outcome   Outcome
	Rank      string
}

func NewRound(info RoundInfo, p Player) *Round {
	return &Round{
		Info:   info,
		Player: p,
		Score:  StartingScore,
	}
}

// SubmitGuess scores a name guess against the round's player.
func (r *Round) SubmitGuess(raw string) GuessResult {
	guess := Normalize(raw)
	if guess == "" {
		return GuessResult{Status: GuessRejectedEmpty}
	}
	answer := Normalize(r.Player.Name)
	distance := EditDistance(guess, answer)

	if r.Completed {
		return GuessResult{
			Status:      GuessIgnoredCompleted,
			Distance:    distance,
			ShowResults: guess == answer,
		}
	}

	if guess != answer && r.LastSubmittedGuess != "" && guess == r.LastSubmittedGuess {
		return GuessResult{Status: GuessRejectedRepeat, Distance: distance}
	}

	r.LastSubmittedGuess = guess
	r.PreviousGuesses = append(r.PreviousGuesses, raw)

	if guess == answer {
		r.complete(OutcomeCorrect)
		r.setMessage("You guessed it right!", MessageSuccess)
		return r.result(GuessCorrect, distance, true)
	}

	if distance <= VeryCloseDistance {
		if r.PreviousCloseGuess == "" {
			r.PreviousCloseGuess = guess
			r.penalize(IncorrectGuessPenalty)
			r.setMessage(spellingMessage(distance), MessageAlmost)
			return r.result(GuessVeryClose, distance, false)
		}
		if distance < EditDistance(r.PreviousCloseGuess, answer) {
			r.penalize(IncorrectGuessPenalty)
			r.complete(OutcomeClose)
			r.setMessage("Spelling accepted", MessageSuccess)
			return r.result(GuessClose, distance, true)
		}
	} else if distance <= CloseDistance || (guess == surname(r.Player.Name) && guess != "") {
		r.penalize(IncorrectGuessPenalty)
		r.complete(OutcomeClose)
		r.setMessage(fmt.Sprintf("Correct, you were close! Player's name: %s", r.Player.Name), MessageClose)
		return r.result(GuessClose, distance, true)
	}

	r.penalize(IncorrectGuessPenalty)
	r.IncorrectGuesses++
	r.setMessage(fmt.Sprintf("Incorrect: %q", raw), MessageError)
	return r.result(GuessIncorrect, distance, false)
}

// FlipTile reveals tile t. While the photo overlay is showing, any flip
// only dismisses it. Flips after completion are visual only.
func (r *Round) FlipTile(t Tile) error {
	if _, err := ParseTile(string(t)); err != nil {
		return err
	}

	if r.PhotoRevealed {
		r.PhotoRevealed = false
		return nil
	}

	if slices.Contains(r.Flipped, t) {
		if t == TilePhoto {
			r.PhotoRevealed = true
		}
		return nil
	}

	r.Flipped = append(r.Flipped, t)
	if t == TilePhoto {
		r.PhotoRevealed = true
	}

	if r.Completed {
		return nil
	}

	if r.FirstTileFlipped == "" {
		r.FirstTileFlipped = t
	}
	r.LastTileFlipped = t
	r.penalize(t.Penalty())
	return nil
}

// GiveUp ends an active round with a zero score.
func (r *Round) GiveUp() {
	if r.Completed {
		return
	}
	r.Score = 0
	r.GaveUp = true
	r.complete(OutcomeGaveUp)
	r.setMessage(fmt.Sprintf("The player was %s", r.Player.Name), MessageError)
}

// Won reports whether the round ended with the player identified.
func (r *Round) Won() bool {
	return r.Outcome == OutcomeCorrect || r.Outcome == OutcomeClose
}

// TilesFlippedCount counts the tiles flipped while the round was active.
func (r *Round) TilesFlippedCount() int {
	if r.Completed {
		return len(r.FlippedAtCompletion)
	}
	return len(r.Flipped)
}

// Pattern reports, in board order, which tiles were flipped when the
// round ended (or so far, for an active round).
func (r *Round) Pattern() []bool {
	flipped := r.Flipped
	if r.Completed {
		flipped = r.FlippedAtCompletion
	}
	out := make([]bool, len(Tiles))
	for _, t := range flipped {
		if i := t.index(); i >= 0 {
			out[i] = true
		}
	}
	return out
}

func (r *Round) complete(o Outcome) {
	r.Completed = true
	r.Outcome = o
	r.PreviousCloseGuess = ""
	r.FlippedAtCompletion = slices.Clone(r.Flipped)
	if o != OutcomeGaveUp {
		r.Rank = EvaluateRank(r.Score)
		r.Hint = ""
	}
}

func (r *Round) penalize(points int) {
	if r.Completed {
		return
	}
	r.Score -= points
	if r.Score < HintThreshold && r.Hint == "" {
		r.Hint = Initials(r.Player.Name)
	}
}

func (r *Round) setMessage(msg string, typ MessageType) {
	r.Message = msg
	r.MessageType = typ
}

func (r *Round) result(s GuessStatus, distance int, show bool) GuessResult {
	return GuessResult{
		Status:      s,
		Distance:    distance,
		Message:     r.Message,
		MessageType: r.MessageType,
		ShowResults: show,
	}
}

func spellingMessage(distance int) string {
	if distance == 1 {
		return "Spelling is off by 1 letter."
	}
	return fmt.Sprintf("Spelling is off by %d letters.", distance)
}

// EvaluateRank maps a final score to its rank band, or "" below Solid.
func EvaluateRank(score int) string {
	switch {
	case score >= 95:
		return "Amazing"
	case score >= 90:
		return "Elite"
	case score >= 80:
		return "Solid"
	}
	return ""
}
