package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// FlipRequest is the request body for POST /api/{sport}/round/tiles.
type FlipRequest struct {
	Tile athlete.Tile `json:"tile"`
}

// GuessRequest is the request body for POST /api/{sport}/round/guesses.
type GuessRequest struct {
	Guess string `json:"guess"`
}

// ShareResponse is the response for GET /api/{sport}/round/share.
type ShareResponse struct {
	Text string `json:"text"`
}

// writeRoundError maps a failure to start a round onto a response.
func writeRoundError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, athlete.ErrNoPlayers):
		writeError(w, http.StatusNotFound, "no players loaded")
	case errors.Is(err, errNoRound):
		writeError(w, http.StatusNotFound, "no round started")
	default:
		logger.Error("loading round", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func handleGetRound(play *Play, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := play.Round(r.Context(), sess, sportFrom(r))
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}
		writeJSON(w, http.StatusOK, viewRound(round))
	}
}

func handleFlipTile(play *Play, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FlipRequest
		if !bindJSON(w, r, &req) {
			return
		}

		sess := sessionFrom(r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := play.Round(r.Context(), sess, sportFrom(r))
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}
		if err := round.FlipTile(req.Tile); err != nil {
			writeError(w, http.StatusBadRequest, "unknown tile")
			return
		}
		writeJSON(w, http.StatusOK, viewRound(round))
	}
}

func handleSubmitGuess(play *Play, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuessRequest
		if !bindJSON(w, r, &req) {
			return
		}

		sess := sessionFrom(r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := play.Round(r.Context(), sess, sportFrom(r))
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}

		res := round.SubmitGuess(req.Guess)
		if res.Changed() {
			play.Settle(r.Context(), sess, round)
		}
		writeJSON(w, http.StatusOK, GuessResponse{Result: res, Round: viewRound(round)})
	}
}

func handleGiveUp(play *Play, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := play.Round(r.Context(), sess, sportFrom(r))
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}

		round.GiveUp()
		play.Settle(r.Context(), sess, round)
		writeJSON(w, http.StatusOK, viewRound(round))
	}
}

func handleShare(play *Play, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := play.Existing(sess, sportFrom(r))
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}
		if !round.Completed {
			writeError(w, http.StatusConflict, "round not completed")
			return
		}
		writeJSON(w, http.StatusOK, ShareResponse{Text: round.ShareText()})
	}
}

func handleStats(play *Play, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := play.Existing(sess, sportFrom(r))
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}

		stats, err := play.Stats(r.Context(), round)
		if err != nil {
			logger.Error("aggregating stats", "round", round.Info.ID(), "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
