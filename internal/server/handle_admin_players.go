package server

import (
	"log/slog"
	"net/http"

	"github.com/playperu/athleteunknown/internal/athlete"
	"github.com/playperu/athleteunknown/internal/dataset"
)

// PlayersResponse lists a sport's dataset in rotation order.
type PlayersResponse struct {
	Sport   athlete.Sport    `json:"sport"`
	Players []athlete.Player `json:"players"`
}

func handleAdminListPlayers(store Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sport := sportFrom(r)
		players, err := store.ListPlayers(r.Context(), sport)
		if err != nil {
			logger.Error("listing players", "sport", sport, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if players == nil {
			players = []athlete.Player{}
		}
		writeJSON(w, http.StatusOK, PlayersResponse{Sport: sport, Players: players})
	}
}

// handleAdminReplacePlayers swaps the sport's whole dataset. Rounds already
// in progress keep the player they drew.
func handleAdminReplacePlayers(store Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var players []athlete.Player
		if !bindJSON(w, r, &players) {
			return
		}
		if err := dataset.Validate(players); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sport := sportFrom(r)
		for i := range players {
			players[i].Sport = sport
		}
		if err := store.ReplacePlayers(r.Context(), sport, players); err != nil {
			logger.Error("replacing players", "sport", sport, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("dataset replaced", "sport", sport, "players", len(players), "admin", adminFrom(r).Email)
		writeJSON(w, http.StatusOK, PlayersResponse{Sport: sport, Players: players})
	}
}
