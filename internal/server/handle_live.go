package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// LiveMessage is pushed over GET /api/{sport}/live whenever a result is
// recorded for the session's current puzzle.
type LiveMessage struct {
	Type     string             `json:"type"`
	Sport    athlete.Sport      `json:"sport"`
	PlayDate string             `json:"playDate"`
	Name     string             `json:"name"`
	Stats    athlete.RoundStats `json:"stats"`
}

const livePingInterval = 30 * time.Second

// errLiveRoundOver ends a live feed once its round is no longer the
// session's current one, for example after the play date rolls over.
var errLiveRoundOver = errors.New("round is over")

func handleLive(play *Play, broker *Broker, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		sess.mu.Lock()
		round, err := play.Existing(sess, sportFrom(r))
		sess.mu.Unlock()
		if err != nil {
			writeRoundError(w, logger, err)
			return
		}
		topic := puzzleTopic(round.Info.Sport, round.Info.PlayDate, round.Player.Name)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		events, cancel := broker.Subscribe(topic)
		defer cancel()

		// Clients never send; CloseRead cancels ctx once the peer goes away.
		ctx := conn.CloseRead(r.Context())

		push := func() error {
			msg, err := liveStats(ctx, play, sess, round)
			if err != nil {
				return err
			}
			return wsjson.Write(ctx, conn, msg)
		}
		stop := func(err error) {
			if errors.Is(err, errLiveRoundOver) {
				conn.Close(websocket.StatusNormalClosure, "round over")
				return
			}
			logger.Debug("websocket write failed", "error", err)
		}

		if err := push(); err != nil {
			stop(err)
			return
		}

		ping := time.NewTicker(livePingInterval)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Debug("websocket closed", "error", ctx.Err())
				return
			case <-events:
				if err := push(); err != nil {
					stop(err)
					return
				}
			case <-ping.C:
				if !liveRoundCurrent(play, sess, round) {
					stop(errLiveRoundOver)
					return
				}
				if err := conn.Ping(ctx); err != nil {
					logger.Debug("websocket ping failed", "error", err)
					return
				}
			}
		}
	}
}

func liveRoundCurrent(play *Play, sess *Session, round *athlete.Round) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	current, err := play.Existing(sess, round.Info.Sport)
	return err == nil && current == round
}

func liveStats(ctx context.Context, play *Play, sess *Session, round *athlete.Round) (LiveMessage, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if current, err := play.Existing(sess, round.Info.Sport); err != nil || current != round {
		return LiveMessage{}, errLiveRoundOver
	}
	stats, err := play.Stats(ctx, round)
	if err != nil {
		return LiveMessage{}, err
	}
	return LiveMessage{
		Type:     "stats",
		Sport:    stats.Sport,
		PlayDate: stats.PlayDate,
		Name:     stats.Name,
		Stats:    stats,
	}, nil
}
