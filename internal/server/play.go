package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playperu/athleteunknown/internal/athlete"
)

var errNoRound = errors.New("no round started")

// Play runs rounds for sessions: it draws players, applies events and
// records finished rounds exactly once per client and day.
type Play struct {
	store  Store
	kv     athlete.KVStore
	broker *Broker
	logger *slog.Logger
	now    func() time.Time
}

func NewPlay(store Store, kv athlete.KVStore, broker *Broker, logger *slog.Logger, now func() time.Time) *Play {
	if now == nil {
		now = time.Now
	}
	return &Play{store: store, kv: kv, broker: broker, logger: logger, now: now}
}

func (p *Play) today() string {
	return athlete.PlayDate(p.now())
}

// Round returns sess's round for sport today, drawing the client's player
// for the day if there is none. A session rebuilt after a restart gets the
// same player it drew earlier that day. Caller holds sess.mu.
func (p *Play) Round(ctx context.Context, sess *Session, sport athlete.Sport) (*athlete.Round, error) {
	today := p.today()
	if r, ok := sess.rounds[sport]; ok && r.Info.PlayDate == today {
		return r, nil
	}

	players, err := p.store.ListPlayers(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	player, idx, err := athlete.DailyPlayer(ctx, p.kv, sport, today, sess.Token, players)
	if err != nil {
		return nil, err
	}

	number := player.DailyNumber
	if number == 0 {
		number = idx + 1
	}
	if player.Sport == "" {
		player.Sport = sport
	}

	r := athlete.NewRound(athlete.RoundInfo{Sport: sport, Number: number, PlayDate: today}, player)
	sess.rounds[sport] = r
	p.logger.Debug("round started", "sport", sport, "round", r.Info.ID(), "play_date", today)
	return r, nil
}

// Existing returns sess's round for sport today without starting one.
// Caller holds sess.mu.
func (p *Play) Existing(sess *Session, sport athlete.Sport) (*athlete.Round, error) {
	r, ok := sess.rounds[sport]
	if !ok || r.Info.PlayDate != p.today() {
		return nil, errNoRound
	}
	return r, nil
}

// Settle records r once it is completed, at most once per client and day.
// Failures are logged and do not surface to the player. Caller holds
// sess.mu.
func (p *Play) Settle(ctx context.Context, sess *Session, r *athlete.Round) {
	if !r.Completed {
		return
	}

	key := athlete.SubmissionKey(r.Info.Sport, r.Info.PlayDate, sess.Token)
	_, done, err := p.kv.Get(ctx, key)
	if err != nil {
		p.logger.Error("reading submission marker", "key", key, "error", err)
		return
	}
	if done {
		return
	}

	// The marker goes first: a failed insert loses one result, while a
	// failed marker write after the insert could record the day twice.
	if err := p.kv.Set(ctx, key, "true"); err != nil {
		p.logger.Error("storing submission marker", "key", key, "error", err)
		return
	}
	res := r.Result(sess.Token, p.now())
	if err := p.store.RecordResult(ctx, res); err != nil {
		p.logger.Error("recording result", "round", r.Info.ID(), "error", err)
		return
	}

	p.logger.Info("round completed",
		"round", r.Info.ID(),
		"play_date", r.Info.PlayDate,
		"outcome", r.Outcome,
		"score", r.Score,
		"rank", r.Rank,
	)

	p.broker.Publish(puzzleTopic(r.Info.Sport, r.Info.PlayDate, r.Player.Name), StatsEvent{
		Type:     "result_recorded",
		Sport:    r.Info.Sport,
		PlayDate: r.Info.PlayDate,
		Score:    res.Score,
	})
}

// Stats aggregates every recorded result for r's puzzle. The player name
// stays hidden until r is completed.
func (p *Play) Stats(ctx context.Context, r *athlete.Round) (athlete.RoundStats, error) {
	results, err := p.store.ListResults(ctx, r.Info.Sport, r.Info.PlayDate, r.Player.Name)
	if err != nil {
		return athlete.RoundStats{}, fmt.Errorf("listing results: %w", err)
	}
	name := "???"
	if r.Completed {
		name = r.Player.Name
	}
	return athlete.Aggregate(r.Info.Sport, r.Info.PlayDate, name, results), nil
}
