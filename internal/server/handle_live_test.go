package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/athleteunknown/internal/athlete"
)

func TestHandleLive(t *testing.T) {
	env := newTestEnv(t)
	h := env.server()
	srv := httptest.NewServer(h)
	defer srv.Close()

	watcher := newToken(t, h)
	expectStatus(t, do(t, h, http.MethodGet, "/api/baseball/round", watcher, nil), http.StatusOK)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] + "/api/baseball/live?token=" + watcher
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	var msg LiveMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if msg.Type != "stats" || msg.Name != "???" || msg.Stats.TotalPlays != 0 {
		t.Fatalf("snapshot = %+v", msg)
	}

	// Another player finishing the same puzzle triggers a push.
	player := newToken(t, h)
	rec := do(t, h, http.MethodPost, "/api/baseball/round/guesses", player, GuessRequest{Guess: "David Eckstein"})
	expectStatus(t, rec, http.StatusOK)

	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if msg.Stats.TotalPlays != 1 || msg.Stats.HighestScore != 100 || msg.Name != "???" {
		t.Fatalf("update = %+v", msg)
	}

	conn.Close(websocket.StatusNormalClosure, "done")
}

func TestHandleLiveClosesAfterRollover(t *testing.T) {
	env := newTestEnv(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	broker := NewBroker()
	sessions := NewSessions(env.clock.now)
	play := NewPlay(env.store, env.kv, broker, logger, env.clock.now)

	r := chi.NewRouter()
	r.Route("/api/{sport}", func(r chi.Router) {
		r.Use(sportMiddleware)
		r.Use(sessionMiddleware(sessions))
		r.Get("/live", handleLive(play, broker, logger))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	sess := sessions.Create()
	sess.mu.Lock()
	round, err := play.Round(context.Background(), sess, athlete.SportBaseball)
	sess.mu.Unlock()
	if err != nil {
		t.Fatalf("starting round: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + srv.URL[len("http"):] + "/api/baseball/live?token=" + sess.Token
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	var msg LiveMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if msg.PlayDate != "2025-11-19" {
		t.Fatalf("snapshot = %+v", msg)
	}

	env.clock.advance(24 * time.Hour)
	broker.Publish(puzzleTopic(round.Info.Sport, round.Info.PlayDate, round.Player.Name), StatsEvent{Type: "result_recorded"})

	_, _, err = conn.Read(ctx)
	if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure {
		t.Fatalf("read after rollover err = %v, want normal closure", err)
	}
}

func TestLiveStatsRejectsStaleRound(t *testing.T) {
	env := newTestEnv(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	play := NewPlay(env.store, env.kv, NewBroker(), logger, env.clock.now)
	sess := newSession("watcher")

	sess.mu.Lock()
	round, err := play.Round(context.Background(), sess, athlete.SportBaseball)
	sess.mu.Unlock()
	if err != nil {
		t.Fatalf("starting round: %v", err)
	}

	if _, err := liveStats(context.Background(), play, sess, round); err != nil {
		t.Fatalf("liveStats on current round: %v", err)
	}
	if !liveRoundCurrent(play, sess, round) {
		t.Fatal("current round reported stale")
	}

	env.clock.advance(24 * time.Hour)
	if _, err := liveStats(context.Background(), play, sess, round); !errors.Is(err, errLiveRoundOver) {
		t.Fatalf("liveStats after rollover err = %v, want errLiveRoundOver", err)
	}
	if liveRoundCurrent(play, sess, round) {
		t.Fatal("stale round reported current")
	}
}

func TestHandleLiveWithoutRound(t *testing.T) {
	env := newTestEnv(t)
	h := env.server()
	token := newToken(t, h)

	expectStatus(t, do(t, h, http.MethodGet, "/api/baseball/live?token="+token, "", nil), http.StatusNotFound)
}

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	topic := puzzleTopic("baseball", "2025-11-19", "David Eckstein")
	if topic != puzzleTopic("baseball", "2025-11-19", "david  eckstein") {
		t.Fatalf("topic should ignore case and spacing")
	}

	a, cancelA := b.Subscribe(topic)
	other, cancelOther := b.Subscribe("football|2025-11-19|stevemcnair")
	defer cancelOther()
	b.Publish(topic, StatsEvent{Type: "result_recorded", Score: 90})

	select {
	case ev := <-a:
		if ev.Score != 90 {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber did not receive event")
	}
	select {
	case <-other:
		t.Fatal("event leaked to another topic")
	default:
	}

	// A full subscriber is skipped, not blocked on.
	for range 32 {
		b.Publish(topic, StatsEvent{})
	}

	cancelA()
	cancelA()
	if n := b.subscribers(topic); n != 0 {
		t.Fatalf("subscribers = %d after unsubscribe", n)
	}
}
