package server

import (
	"context"
	"testing"
	"time"

	"github.com/playperu/athleteunknown/internal/athlete"
)

func TestSQLiteStorePlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	got, err := env.store.ListPlayers(ctx, athlete.SportBaseball)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	// Stored players carry the sport they were uploaded under.
	want := eckstein
	want.Sport = athlete.SportBaseball
	if len(got) != 1 || got[0] != want {
		t.Fatalf("round trip = %+v", got)
	}

	replacement := []athlete.Player{{Name: "Ozzie Smith"}, {Name: "Cal Ripken Jr."}}
	if err := env.store.ReplacePlayers(ctx, athlete.SportBaseball, replacement); err != nil {
		t.Fatalf("replacing: %v", err)
	}
	got, _ = env.store.ListPlayers(ctx, athlete.SportBaseball)
	if len(got) != 2 || got[0].Name != "Ozzie Smith" || got[1].Name != "Cal Ripken Jr." {
		t.Fatalf("after replace = %+v, want rotation order kept", got)
	}

	if n, _ := env.store.PlayerCount(ctx, athlete.SportFootball); n != 0 {
		t.Fatalf("football count = %d", n)
	}
}

func TestSQLiteStoreResults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	at := time.Date(2025, 11, 19, 20, 0, 0, 0, time.UTC)

	r := athlete.NewRound(athlete.RoundInfo{Sport: athlete.SportBaseball, Number: 7, PlayDate: "2025-11-19"}, eckstein)
	if err := r.FlipTile(athlete.TilePhoto); err != nil {
		t.Fatal(err)
	}
	r.SubmitGuess("David Eckstein")
	want := r.Result("u1", at)

	if err := env.store.RecordResult(ctx, want); err != nil {
		t.Fatalf("recording: %v", err)
	}
	if err := env.store.RecordResult(ctx, athlete.Result{
		Sport: athlete.SportBaseball, PlayDate: "2025-11-18", PlayerName: "David Eckstein",
		FlippedTilesPattern: make([]bool, len(athlete.Tiles)),
	}); err != nil {
		t.Fatalf("recording other day: %v", err)
	}

	got, err := env.store.ListResults(ctx, athlete.SportBaseball, "2025-11-19", "David Eckstein")
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	res := got[0]
	if res.PlayDate != "2025-11-19" {
		t.Fatalf("playDate = %q, want 2025-11-19", res.PlayDate)
	}
	if res.Score != 94 || res.Rank != "Elite" || res.FirstTileFlipped != athlete.TilePhoto || !res.FlippedTilesPattern[8] {
		t.Fatalf("result = %+v", res)
	}
	if res.CompletedAt == nil || !res.CompletedAt.Equal(at) {
		t.Fatalf("completedAt = %v", res.CompletedAt)
	}
}

func TestSQLiteStoreAdminSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.store.EnsureAdmin(ctx, "a@example.com", "hash-1"); err != nil {
		t.Fatalf("ensuring admin: %v", err)
	}
	// A second seed keeps the first password.
	if err := env.store.EnsureAdmin(ctx, "a@example.com", "hash-2"); err != nil {
		t.Fatalf("re-ensuring admin: %v", err)
	}
	id, hash, err := env.store.AdminByEmail(ctx, "a@example.com")
	if err != nil || hash != "hash-1" {
		t.Fatalf("AdminByEmail = %q, %q, %v", id, hash, err)
	}

	sid, err := env.store.CreateAdminSession(ctx, id)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	sess, err := env.store.AdminFromSession(ctx, sid)
	if err != nil || sess.AdminID != id || sess.Email != "a@example.com" {
		t.Fatalf("AdminFromSession = %+v, %v", sess, err)
	}

	if _, err := env.db.ExecContext(ctx,
		`UPDATE admin_sessions SET created_at = '2000-01-01T00:00:00.000Z' WHERE id = ?`, sid); err != nil {
		t.Fatalf("aging session: %v", err)
	}
	if _, err := env.store.AdminFromSession(ctx, sid); err != errNoAdminSession {
		t.Fatalf("expired session err = %v, want errNoAdminSession", err)
	}
}
