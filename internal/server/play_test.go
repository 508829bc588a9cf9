package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// markerKV fails writes of submission markers and passes everything else
// through.
type markerKV struct {
	athlete.KVStore
	fail bool
}

func (m *markerKV) Set(ctx context.Context, key, value string) error {
	if m.fail && strings.HasPrefix(key, "submitted_") {
		return errors.New("kv unavailable")
	}
	return m.KVStore.Set(ctx, key, value)
}

// flakyStore fails RecordResult while fail is set and counts the calls.
type flakyStore struct {
	Store
	fail    bool
	records int
}

func (f *flakyStore) RecordResult(ctx context.Context, res athlete.Result) error {
	f.records++
	if f.fail {
		return errors.New("insert failed")
	}
	return f.Store.RecordResult(ctx, res)
}

func settledRound(t *testing.T, play *Play, sess *Session) *athlete.Round {
	t.Helper()
	r, err := play.Round(context.Background(), sess, athlete.SportBaseball)
	if err != nil {
		t.Fatalf("starting round: %v", err)
	}
	r.GiveUp()
	return r
}

func TestSettleSkipsRecordWithoutMarker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := &markerKV{KVStore: env.kv, fail: true}
	store := &flakyStore{Store: env.store}
	play := NewPlay(store, kv, NewBroker(), logger, env.clock.now)
	sess := newSession(uuid.NewString())

	r := settledRound(t, play, sess)
	play.Settle(ctx, sess, r)
	if store.records != 0 {
		t.Fatalf("RecordResult called %d times without a stored marker", store.records)
	}

	kv.fail = false
	play.Settle(ctx, sess, r)
	play.Settle(ctx, sess, r)
	results, _ := env.store.ListResults(ctx, athlete.SportBaseball, "2025-11-19", eckstein.Name)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 once the marker can be stored", len(results))
	}
}

func TestSettleNeverRetriesAfterMarker(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &flakyStore{Store: env.store, fail: true}
	play := NewPlay(store, env.kv, NewBroker(), logger, env.clock.now)
	sess := newSession(uuid.NewString())

	r := settledRound(t, play, sess)
	play.Settle(ctx, sess, r)
	store.fail = false
	play.Settle(ctx, sess, r)

	if store.records != 1 {
		t.Fatalf("RecordResult called %d times, want 1", store.records)
	}
	if _, done, _ := env.kv.Get(ctx, athlete.SubmissionKey(athlete.SportBaseball, "2025-11-19", sess.Token)); !done {
		t.Fatal("submission marker missing")
	}
}
