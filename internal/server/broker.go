package server

import (
	"sync"

	"github.com/playperu/athleteunknown/internal/athlete"
)

// StatsEvent announces that a new result was recorded for a puzzle.
type StatsEvent struct {
	Type     string        `json:"type"`
	Sport    athlete.Sport `json:"sport"`
	PlayDate string        `json:"playDate"`
	Score    int           `json:"score"`
}

// puzzleTopic keys subscriptions by the puzzle a result belongs to:
// every session that drew the same player on the same day shares one.
func puzzleTopic(sport athlete.Sport, playDate, playerName string) string {
	return string(sport) + "|" + playDate + "|" + athlete.Normalize(playerName)
}

const subscriberBuffer = 16

// Broker fans stats events out to live subscribers in process.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[chan StatsEvent]struct{}
}

func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[chan StatsEvent]struct{})}
}

// Subscribe registers interest in topic. The returned cancel func must be
// called once the subscriber stops reading.
func (b *Broker) Subscribe(topic string) (<-chan StatsEvent, func()) {
	ch := make(chan StatsEvent, subscriberBuffer)

	b.mu.Lock()
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[chan StatsEvent]struct{})
		b.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.remove(topic, ch) })
	}
}

func (b *Broker) remove(topic string, ch chan StatsEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.topics[topic], ch)
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
}

// Publish delivers event to every subscriber of topic. Subscribers with a
// full buffer miss the event; they recompute stats on the next one.
func (b *Broker) Publish(topic string, event StatsEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.topics[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *Broker) subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
