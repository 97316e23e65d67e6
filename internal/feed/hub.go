// Package feed broadcasts submission events to live subscribers.
package feed

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const EventSubmissionCreated = "submission.created"

const defaultBuffer = 16

type Event struct {
	Type       string `json:"type"`
	Submission any    `json:"submission"`
}

// Subscriber receives encoded events on C until it is dropped.
type Subscriber struct {
	ch   chan []byte
	once sync.Once
}

func (s *Subscriber) C() <-chan []byte { return s.ch }

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub fans events out to subscribers. A subscriber whose buffer is full is
// dropped so publishers never block.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	buffer int
	log    *zap.Logger
}

func NewHub(buffer int, log *zap.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
		log:    log,
	}
}

func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
	s.close()
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Publish encodes evt once and delivers it to every subscriber.
func (h *Hub) Publish(evt Event) {
	msg, err := json.Marshal(evt)
	if err != nil {
		h.log.Warn("feed event encode failed", zap.String("type", evt.Type), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.ch <- msg:
		default:
			delete(h.subs, s)
			s.close()
			h.log.Warn("feed subscriber dropped", zap.String("type", evt.Type))
		}
	}
}

// PublishSubmission is a shorthand for a submission.created event.
func (h *Hub) PublishSubmission(submission any) {
	h.Publish(Event{Type: EventSubmissionCreated, Submission: submission})
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		delete(h.subs, s)
		s.close()
	}
}
