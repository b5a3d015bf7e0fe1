// Package notify carries the "artwork changed" push from the facade to
// connected overlay windows.
package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/logger"
)

// Bus is an in-process broadcast of served artworks. Publishing never
// blocks: a subscriber whose buffer is full misses that event (the UI
// also pulls the current artwork on mount as a fallback).
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]chan domain.Artwork
	buffer int
}

// NewBus creates a bus with the given per-subscriber buffer.
func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus{
		subs:   make(map[string]chan domain.Artwork),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber and returns its ID and channel.
// The caller must Unsubscribe when done.
func (b *Bus) Subscribe() (string, <-chan domain.Artwork) {
	id := uuid.New().String()
	ch := make(chan domain.Artwork, b.buffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish broadcasts an artwork to all subscribers, dropping it for any
// subscriber whose buffer is full.
func (b *Bus) Publish(art domain.Artwork) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- art:
		default:
			logger.With(logger.Fields{
				logger.FieldArtworkID: art.ID,
			}).Warn(nil, "Dropped artwork event for slow subscriber %s", id)
		}
	}
}

// Count returns the number of active subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
