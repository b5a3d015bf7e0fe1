package service

import (
	"context"
	"sync"
	"time"

	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/logger"
)

// FetchFunc produces one artwork, typically Orchestrator.FetchRandomArtwork.
type FetchFunc func(ctx context.Context) (domain.Artwork, error)

// PrefetchQueue is a bounded FIFO of ready-made artworks. Items are
// removed from the front (oldest fetched first) and added at the back;
// length never exceeds capacity.
type PrefetchQueue struct {
	mu       sync.Mutex
	items    []domain.Artwork
	capacity int
}

// NewPrefetchQueue creates a queue with the given capacity.
func NewPrefetchQueue(capacity int) *PrefetchQueue {
	return &PrefetchQueue{capacity: capacity}
}

// Len returns the current queue length.
func (q *PrefetchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *PrefetchQueue) Cap() int {
	return q.capacity
}

// Pop removes and returns the oldest artwork, or ok=false when empty.
func (q *PrefetchQueue) Pop() (domain.Artwork, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return domain.Artwork{}, false
	}
	art := q.items[0]
	q.items = q.items[1:]
	return art, true
}

// Push appends an artwork at the back. Returns false when the queue is
// already full; callers racing a concurrent fill rely on this re-check
// so the queue never overshoots capacity.
func (q *PrefetchQueue) Push(art domain.Artwork) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, art)
	return true
}

// Prefetcher keeps the queue topped up from a background goroutine so
// foreground callers rarely block on network I/O.
type Prefetcher struct {
	queue    *PrefetchQueue
	fetch    FetchFunc
	interval time.Duration
	log      *logger.Logger
}

// NewPrefetcher creates a background filler for the queue.
func NewPrefetcher(queue *PrefetchQueue, fetch FetchFunc, interval time.Duration, log *logger.Logger) *Prefetcher {
	return &Prefetcher{
		queue:    queue,
		fetch:    fetch,
		interval: interval,
		log:      log,
	}
}

// Run loops until ctx is cancelled: when the queue is below capacity it
// fetches one artwork and appends it, then sleeps the fill interval
// regardless of outcome. The fetch happens without holding the queue
// lock; Push re-checks capacity afterwards. Fetch errors are logged and
// never surfaced.
func (p *Prefetcher) Run(ctx context.Context) {
	p.log.WithField(logger.FieldComponent, "prefetch").
		Infof("Prefetch loop started (capacity=%d, interval=%s)", p.queue.Cap(), p.interval)

	for {
		if p.queue.Len() < p.queue.Cap() {
			art, err := p.fetch(ctx)
			if err != nil {
				p.log.WithField(logger.FieldComponent, "prefetch").
					Errorf("Prefetch failed: %v", err)
			} else if p.queue.Push(art) {
				p.log.WithFields(logger.Fields{
					logger.FieldComponent: "prefetch",
					logger.FieldArtworkID: art.ID,
					logger.FieldCacheSize: p.queue.Len(),
				}).Infof("Cached artwork: %s", art.Title)
			}
		}

		select {
		case <-ctx.Done():
			p.log.WithField(logger.FieldComponent, "prefetch").Info("Prefetch loop stopped")
			return
		case <-time.After(p.interval):
		}
	}
}
