package service

import (
	"context"

	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/logger"
	"github.com/timmy/artglass/internal/notify"
)

// ArtService is the facade consumed by the command layer. It composes
// the prefetch queue and the history navigator behind three operations
// (Current, Next, Previous) and publishes every artwork it serves on
// the notification bus.
type ArtService struct {
	queue   *PrefetchQueue
	history *History
	fetch   FetchFunc
	bus     *notify.Bus
	log     *logger.Logger
}

// NewArtService creates the facade.
// Parameters:
//   - queue: bounded prefetch cache.
//   - history: history navigator.
//   - fetch: synchronous fallback fetch (the orchestrator).
//   - bus: artwork-changed broadcast bus, may be nil.
//   - log: structured logger.
//
// Returns:
//   - *ArtService: initialized facade.
func NewArtService(queue *PrefetchQueue, history *History, fetch FetchFunc, bus *notify.Bus, log *logger.Logger) *ArtService {
	return &ArtService{
		queue:   queue,
		history: history,
		fetch:   fetch,
		bus:     bus,
		log:     log,
	}
}

// Current returns the artwork under the cursor (or the newest served
// artwork in live mode) without side effects. ok is false before
// anything has been served.
func (s *ArtService) Current() (domain.Artwork, bool) {
	return s.history.Current()
}

// Next advances to the next artwork. While browsing history it replays
// forward without touching the network; in live mode it pops the
// prefetch queue, falling back to a synchronous fetch when the queue is
// empty. New material is recorded in history.
func (s *ArtService) Next(ctx context.Context) (domain.Artwork, error) {
	if art, ok := s.history.StepForward(); ok {
		s.publish(art)
		return art, nil
	}

	// Live mode. The fetch happens outside both the history and queue
	// locks; only the pop and the append are critical sections.
	art, ok := s.queue.Pop()
	if !ok {
		var err error
		art, err = s.fetch(ctx)
		if err != nil {
			return domain.Artwork{}, err
		}
	}

	s.history.Append(art)
	s.publish(art)
	return art, nil
}

// Previous steps back through history. Pure navigation: no network I/O,
// no queue access.
func (s *ArtService) Previous() (domain.Artwork, error) {
	art, err := s.history.StepBack()
	if err != nil {
		return domain.Artwork{}, err
	}
	s.publish(art)
	return art, nil
}

func (s *ArtService) publish(art domain.Artwork) {
	if s.bus != nil {
		s.bus.Publish(art)
	}
}
