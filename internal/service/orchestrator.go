package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/logger"
	"github.com/timmy/artglass/internal/source"
)

// Orchestrator runs the multi-source fetch cascade: a uniformly random
// starting source, then round-robin through the rest, stopping at the
// first success. A single museum outage is invisible to the consumer as
// long as one other source succeeds.
type Orchestrator struct {
	sources []source.Source
	rng     source.Rand
	log     *logger.Logger
}

// NewOrchestrator creates an orchestrator over the given sources.
// Parameters:
//   - sources: enabled adapters, at least one.
//   - rng: randomness for the starting-source pick.
//   - log: structured logger.
//
// Returns:
//   - *Orchestrator: initialized orchestrator.
func NewOrchestrator(sources []source.Source, rng source.Rand, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		sources: sources,
		rng:     rng,
		log:     log,
	}
}

// FetchRandomArtwork cascades through the sources and returns the first
// success. Every failure is logged with its source; only when all
// sources fail does the last error surface, wrapped in
// domain.ErrAllSourcesFailed.
func (o *Orchestrator) FetchRandomArtwork(ctx context.Context) (domain.Artwork, error) {
	if len(o.sources) == 0 {
		return domain.Artwork{}, errors.New("no sources configured")
	}

	start := o.rng.Intn(len(o.sources))

	var lastErr error
	for i := 0; i < len(o.sources); i++ {
		src := o.sources[(start+i)%len(o.sources)]

		began := time.Now()
		art, err := src.Fetch(ctx)
		if err != nil {
			o.log.WithFields(logger.Fields{
				logger.FieldSource: src.GetSourceID(),
			}).Warnf("%s failed: %v", src.GetDisplayName(), err)
			lastErr = err
			continue
		}

		o.log.WithFields(logger.Fields{
			logger.FieldSource:     src.GetSourceID(),
			logger.FieldArtworkID:  art.ID,
			logger.FieldDurationMs: time.Since(began).Milliseconds(),
		}).Infof("Fetched %q from %s", art.Title, src.GetDisplayName())
		return art, nil
	}

	return domain.Artwork{}, fmt.Errorf("%w: last error: %v", domain.ErrAllSourcesFailed, lastErr)
}
