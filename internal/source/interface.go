package source

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/domain"
)

// Source defines the interface for museum art sources.
type Source interface {
	// GetSourceID returns the stable short identifier for this source
	// (used as the artwork ID prefix, e.g. "met").
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	GetDisplayName() string

	// Fetch retrieves one normalized artwork from the source.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	// Returns:
	//   - domain.Artwork: normalized record with embedded image.
	//   - error: a *domain.FetchError describing the failing step.
	Fetch(ctx context.Context) (domain.Artwork, error)
}

// Rand is the randomness adapters draw on for search terms, result pages,
// and candidate selection. Injected so tests can force deterministic order.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand delegates to math/rand's goroutine-safe global functions.
type globalRand struct{}

func (globalRand) Intn(n int) int                     { return rand.Intn(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRand returns the process-wide random source. Safe for concurrent
// use by the background filler and foreground fetches.
func DefaultRand() Rand {
	return globalRand{}
}

// NewHTTPClient builds the shared outbound client. Every request carries
// the client identification header; the timeout bounds both museum API
// calls and image downloads.
func NewHTTPClient(userAgent string, timeout time.Duration) *resty.Client {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(timeout)
	return client
}
