package service

import (
	"sync"

	"github.com/timmy/artglass/internal/domain"
)

// liveCursor marks live mode: the consumer sits at the newest edge and
// the next step fetches new material instead of replaying history.
const liveCursor = -1

// History is the session-local record of artworks already served, plus
// the browsing cursor. Both live under one mutex: every read-modify-write
// spanning items and cursor is a single critical section, so a concurrent
// forward and backward step can never observe a stale cursor.
type History struct {
	mu     sync.Mutex
	items  []domain.Artwork
	cursor int

	maxLen int
	trimBy int
}

// NewHistory creates an empty history in live mode. Whenever an append
// would push the length past maxLen, the trimBy oldest entries are
// dropped in one batch (amortized trim, not a strict sliding window).
func NewHistory(maxLen, trimBy int) *History {
	return &History{
		cursor: liveCursor,
		maxLen: maxLen,
		trimBy: trimBy,
	}
}

// Len returns the number of recorded artworks.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Current returns the artwork under the cursor, or the newest artwork in
// live mode. ok is false when the history is empty. Pure read.
func (h *History) Current() (domain.Artwork, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return domain.Artwork{}, false
	}
	if h.cursor != liveCursor {
		return h.items[h.cursor], true
	}
	return h.items[len(h.items)-1], true
}

// StepForward advances the cursor within history. ok=true returns the
// replayed artwork with no network or queue access. ok=false means the
// caller is in live mode (possibly just re-entered by stepping off the
// newest edge) and must obtain new material.
func (h *History) StepForward() (domain.Artwork, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == liveCursor {
		return domain.Artwork{}, false
	}
	if h.cursor+1 < len(h.items) {
		h.cursor++
		return h.items[h.cursor], true
	}
	// Ran off the newest edge: back to live mode.
	h.cursor = liveCursor
	return domain.Artwork{}, false
}

// StepBack moves the cursor one step toward the oldest entry.
func (h *History) StepBack() (domain.Artwork, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return domain.Artwork{}, domain.ErrEmptyHistory
	}

	switch {
	case h.cursor == 0:
		return domain.Artwork{}, domain.ErrAtHistoryStart
	case h.cursor > 0:
		h.cursor--
		return h.items[h.cursor], nil
	default: // live mode: step back from the current (newest) item
		if len(h.items) < 2 {
			return domain.Artwork{}, domain.ErrNoPreviousArtwork
		}
		h.cursor = len(h.items) - 2
		return h.items[h.cursor], nil
	}
}

// Append records a newly served artwork, applying the amortized trim.
// The cursor is shifted with the trimmed entries so it stays in bounds
// if a browse is in progress.
func (h *History) Append(art domain.Artwork) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, art)
	if len(h.items) > h.maxLen {
		h.items = h.items[h.trimBy:]
		if h.cursor != liveCursor {
			h.cursor -= h.trimBy
			if h.cursor < 0 {
				h.cursor = 0
			}
		}
	}
}
