package source

import "github.com/timmy/artglass/internal/domain"

// MaxCandidateAttempts bounds how many candidate records an adapter tries
// before giving up on the current search result set.
const MaxCandidateAttempts = 5

// FirstValid tries up to attempts candidates in order, stopping at the
// first validated success. The try callback returns ok=false for a soft
// failure (bad record, invalid image), which moves on to the next
// candidate.
func FirstValid(attempts int, try func(attempt int) (domain.Artwork, bool)) (domain.Artwork, bool) {
	for i := 0; i < attempts; i++ {
		if art, ok := try(i); ok {
			return art, true
		}
	}
	return domain.Artwork{}, false
}
