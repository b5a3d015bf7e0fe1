package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/timmy/artglass/internal/domain"
)

func art(id string) domain.Artwork {
	return domain.Artwork{ID: id, Title: "Work " + id}
}

// Walks a session that served A, B, C through a full back-and-forth
// browse: two steps back, a bounce off the oldest entry, two steps
// forward, and a step off the newest edge back into live mode.
func TestHistoryBrowseScenario(t *testing.T) {
	h := NewHistory(50, 25)
	for _, id := range []string{"A", "B", "C"} {
		h.Append(art(id))
	}

	if cur, ok := h.Current(); !ok || cur.ID != "C" {
		t.Fatalf("Current = %v %v, want C", cur.ID, ok)
	}

	back, err := h.StepBack()
	if err != nil || back.ID != "B" {
		t.Fatalf("first StepBack = %v %v, want B", back.ID, err)
	}
	back, err = h.StepBack()
	if err != nil || back.ID != "A" {
		t.Fatalf("second StepBack = %v %v, want A", back.ID, err)
	}
	if _, err = h.StepBack(); !errors.Is(err, domain.ErrAtHistoryStart) {
		t.Fatalf("StepBack at oldest = %v, want ErrAtHistoryStart", err)
	}
	if cur, _ := h.Current(); cur.ID != "A" {
		t.Fatalf("cursor moved by failed StepBack: at %v", cur.ID)
	}

	fwd, ok := h.StepForward()
	if !ok || fwd.ID != "B" {
		t.Fatalf("first StepForward = %v %v, want B", fwd.ID, ok)
	}
	fwd, ok = h.StepForward()
	if !ok || fwd.ID != "C" {
		t.Fatalf("second StepForward = %v %v, want C", fwd.ID, ok)
	}

	// Off the newest edge: live mode again, caller must fetch.
	if _, ok = h.StepForward(); ok {
		t.Fatal("StepForward past newest must report live mode")
	}
	if cur, _ := h.Current(); cur.ID != "C" {
		t.Fatalf("live Current = %v, want C", cur.ID)
	}
}

func TestHistoryEmptyAndSingle(t *testing.T) {
	h := NewHistory(50, 25)

	if _, ok := h.Current(); ok {
		t.Error("Current on empty history must report not-ok")
	}
	if _, err := h.StepBack(); !errors.Is(err, domain.ErrEmptyHistory) {
		t.Errorf("StepBack on empty = %v, want ErrEmptyHistory", err)
	}
	if _, ok := h.StepForward(); ok {
		t.Error("StepForward on empty history must report live mode")
	}

	h.Append(art("A"))
	if _, err := h.StepBack(); !errors.Is(err, domain.ErrNoPreviousArtwork) {
		t.Errorf("StepBack with one item = %v, want ErrNoPreviousArtwork", err)
	}
}

func TestHistoryAmortizedTrim(t *testing.T) {
	h := NewHistory(50, 25)
	for i := 0; i < 50; i++ {
		h.Append(art(fmt.Sprintf("%03d", i)))
	}
	if h.Len() != 50 {
		t.Fatalf("pre-trim Len = %d, want 50", h.Len())
	}

	// The 51st append triggers one batch drop of the 25 oldest.
	h.Append(art("050"))
	if h.Len() != 26 {
		t.Fatalf("post-trim Len = %d, want 26", h.Len())
	}
	if cur, _ := h.Current(); cur.ID != "050" {
		t.Errorf("newest after trim = %v, want 050", cur.ID)
	}

	// The oldest surviving entry is the 26th appended.
	for {
		if _, err := h.StepBack(); err != nil {
			break
		}
	}
	if cur, _ := h.Current(); cur.ID != "025" {
		t.Errorf("oldest after trim = %v, want 025", cur.ID)
	}
}

func TestHistoryTrimKeepsCursorInBounds(t *testing.T) {
	h := NewHistory(50, 25)
	for i := 0; i < 50; i++ {
		h.Append(art(fmt.Sprintf("%03d", i)))
	}

	// Browse deep into the region about to be trimmed.
	for i := 0; i < 45; i++ {
		if _, err := h.StepBack(); err != nil {
			t.Fatalf("StepBack %d failed: %v", i, err)
		}
	}
	if cur, _ := h.Current(); cur.ID != "004" {
		t.Fatalf("browsed to %v, want 004", cur.ID)
	}

	h.Append(art("050"))

	// The cursor's entry was trimmed away; it clamps to the oldest
	// survivor instead of dangling out of bounds.
	cur, ok := h.Current()
	if !ok {
		t.Fatal("Current must remain valid after trim")
	}
	if cur.ID != "025" {
		t.Errorf("clamped cursor at %v, want 025", cur.ID)
	}
	if _, err := h.StepBack(); !errors.Is(err, domain.ErrAtHistoryStart) {
		t.Errorf("StepBack at clamped cursor = %v, want ErrAtHistoryStart", err)
	}
}

func TestHistoryAppendWhileBrowsingKeepsCursor(t *testing.T) {
	h := NewHistory(50, 25)
	for _, id := range []string{"A", "B", "C"} {
		h.Append(art(id))
	}
	if _, err := h.StepBack(); err != nil {
		t.Fatal(err)
	}

	h.Append(art("D"))

	if cur, _ := h.Current(); cur.ID != "B" {
		t.Errorf("append below capacity moved the cursor: at %v, want B", cur.ID)
	}
}
