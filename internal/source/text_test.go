package source

import "testing"

func TestStripTags(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no markup",
			in:   "Wheat Field with Cypresses",
			want: "Wheat Field with Cypresses",
		},
		{
			name: "italic wrapper",
			in:   "<i>Madame X</i> (Madame Pierre Gautreau)",
			want: "Madame X (Madame Pierre Gautreau)",
		},
		{
			name: "multiple tags",
			in:   "<em>Study</em> for <em>The Gross Clinic</em>",
			want: "Study for The Gross Clinic",
		},
		{
			name: "unclosed tag swallows the rest",
			in:   "Untitled <broken",
			want: "Untitled ",
		},
		{
			name: "stray closing bracket kept",
			in:   "A > B",
			want: "A > B",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripTags(tc.in); got != tc.want {
				t.Errorf("StripTags(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNonEmpty(t *testing.T) {
	if got := NonEmpty("", "Untitled"); got != "Untitled" {
		t.Errorf("empty string should fall back, got %q", got)
	}
	if got := NonEmpty("   ", "Unknown Artist"); got != "Unknown Artist" {
		t.Errorf("whitespace should fall back, got %q", got)
	}
	if got := NonEmpty("Vermeer", "Unknown Artist"); got != "Vermeer" {
		t.Errorf("non-empty string should pass through, got %q", got)
	}
}

// fixedRand returns a scripted sequence of Intn results and performs no
// shuffling.
type fixedRand struct {
	vals []int
	pos  int
}

func (r *fixedRand) Intn(n int) int {
	if r.pos >= len(r.vals) {
		return 0
	}
	v := r.vals[r.pos] % n
	r.pos++
	return v
}

func (r *fixedRand) Shuffle(n int, swap func(i, j int)) {}

func TestPickTerm(t *testing.T) {
	terms := []string{"painting", "landscape", "portrait"}
	rng := &fixedRand{vals: []int{2, 0}}

	if got := PickTerm(rng, terms); got != "portrait" {
		t.Errorf("first pick = %q, want %q", got, "portrait")
	}
	if got := PickTerm(rng, terms); got != "painting" {
		t.Errorf("second pick = %q, want %q", got, "painting")
	}
}
