package nga

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
)

type stubRand struct{ n int }

func (r stubRand) Intn(n int) int                   { return r.n % n }
func (stubRand) Shuffle(n int, swap func(i, j int)) {}

var fixtureCatalog = []CatalogEntry{
	{
		UUID:   "aaaa-1111",
		Title:  "The Japanese Footbridge",
		Artist: "Claude Monet",
		Date:   "1899",
		Medium: "oil on canvas",
	},
	{
		UUID: "bbbb-2222",
	},
}

func newTestAdapter(srvURL string, rng stubRand) *Adapter {
	client := resty.New()
	a := NewAdapter(fixtureCatalog, imaging.NewDownloader(client), rng)
	a.iiifTemplate = srvURL + "/iiif/%s/full/!843,843/0/default.jpg"
	return a
}

func TestLoadCatalog(t *testing.T) {
	entries, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for i, e := range entries {
		if e.UUID == "" {
			t.Errorf("entry %d has no uuid", i)
		}
		if e.Title == "" {
			t.Errorf("entry %d has no title", i)
		}
	}
}

func TestFetchHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/iiif/aaaa-1111/full/!843,843/") {
			t.Errorf("unexpected image path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(bytes.Repeat([]byte{0x44}, 2500))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, stubRand{n: 0})
	art, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if art.ID != "nga-aaaa-1111" {
		t.Errorf("ID = %q, want nga-aaaa-1111", art.ID)
	}
	if art.Artist != "Claude Monet" {
		t.Errorf("Artist = %q", art.Artist)
	}
	if art.Source != SourceName {
		t.Errorf("Source = %q, want %q", art.Source, SourceName)
	}
	if !strings.HasPrefix(art.Image, "data:image/jpeg;base64,") {
		t.Errorf("Image is not a jpeg data URI: %.40s", art.Image)
	}
}

func TestFetchDefaultsBlankEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(bytes.Repeat([]byte{0x44}, 1500))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, stubRand{n: 1})
	art, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if art.Title != domain.UntitledTitle {
		t.Errorf("Title = %q, want %q", art.Title, domain.UntitledTitle)
	}
	if art.Artist != domain.UnknownArtist {
		t.Errorf("Artist = %q, want %q", art.Artist, domain.UnknownArtist)
	}
}

func TestFetchEmptyCatalog(t *testing.T) {
	a := NewAdapter(nil, imaging.NewDownloader(resty.New()), stubRand{})
	_, err := a.Fetch(context.Background())
	if !domain.IsFetchErrorKind(err, domain.FetchErrNoResults) {
		t.Fatalf("error = %v, want no_results", err)
	}
}

func TestFetchRetriesThenFails(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL, stubRand{n: 0})
	_, err := a.Fetch(context.Background())
	if !domain.IsFetchErrorKind(err, domain.FetchErrNoValidImage) {
		t.Fatalf("error = %v, want no_valid_image", err)
	}
	if calls != 5 {
		t.Errorf("got %d image attempts, want 5", calls)
	}
}
