package met

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
)

type stubRand struct{}

func (stubRand) Intn(n int) int                     { return 0 }
func (stubRand) Shuffle(n int, swap func(i, j int)) {}

func newTestAdapter(searchURL, objectURL string) *Adapter {
	client := resty.New()
	a := NewAdapter(client, imaging.NewDownloader(client), stubRand{})
	a.searchURL = searchURL
	a.objectURL = objectURL
	return a
}

func TestFetchHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("hasImages") != "true" {
			t.Errorf("missing hasImages=true, got query %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("q") == "" {
			t.Error("missing search term")
		}
		fmt.Fprint(w, `{"objectIDs":[42]}`)
	})
	mux.HandleFunc("/objects/42", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"objectID": 42,
			"title": "<i>The Harvesters</i>",
			"artistDisplayName": "Pieter Bruegel the Elder",
			"objectDate": "1565",
			"medium": "Oil on wood",
			"primaryImage": %q
		}`, srv.URL+"/image.jpg")
	})
	mux.HandleFunc("/image.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(bytes.Repeat([]byte{0x7F}, 2000))
	})

	a := newTestAdapter(srv.URL+"/search", srv.URL+"/objects/%d")
	art, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if art.ID != "met-42" {
		t.Errorf("ID = %q, want met-42", art.ID)
	}
	if art.Title != "The Harvesters" {
		t.Errorf("Title = %q, want tags stripped", art.Title)
	}
	if art.Artist != "Pieter Bruegel the Elder" {
		t.Errorf("Artist = %q", art.Artist)
	}
	if art.Source != SourceName {
		t.Errorf("Source = %q, want %q", art.Source, SourceName)
	}
	if !strings.HasPrefix(art.Image, "data:image/jpeg;base64,") {
		t.Errorf("Image is not a jpeg data URI: %.40s", art.Image)
	}
}

func TestFetchDefaultsMissingMetadata(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"objectIDs":[7]}`)
	})
	mux.HandleFunc("/objects/7", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"objectID": 7, "primaryImage": %q}`, srv.URL+"/img")
	})
	mux.HandleFunc("/img", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(bytes.Repeat([]byte{0x03}, 1200))
	})

	a := newTestAdapter(srv.URL+"/search", srv.URL+"/objects/%d")
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
	if art.Date != "" || art.Medium != "" {
		t.Errorf("Date/Medium should default to empty, got %q / %q", art.Date, art.Medium)
	}
}

func TestFetchErrorKinds(t *testing.T) {
	testCases := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind domain.FetchErrorKind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantKind: domain.FetchErrNetwork,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"objectIDs": not-json`)
			},
			wantKind: domain.FetchErrParse,
		},
		{
			name: "empty result set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"objectIDs":[]}`)
			},
			wantKind: domain.FetchErrNoResults,
		},
		{
			name: "null result set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"objectIDs":null}`)
			},
			wantKind: domain.FetchErrNoResults,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			a := newTestAdapter(srv.URL, srv.URL+"/objects/%d")
			_, err := a.Fetch(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !domain.IsFetchErrorKind(err, tc.wantKind) {
				t.Errorf("error kind mismatch: %v, want %s", err, tc.wantKind)
			}
		})
	}
}

func TestFetchNoValidImageAfterRetries(t *testing.T) {
	objectCalls := 0
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"objectIDs":[1,2,3]}`)
	})
	mux.HandleFunc("/objects/", func(w http.ResponseWriter, r *http.Request) {
		objectCalls++
		fmt.Fprint(w, `{"objectID": 1, "primaryImage": ""}`)
	})

	a := newTestAdapter(srv.URL+"/search", srv.URL+"/objects/%d")
	_, err := a.Fetch(context.Background())
	if !domain.IsFetchErrorKind(err, domain.FetchErrNoValidImage) {
		t.Fatalf("error = %v, want no_valid_image", err)
	}
	if objectCalls != 5 {
		t.Errorf("got %d candidate attempts, want 5", objectCalls)
	}

	var fe *domain.FetchError
	if !errors.As(err, &fe) || fe.Source != SourceID {
		t.Errorf("error should carry the source id: %v", err)
	}
}
