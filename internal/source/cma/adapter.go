// Package cma integrates the Cleveland Museum of Art open-access API.
// Search-result style: the web image URL is embedded in each record.
// Queries are restricted to CC0-licensed paintings with images.
package cma

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
	"github.com/timmy/artglass/internal/source"
)

const (
	SourceID   = "cma"
	SourceName = "Cleveland Museum of Art"

	defaultSearchURL = "https://openaccess-api.clevelandart.org/api/artworks/"

	maxSkip = 100
)

var searchTerms = []string{
	"painting", "landscape", "portrait", "impressionist", "modern",
	"still life", "abstract", "nature", "classical", "oil",
}

type searchResponse struct {
	Data []artwork `json:"data"`
}

type artwork struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Creators     []creator `json:"creators"`
	CreationDate string    `json:"creation_date"`
	Technique    string    `json:"technique"`
	Images       struct {
		Web struct {
			URL string `json:"url"`
		} `json:"web"`
	} `json:"images"`
}

type creator struct {
	Description string `json:"description"`
}

// Adapter implements the Source interface for the CMA API.
type Adapter struct {
	client     *resty.Client
	downloader *imaging.Downloader
	rng        source.Rand

	searchURL string
}

// NewAdapter creates a CMA adapter on the shared client.
func NewAdapter(client *resty.Client, downloader *imaging.Downloader, rng source.Rand) *Adapter {
	return &Adapter{
		client:     client,
		downloader: downloader,
		rng:        rng,
		searchURL:  defaultSearchURL,
	}
}

// GetSourceID returns the stable short identifier for this source.
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	return SourceName
}

// Fetch retrieves one normalized artwork from the CMA.
func (a *Adapter) Fetch(ctx context.Context) (domain.Artwork, error) {
	term := source.PickTerm(a.rng, searchTerms)
	skip := a.rng.Intn(maxSkip)

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":         term,
			"has_image": "1",
			"cc0":       "1",
			"type":      "Painting",
			"limit":     "20",
			"skip":      strconv.Itoa(skip),
		}).
		Get(a.searchURL)
	if err != nil {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNetwork, "search failed", err)
	}
	if resp.IsError() {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNetwork,
			fmt.Sprintf("search returned HTTP %d", resp.StatusCode()), nil)
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrParse, "search parse failed", err)
	}

	candidates := make([]artwork, 0, len(result.Data))
	for _, rec := range result.Data {
		if rec.Images.Web.URL != "" {
			candidates = append(candidates, rec)
		}
	}
	if len(candidates) == 0 {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoResults,
			fmt.Sprintf("no artworks with images for %q", term), nil)
	}

	a.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	attempts := source.MaxCandidateAttempts
	if len(candidates) < attempts {
		attempts = len(candidates)
	}

	art, ok := source.FirstValid(attempts, func(i int) (domain.Artwork, bool) {
		return a.tryArtwork(ctx, candidates[i])
	})
	if !ok {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoValidImage,
			"no artwork with a valid image", nil)
	}
	return art, nil
}

func (a *Adapter) tryArtwork(ctx context.Context, rec artwork) (domain.Artwork, bool) {
	img, ok := a.downloader.Download(ctx, rec.Images.Web.URL, nil)
	if !ok {
		return domain.Artwork{}, false
	}

	artist := domain.UnknownArtist
	if len(rec.Creators) > 0 {
		artist = source.NonEmpty(rec.Creators[0].Description, domain.UnknownArtist)
	}

	return domain.Artwork{
		ID:     fmt.Sprintf("cma-%d", rec.ID),
		Title:  source.StripTags(source.NonEmpty(rec.Title, domain.UntitledTitle)),
		Artist: artist,
		Date:   rec.CreationDate,
		Medium: rec.Technique,
		Source: SourceName,
		Image:  img.DataURI(),
	}, true
}
