// Package aic integrates the Art Institute of Chicago API. It is a
// search-result style source: matching records already carry an image
// token, turned into a IIIF tile URL.
package aic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
	"github.com/timmy/artglass/internal/source"
)

const (
	SourceID   = "aic"
	SourceName = "Art Institute of Chicago"

	defaultSearchURL = "https://api.artic.edu/api/v1/artworks/search"
	defaultIIIFURL   = "https://www.artic.edu/iiif/2"

	// The IIIF image server rejects requests without an artic.edu referer.
	refererHost  = "artic.edu"
	refererValue = "https://www.artic.edu/"

	maxPage = 5
)

var searchTerms = []string{
	"painting", "landscape", "impressionist", "modern", "watercolor",
	"oil", "portrait", "nature", "classical", "abstract",
}

type searchResponse struct {
	Data   []artwork `json:"data"`
	Config struct {
		IIIFURL string `json:"iiif_url"`
	} `json:"config"`
}

type artwork struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Artist  string `json:"artist_display"`
	Date    string `json:"date_display"`
	Medium  string `json:"medium_display"`
	ImageID string `json:"image_id"`
}

// Adapter implements the Source interface for the AIC API.
type Adapter struct {
	client     *resty.Client
	downloader *imaging.Downloader
	rng        source.Rand

	searchURL string
	userAgent string
}

// NewAdapter creates an AIC adapter on the shared client. The userAgent
// is additionally sent as the API's own AIC-User-Agent header.
func NewAdapter(client *resty.Client, downloader *imaging.Downloader, rng source.Rand, userAgent string) *Adapter {
	return &Adapter{
		client:     client,
		downloader: downloader,
		rng:        rng,
		searchURL:  defaultSearchURL,
		userAgent:  userAgent,
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

// Fetch retrieves one normalized artwork from the AIC.
func (a *Adapter) Fetch(ctx context.Context) (domain.Artwork, error) {
	term := source.PickTerm(a.rng, searchTerms)
	page := a.rng.Intn(maxPage) + 1

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("AIC-User-Agent", a.userAgent).
		SetQueryParams(map[string]string{
			"q":      term,
			"fields": "id,title,artist_display,date_display,medium_display,image_id",
			"limit":  "20",
			"page":   strconv.Itoa(page),
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

	iiifURL := result.Config.IIIFURL
	if iiifURL == "" {
		iiifURL = defaultIIIFURL
	}

	candidates := make([]artwork, 0, len(result.Data))
	for _, rec := range result.Data {
		if rec.ImageID != "" {
			candidates = append(candidates, rec)
		}
	}
	if len(candidates) == 0 {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoResults,
			fmt.Sprintf("no artworks with images for %q", term), nil)
	}

	// Shuffle so repeated calls on the same page diversify.
	a.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	attempts := source.MaxCandidateAttempts
	if len(candidates) < attempts {
		attempts = len(candidates)
	}

	art, ok := source.FirstValid(attempts, func(i int) (domain.Artwork, bool) {
		return a.tryArtwork(ctx, iiifURL, candidates[i])
	})
	if !ok {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoValidImage,
			"no artwork with a valid image", nil)
	}
	return art, nil
}

func (a *Adapter) tryArtwork(ctx context.Context, iiifURL string, rec artwork) (domain.Artwork, bool) {
	// 843px wide: fast download, plenty for an overlay.
	imageURL := fmt.Sprintf("%s/%s/full/843,/0/default.jpg", iiifURL, rec.ImageID)

	img, ok := a.downloader.Download(ctx, imageURL, refererHeader(imageURL))
	if !ok {
		return domain.Artwork{}, false
	}

	return domain.Artwork{
		ID:     fmt.Sprintf("aic-%d", rec.ID),
		Title:  source.StripTags(source.NonEmpty(rec.Title, domain.UntitledTitle)),
		Artist: source.NonEmpty(rec.Artist, domain.UnknownArtist),
		Date:   rec.Date,
		Medium: rec.Medium,
		Source: SourceName,
		Image:  img.DataURI(),
	}, true
}

// refererHeader returns the Referer header required by the artic.edu
// image host, and nil for any other host.
func refererHeader(imageURL string) http.Header {
	u, err := url.Parse(imageURL)
	if err != nil {
		return nil
	}
	if !strings.HasSuffix(u.Hostname(), refererHost) {
		return nil
	}
	return http.Header{"Referer": []string{refererValue}}
}
