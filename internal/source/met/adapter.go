// Package met integrates the Metropolitan Museum of Art open-access API.
// It is an object-detail style source: a keyword search returns bare
// object IDs which are detail-fetched individually.
package met

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
	"github.com/timmy/artglass/internal/logger"
	"github.com/timmy/artglass/internal/source"
)

const (
	SourceID   = "met"
	SourceName = "The Metropolitan Museum of Art"

	defaultSearchURL = "https://collectionapi.metmuseum.org/public/collection/v1/search"
	defaultObjectURL = "https://collectionapi.metmuseum.org/public/collection/v1/objects/%d"
)

var searchTerms = []string{
	"painting", "landscape", "portrait", "still life", "sculpture",
	"impressionism", "renaissance", "abstract", "nature", "mythology",
}

type searchResult struct {
	ObjectIDs []int64 `json:"objectIDs"`
}

type object struct {
	ObjectID     int64  `json:"objectID"`
	Title        string `json:"title"`
	ArtistName   string `json:"artistDisplayName"`
	ObjectDate   string `json:"objectDate"`
	Medium       string `json:"medium"`
	PrimaryImage string `json:"primaryImage"`
}

// Adapter implements the Source interface for the Met collection API.
type Adapter struct {
	client     *resty.Client
	downloader *imaging.Downloader
	rng        source.Rand

	searchURL string
	objectURL string
}

// NewAdapter creates a Met adapter on the shared client.
func NewAdapter(client *resty.Client, downloader *imaging.Downloader, rng source.Rand) *Adapter {
	return &Adapter{
		client:     client,
		downloader: downloader,
		rng:        rng,
		searchURL:  defaultSearchURL,
		objectURL:  defaultObjectURL,
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

// Fetch retrieves one normalized artwork from the Met.
func (a *Adapter) Fetch(ctx context.Context) (domain.Artwork, error) {
	term := source.PickTerm(a.rng, searchTerms)

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"hasImages": "true",
			"q":         term,
		}).
		Get(a.searchURL)
	if err != nil {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNetwork, "search failed", err)
	}
	if resp.IsError() {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNetwork,
			fmt.Sprintf("search returned HTTP %d", resp.StatusCode()), nil)
	}

	var result searchResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrParse, "search parse failed", err)
	}
	if len(result.ObjectIDs) == 0 {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoResults,
			fmt.Sprintf("no results for %q", term), nil)
	}

	// Sample random object IDs until one carries a usable image.
	art, ok := source.FirstValid(source.MaxCandidateAttempts, func(int) (domain.Artwork, bool) {
		id := result.ObjectIDs[a.rng.Intn(len(result.ObjectIDs))]
		return a.tryObject(ctx, id)
	})
	if !ok {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoValidImage,
			"no object with a valid image", nil)
	}
	return art, nil
}

// tryObject detail-fetches one object and downloads its primary image.
func (a *Adapter) tryObject(ctx context.Context, id int64) (domain.Artwork, bool) {
	resp, err := a.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf(a.objectURL, id))
	if err != nil || resp.IsError() {
		return domain.Artwork{}, false
	}

	var obj object
	if err := json.Unmarshal(resp.Body(), &obj); err != nil {
		return domain.Artwork{}, false
	}
	if obj.PrimaryImage == "" {
		return domain.Artwork{}, false
	}

	img, ok := a.downloader.Download(ctx, obj.PrimaryImage, nil)
	if !ok {
		return domain.Artwork{}, false
	}

	logger.CtxDebug(ctx, "Met object %d accepted", obj.ObjectID)

	return domain.Artwork{
		ID:     fmt.Sprintf("met-%d", obj.ObjectID),
		Title:  source.StripTags(source.NonEmpty(obj.Title, domain.UntitledTitle)),
		Artist: source.NonEmpty(obj.ArtistName, domain.UnknownArtist),
		Date:   obj.ObjectDate,
		Medium: obj.Medium,
		Source: SourceName,
		Image:  img.DataURI(),
	}, true
}
