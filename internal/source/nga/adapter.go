// Package nga integrates the National Gallery of Art. There is no remote
// search step: candidates come from a small embedded catalog of
// open-access works, and the image URL is built from the stored
// identifier via the gallery's IIIF tiling service.
package nga

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
	"github.com/timmy/artglass/internal/source"
)

const (
	SourceID   = "nga"
	SourceName = "National Gallery of Art"

	defaultIIIFTemplate = "https://api.nga.gov/iiif/%s/full/!843,843/0/default.jpg"
)

//go:embed catalog.json
var catalogJSON []byte

// CatalogEntry is one embedded open-access work.
type CatalogEntry struct {
	UUID   string `json:"uuid"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Date   string `json:"date"`
	Medium string `json:"medium"`
}

// LoadCatalog parses the embedded catalog. Called once at startup; the
// result is passed into NewAdapter so tests can substitute a fixture.
func LoadCatalog() ([]CatalogEntry, error) {
	var entries []CatalogEntry
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return entries, nil
}

// Adapter implements the Source interface over the static catalog.
type Adapter struct {
	catalog    []CatalogEntry
	downloader *imaging.Downloader
	rng        source.Rand

	iiifTemplate string
}

// NewAdapter creates an NGA adapter over an explicitly loaded catalog.
func NewAdapter(catalog []CatalogEntry, downloader *imaging.Downloader, rng source.Rand) *Adapter {
	return &Adapter{
		catalog:      catalog,
		downloader:   downloader,
		rng:          rng,
		iiifTemplate: defaultIIIFTemplate,
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

// Fetch retrieves one normalized artwork from the catalog, downloading
// its image through the shared validator.
func (a *Adapter) Fetch(ctx context.Context) (domain.Artwork, error) {
	if len(a.catalog) == 0 {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoResults, "catalog is empty", nil)
	}

	art, ok := source.FirstValid(source.MaxCandidateAttempts, func(int) (domain.Artwork, bool) {
		entry := a.catalog[a.rng.Intn(len(a.catalog))]
		return a.tryEntry(ctx, entry)
	})
	if !ok {
		return domain.Artwork{}, domain.NewFetchError(SourceID, domain.FetchErrNoValidImage,
			"no catalog entry with a valid image", nil)
	}
	return art, nil
}

func (a *Adapter) tryEntry(ctx context.Context, entry CatalogEntry) (domain.Artwork, bool) {
	imageURL := fmt.Sprintf(a.iiifTemplate, entry.UUID)

	img, ok := a.downloader.Download(ctx, imageURL, nil)
	if !ok {
		return domain.Artwork{}, false
	}

	return domain.Artwork{
		ID:     fmt.Sprintf("nga-%s", entry.UUID),
		Title:  source.NonEmpty(entry.Title, domain.UntitledTitle),
		Artist: source.NonEmpty(entry.Artist, domain.UnknownArtist),
		Date:   entry.Date,
		Medium: entry.Medium,
		Source: SourceName,
		Image:  img.DataURI(),
	}, true
}
