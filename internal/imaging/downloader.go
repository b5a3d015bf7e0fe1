// Package imaging retrieves and validates the binary image for an
// artwork candidate and re-encodes it as a self-describing data URI.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/logger"
	_ "golang.org/x/image/webp"
)

// MinImageBytes is the smallest body accepted as a real image. Museum
// APIs occasionally serve tiny placeholder or error bodies with an
// image content type.
const MinImageBytes = 1000

// Image is a validated downloaded image. Width and Height are zero when
// the header could not be decoded; they are diagnostic only.
type Image struct {
	Bytes  []byte
	MIME   string
	Width  int
	Height int
}

// DataURI encodes the image as a data URI with its MIME type and a
// base64 payload.
func (i *Image) DataURI() string {
	b64 := base64.StdEncoding.EncodeToString(i.Bytes)
	return fmt.Sprintf("data:%s;base64,%s", i.MIME, b64)
}

// Downloader fetches candidate image URLs over the shared HTTP client.
type Downloader struct {
	client *resty.Client
}

// NewDownloader creates a downloader on top of the shared client.
func NewDownloader(client *resty.Client) *Downloader {
	return &Downloader{client: client}
}

// Download retrieves and validates the image at rawURL. Extra headers
// (e.g. a per-source Referer) are applied on top of the client defaults.
//
// A false result is a soft failure: the caller is expected to move on to
// its next candidate. All of these fail validation: transport errors,
// non-2xx status, a content type outside image/*, and bodies under
// MinImageBytes.
func (d *Downloader) Download(ctx context.Context, rawURL string, header http.Header) (*Image, bool) {
	req := d.client.R().SetContext(ctx)
	for k, vals := range header {
		for _, v := range vals {
			req.SetHeader(k, v)
		}
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		logger.CtxWarn(ctx, "Image request failed: %v (%s)", err, rawURL)
		return nil, false
	}
	if resp.IsError() {
		logger.CtxWarn(ctx, "Image HTTP %d: %s", resp.StatusCode(), rawURL)
		return nil, false
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		logger.CtxWarn(ctx, "Not an image (%s): %s", contentType, rawURL)
		return nil, false
	}

	body := resp.Body()
	if len(body) < MinImageBytes {
		logger.CtxWarn(ctx, "Image too small (%d bytes): %s", len(body), rawURL)
		return nil, false
	}

	img := &Image{
		Bytes: body,
		MIME:  normalizeMIME(contentType),
	}

	// Best effort; unsupported formats just skip the dimensions.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(body)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
		logger.With(logger.Fields{
			logger.FieldSize: len(body),
			"width":          cfg.Width,
			"height":         cfg.Height,
		}).Debug(ctx, "Downloaded image: %s", rawURL)
	}

	return img, true
}

// normalizeMIME strips any parameter suffix (charset etc.) from a
// content-type header value.
func normalizeMIME(contentType string) string {
	mime := contentType
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = mime[:idx]
	}
	mime = strings.TrimSpace(mime)
	if mime == "" {
		return "image/jpeg"
	}
	return mime
}
