// Command fetch runs the fetch cascade once and prints the resulting
// artwork metadata. Useful for checking museum API health without
// starting the daemon.
//
// Usage:
//
//	fetch [-config path] [-source met|aic|cma|nga] [-o image-file]
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/timmy/artglass/internal/config"
	"github.com/timmy/artglass/internal/domain"
	"github.com/timmy/artglass/internal/imaging"
	"github.com/timmy/artglass/internal/logger"
	"github.com/timmy/artglass/internal/service"
	"github.com/timmy/artglass/internal/source"
	"github.com/timmy/artglass/internal/source/aic"
	"github.com/timmy/artglass/internal/source/cma"
	"github.com/timmy/artglass/internal/source/met"
	"github.com/timmy/artglass/internal/source/nga"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "config file path")
	sourceID := flag.String("source", "", "fetch from one source only (met, aic, cma, nga)")
	outFile := flag.String("o", "", "write the image payload to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(&logger.Config{Level: "warn", Format: "text"})
	logger.SetDefaultLogger(appLog)

	client := source.NewHTTPClient(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	downloader := imaging.NewDownloader(client)
	rng := source.DefaultRand()

	catalog, err := nga.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load NGA catalog: %v", err)
	}

	sources := []source.Source{
		met.NewAdapter(client, downloader, rng),
		aic.NewAdapter(client, downloader, rng, cfg.HTTP.UserAgent),
		cma.NewAdapter(client, downloader, rng),
		nga.NewAdapter(catalog, downloader, rng),
	}

	ctx := context.Background()

	var art domain.Artwork
	if *sourceID != "" {
		src := findSource(sources, *sourceID)
		if src == nil {
			log.Fatalf("Unknown source: %s", *sourceID)
		}
		art, err = src.Fetch(ctx)
	} else {
		orchestrator := service.NewOrchestrator(sources, rng, appLog)
		art, err = orchestrator.FetchRandomArtwork(ctx)
	}
	if err != nil {
		log.Fatalf("Fetch failed: %v", err)
	}

	fmt.Printf("ID:     %s\n", art.ID)
	fmt.Printf("Title:  %s\n", art.Title)
	fmt.Printf("Artist: %s\n", art.Artist)
	fmt.Printf("Date:   %s\n", art.Date)
	fmt.Printf("Medium: %s\n", art.Medium)
	fmt.Printf("Source: %s\n", art.Source)
	fmt.Printf("Image:  %d bytes (data URI)\n", len(art.Image))

	if *outFile != "" {
		if err := writeImage(art.Image, *outFile); err != nil {
			log.Fatalf("Failed to write image: %v", err)
		}
		fmt.Printf("Wrote image to %s\n", *outFile)
	}
}

func findSource(sources []source.Source, id string) source.Source {
	for _, s := range sources {
		if s.GetSourceID() == id {
			return s
		}
	}
	return nil
}

// writeImage decodes the base64 payload of a data URI to a file.
func writeImage(dataURI, path string) error {
	idx := strings.Index(dataURI, ";base64,")
	if idx == -1 {
		return fmt.Errorf("unexpected image encoding")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+len(";base64,"):])
	if err != nil {
		return fmt.Errorf("failed to decode image payload: %w", err)
	}
	return os.WriteFile(path, raw, 0644)
}
