package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/travelviet/places-admin/pkg/adapters/repository/sqlite"
	"github.com/travelviet/places-admin/pkg/config"
	"github.com/travelviet/places-admin/pkg/core/domain"
)

// Dump carries both collections for a full export/import round trip.
type Dump struct {
	Places []domain.Place `json:"places"`
	Labels []domain.Label `json:"labels"`
}

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")

	if len(os.Args) < 2 {
		fmt.Println("expected 'export' or 'import' subcommands")
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		runExport(ctx, repo)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			log.Fatal("import requires -file")
		}
		runImport(ctx, repo, *importFile)
	default:
		fmt.Println("expected 'export' or 'import' subcommands")
		os.Exit(1)
	}
}

func runExport(ctx context.Context, repo *sqlite.SQLiteRepository) {
	places, err := repo.DumpPlaces(ctx)
	if err != nil {
		log.Fatalf("Failed to dump places: %v", err)
	}
	labels, err := repo.DumpLabels(ctx)
	if err != nil {
		log.Fatalf("Failed to dump labels: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Dump{Places: places, Labels: labels}); err != nil {
		log.Fatalf("Failed to encode dump: %v", err)
	}
}

func runImport(ctx context.Context, repo *sqlite.SQLiteRepository, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		log.Fatalf("Failed to parse dump: %v", err)
	}

	for i := range dump.Labels {
		if err := repo.CreateLabel(ctx, &dump.Labels[i]); err != nil {
			log.Fatalf("Failed to import label %q: %v", dump.Labels[i].LabelName, err)
		}
	}
	for i := range dump.Places {
		if err := repo.CreatePlace(ctx, &dump.Places[i]); err != nil {
			log.Fatalf("Failed to import place %q: %v", dump.Places[i].PlaceName, err)
		}
	}

	log.Printf("Imported %d labels and %d places", len(dump.Labels), len(dump.Places))
}
