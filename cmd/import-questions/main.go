package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/database"
	"github.com/kingsbal/kingsbal-backend/internal/importer"
	"github.com/kingsbal/kingsbal-backend/internal/logger"
	"github.com/olekukonko/tablewriter"
)

// import-questions loads the bundled question corpus into PostgreSQL.
// Re-running it is safe: already-imported questions are skipped.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.DatabaseURL == "" {
		color.Red("DATABASE_URL is not set; nothing to import into")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		color.Red("Failed to connect to PostgreSQL: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	snapshot := corpus.Load(log)
	color.Cyan("Loaded %d questions from the bundled corpus", snapshot.Count())

	im := importer.New(ctx, pool, log)
	report, err := im.ImportCorpus(ctx, snapshot.All())
	if err != nil {
		color.Red("Import failed: %v", err)
		os.Exit(1)
	}

	color.Yellow("\nImport Summary")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Outcome", "Count"})
	table.Append([]string{"Inserted", strconv.Itoa(report.Inserted)})
	table.Append([]string{"Skipped (duplicate)", strconv.Itoa(report.Skipped)})
	table.Append([]string{"Failed", strconv.Itoa(report.Failed)})
	table.Render()

	if report.Failed > 0 {
		color.Red("\n%d records failed; see the log above for details", report.Failed)
		os.Exit(1)
	}

	color.Green("\nImport complete")
	fmt.Println()
}
