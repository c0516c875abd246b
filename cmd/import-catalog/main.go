// import-catalog loads a scraped course feed (JSON array or CSV) into the
// course_rows table, replacing the configured term's rows atomically.
//
// Usage:
//
//	import-catalog -input courses.json
package main

import (
	"context"
	"flag"
	"strings"

	"github.com/haneulsoft/timetable-backend/internal/catalog"
	"github.com/haneulsoft/timetable-backend/internal/config"
	"github.com/haneulsoft/timetable-backend/internal/database"
	"github.com/haneulsoft/timetable-backend/internal/logger"
	"github.com/haneulsoft/timetable-backend/internal/model"
	"github.com/haneulsoft/timetable-backend/internal/repository"
)

func main() {
	var input string
	flag.StringVar(&input, "input", "courses.json", "Path to the course feed (JSON or CSV)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	rows, err := catalog.NewFileSource(input).FetchRows(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("input", input).Msg("Failed to read course feed")
	}

	// Only the configured term is imported; the feed may span several.
	termRows := make([]model.RawCourseRow, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Year.String()) == cfg.CatalogYear &&
			strings.TrimSpace(row.TermCode.String()) == cfg.CatalogTermCode {
			termRows = append(termRows, row)
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	repo := repository.NewCourseRowRepository(pool, cfg.CatalogYear, cfg.CatalogTermCode)
	inserted, err := repo.ReplaceTerm(ctx, termRows)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	log.Info().
		Int("feed_rows", len(rows)).
		Int64("imported", inserted).
		Str("year", cfg.CatalogYear).
		Str("term", cfg.CatalogTermCode).
		Msg("Catalog imported")
}
