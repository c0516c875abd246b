package worker

import (
	"context"
	"time"

	"github.com/haneulsoft/timetable-backend/internal/service"
	"github.com/rs/zerolog"
)

// RefreshWorker periodically rebuilds the catalog from its row source so
// enrollment counts track registration activity. A failed tick is logged
// and the previous catalog stays live; the worker never retries early.
type RefreshWorker struct {
	catalog  *service.CatalogService
	interval time.Duration
	log      zerolog.Logger
}

// NewRefreshWorker creates a RefreshWorker. An interval of zero disables it.
func NewRefreshWorker(catalog *service.CatalogService, interval time.Duration, log zerolog.Logger) *RefreshWorker {
	return &RefreshWorker{
		catalog:  catalog,
		interval: interval,
		log:      log.With().Str("component", "refresh_worker").Logger(),
	}
}

// Start begins the refresh loop. Call in a goroutine.
func (w *RefreshWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info().Msg("Catalog refresh disabled")
		return
	}

	w.log.Info().Dur("interval", w.interval).Msg("Worker started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			if err := w.catalog.Reload(ctx); err != nil {
				w.log.Error().Err(err).Msg("Catalog refresh failed")
			}
		}
	}
}
