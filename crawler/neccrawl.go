package crawler

import (
	"context"
	"log/slog"
	"time"

	"github.com/polwatch/nec-crawler/config"
	"github.com/polwatch/nec-crawler/models"
	"github.com/polwatch/nec-crawler/output"
)

// SourceLabel identifies the NEC listing in persisted snapshots.
const SourceLabel = "nec"

// CrawlNEC constructs an engine with merged defaults and runs one crawl.
// Construction failures surface as a failed result, never a panic or an
// escaping error.
func CrawlNEC(ctx context.Context, cfg *config.Config, opts ...Option) *models.CrawlResult {
	e, err := New(cfg, opts...)
	if err != nil {
		return &models.CrawlResult{
			Success: false,
			Data:    []*models.Politician{},
			Err:     models.NewCrawlError(models.ErrCodeInvalidData, "construct crawler", err),
		}
	}
	return e.Crawl(ctx)
}

// CrawlAndSaveNEC runs a crawl and, on success, persists the snapshot to
// path. Save failures are logged but leave the result untouched; the crawl
// itself already succeeded and persistence is best-effort. A failed crawl
// writes nothing.
func CrawlAndSaveNEC(ctx context.Context, path string, cfg *config.Config, opts ...Option) *models.CrawlResult {
	result := CrawlNEC(ctx, cfg, opts...)
	if !result.Success {
		return result
	}

	snap := &output.Snapshot{
		CrawledAt:   time.Now(),
		Source:      SourceLabel,
		Stats:       result.Stats,
		Politicians: result.Data,
	}
	if err := output.WriteSnapshot(path, snap); err != nil {
		slog.Error("snapshot save failed",
			slog.String("path", path),
			slog.Any("error", err),
		)
	}
	return result
}
