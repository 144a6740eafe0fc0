// Command seed loads a crawl snapshot into the politician database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/polwatch/nec-crawler/output"
	"github.com/polwatch/nec-crawler/store"
)

func main() {
	snapshotPath := flag.String("snapshot", "output/politicians.json", "Crawl snapshot to load")
	dbPath := flag.String("db", "output/politicians.db", "SQLite database path")
	flag.Parse()

	snap, err := output.ReadSnapshot(*snapshotPath)
	if err != nil {
		slog.Error("read snapshot", slog.Any("error", err))
		os.Exit(1)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		slog.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("close store", slog.Any("error", err))
		}
	}()

	ctx := context.Background()
	created, updated, failed := 0, 0, 0
	for _, p := range snap.Politicians {
		res, err := st.Upsert(ctx, p)
		if err != nil {
			failed++
			slog.Error("upsert failed",
				slog.String("name", p.Name),
				slog.String("party", p.Party),
				slog.Any("error", err),
			)
			continue
		}
		if res.IsNew {
			created++
		} else {
			updated++
		}
	}

	fmt.Printf("Seeded %d politicians from %s (crawled %s)\n",
		len(snap.Politicians), *snapshotPath, snap.CrawledAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Created: %d\n", created)
	fmt.Printf("  Updated: %d\n", updated)
	if failed > 0 {
		fmt.Printf("  Failed:  %d\n", failed)
		os.Exit(1)
	}
}
