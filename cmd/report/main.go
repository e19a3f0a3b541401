package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/briahnloo/arbitrage-finder/internal/logging"
	sqlstore "github.com/briahnloo/arbitrage-finder/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	var (
		window = flag.Duration("window", 24*time.Hour, "report on opportunities found within this window")
		recent = flag.Int("recent", 10, "number of recent opportunities to list")
	)
	flag.Parse()

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		logging.Fatalf("[report] open sqlite: %v", err)
	}
	defer store.Close()

	since := time.Now().Add(-*window)
	sum, err := store.Summarize(ctx, since)
	if err != nil {
		logging.Fatalf("[report] summarize: %v", err)
	}

	fmt.Printf("Opportunities since %s: %d\n", since.Format(time.RFC822), sum.Total)
	if sum.Total > 0 {
		fmt.Printf("  avg margin %.2f%%, best margin %.2f%%, combined guaranteed profit %s\n",
			sum.AvgMargin, sum.BestMargin, sum.TotalProfit)
		sports := make([]string, 0, len(sum.BySport))
		for sport := range sum.BySport {
			sports = append(sports, sport)
		}
		sort.Strings(sports)
		for _, sport := range sports {
			fmt.Printf("  %-24s %d\n", sport, sum.BySport[sport])
		}
	}

	rows, err := store.Recent(ctx, *recent)
	if err != nil {
		logging.Fatalf("[report] recent: %v", err)
	}
	if len(rows) == 0 {
		return
	}
	fmt.Printf("\nMost recent:\n")
	for _, r := range rows {
		fmt.Printf("  %s  %-24s %-8s %5.2f%%  %-8s %s\n",
			r.FoundAt.Format("01-02 15:04"), r.EventName, r.Market, r.Margin, r.Confidence, r.Profit)
	}
}
