package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/briahnloo/arbitrage-finder/internal/logging"
	sqlstore "github.com/briahnloo/arbitrage-finder/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	var (
		drop  = flag.Bool("drop", false, "drop all tables before recreating")
		clear = flag.Bool("clear", false, "delete all rows, keep schema")
	)
	flag.Parse()

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		logging.Fatalf("[migrate] open sqlite: %v", err)
	}
	defer store.Close()

	if *drop {
		if err := store.DropTables(ctx); err != nil {
			logging.Fatalf("[migrate] drop tables: %v", err)
		}
		logging.Infof("[migrate] dropped tables")
	}
	if err := store.CreateTables(ctx); err != nil {
		logging.Fatalf("[migrate] create tables: %v", err)
	}
	if *clear {
		if err := store.ClearTables(ctx); err != nil {
			logging.Fatalf("[migrate] clear tables: %v", err)
		}
		logging.Infof("[migrate] cleared tables")
	}
	logging.Infof("[migrate] schema ready at %s", store.Path())
}
