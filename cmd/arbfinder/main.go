package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/briahnloo/arbitrage-finder/internal/cache"
	"github.com/briahnloo/arbitrage-finder/internal/config"
	"github.com/briahnloo/arbitrage-finder/internal/engine"
	"github.com/briahnloo/arbitrage-finder/internal/kafka"
	"github.com/briahnloo/arbitrage-finder/internal/logging"
	"github.com/briahnloo/arbitrage-finder/internal/notify"
	"github.com/briahnloo/arbitrage-finder/internal/oddsapi"
	"github.com/briahnloo/arbitrage-finder/internal/queue"
	sqlstore "github.com/briahnloo/arbitrage-finder/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logging.InitFromEnv()

	cfg := config.FromEnv()
	if cfg.APIKey == "" {
		logging.Fatalf("[arbfinder] ODDS_API_KEY is required")
	}

	client := oddsapi.NewClient(oddsapi.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Regions: cfg.Regions,
		Markets: cfg.Markets,
	})

	seen := newSeenCache(cfg)
	defer seen.Close()

	store := newStore(ctx)
	if store != nil {
		defer store.Close()
	}

	writer := newKafkaWriter(ctx)
	if writer != nil {
		defer writer.Close()
	}

	notifier := newNotifier()

	emit := func(ctx context.Context, c *engine.Candidate) {
		delivered := notifier.Alert(ctx, c)
		if store != nil {
			for _, channel := range delivered {
				if err := store.LogAlert(ctx, c.Fingerprint(), channel); err != nil {
					logging.Errorf("[arbfinder] log alert: %v", err)
				}
			}
		}
		if writer != nil {
			if err := queue.PublishOpportunity(ctx, writer, c); err != nil {
				logging.Errorf("[arbfinder] publish: %v", err)
			}
		}
	}

	opts := []engine.Option{engine.WithEmit(emit)}
	if store != nil {
		opts = append(opts, engine.WithStore(store))
	}
	eng := engine.New(&cfg, client, seen, opts...)

	logging.Infof("[arbfinder] watching %d sports, stake %s, top %d per cycle", len(cfg.Sports), cfg.TotalStake, cfg.TopCount)
	run(ctx, eng, cfg)
}

func run(ctx context.Context, eng *engine.Engine, cfg config.Config) {
	for {
		runCycleSafe(ctx, eng)

		interval := cfg.CheckInterval(time.Now())
		logging.Debugf("[arbfinder] next cycle in %s", interval)
		select {
		case <-ctx.Done():
			logging.Infof("[arbfinder] shutting down")
			return
		case <-time.After(interval):
		}
	}
}

// runCycleSafe keeps one panicking cycle from killing the long-running
// process; the next tick gets a fresh start.
func runCycleSafe(ctx context.Context, eng *engine.Engine) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("[arbfinder] cycle panic: %v", r)
		}
	}()

	stats, err := eng.RunCycle(ctx)
	if err != nil {
		logging.Errorf("[arbfinder] cycle: %v", err)
		return
	}
	logging.Infof("[arbfinder] cycle done: %d sports, %d events, %d candidates, %d emitted, %d errors",
		stats.Sports, stats.Events, stats.Candidates, stats.Emitted, stats.Errors)
}

func newSeenCache(cfg config.Config) cache.SeenCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logging.Infof("[arbfinder] REDIS_ADDR unset, using in-memory dedup cache")
		return cache.NewMemorySeenCache(cfg.DedupTTL, time.Now)
	}
	seen, err := cache.NewRedisSeenCache(
		addr,
		os.Getenv("REDIS_PASSWORD"),
		config.EnvInt("REDIS_DB", 0),
		cfg.DedupTTL,
		config.EnvString("REDIS_PREFIX", "arb_seen"),
	)
	if err != nil {
		logging.Errorf("[arbfinder] redis unavailable, falling back to memory: %v", err)
		return cache.NewMemorySeenCache(cfg.DedupTTL, time.Now)
	}
	logging.Infof("[arbfinder] dedup cache on redis %s", addr)
	return seen
}

func newStore(ctx context.Context) *sqlstore.Store {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		return nil
	}
	store, err := sqlstore.Open(path)
	if err != nil {
		logging.Fatalf("[arbfinder] open sqlite: %v", err)
	}
	if err := store.CreateTables(ctx); err != nil {
		logging.Fatalf("[arbfinder] create tables: %v", err)
	}
	return store
}

func newKafkaWriter(ctx context.Context) *kafkago.Writer {
	if config.EnvString("KAFKA_ENABLED", "false") != "true" {
		return nil
	}
	brokers := kafka.Brokers()
	topic := kafka.TopicFromEnv("ARB_KAFKA_TOPIC", kafka.DefaultOpportunityTopic)

	waitCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()
	if err := kafka.WaitForBroker(waitCtx, brokers); err != nil {
		logging.Errorf("[arbfinder] kafka unavailable, publishing disabled: %v", err)
		return nil
	}
	ensureCtx, cancelEnsure := context.WithTimeout(ctx, 30*time.Second)
	defer cancelEnsure()
	if err := kafka.EnsureTopic(ensureCtx, brokers, topic); err != nil {
		logging.Errorf("[arbfinder] ensure topic warning: %v", err)
	}
	logging.Infof("[arbfinder] publishing opportunities to %s", topic)
	return kafka.NewWriter(brokers, topic)
}

func newNotifier() *notify.Notifier {
	senders := []notify.Sender{notify.ConsoleSender{}}
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		senders = append(senders, notify.NewDiscordSender(url))
		logging.Infof("[arbfinder] discord alerts enabled")
	}
	return notify.New(senders...)
}
