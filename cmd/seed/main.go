// Command seed loads synthetic shops into the store for local
// development and load testing. All shops land inside the Seoul
// metropolitan area so a search around city hall returns results.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/config"
	"github.com/kbeauty/beautyfinder/internal/db"
	dbPostgres "github.com/kbeauty/beautyfinder/internal/db/postgres"
	dbRedis "github.com/kbeauty/beautyfinder/internal/db/redis"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	logpkg "github.com/kbeauty/beautyfinder/internal/logger"
	shoprepo "github.com/kbeauty/beautyfinder/internal/repository/shop"
)

// Seoul bounding box.
const (
	minLat = 37.4
	maxLat = 37.7
	minLon = 126.8
	maxLon = 127.2
)

const batchSize = 100

func main() {
	count := flag.Int("count", 1000, "number of shops to generate")
	seed := flag.Int64("seed", 42, "PRNG seed for reproducible data")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}

	cat := catalog.Default()
	if pg, ok := store.(*dbPostgres.Store); ok {
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to ensure schema", zap.Error(err))
		}
	}
	if err := shoprepo.EnsureIndexes(ctx, store, cat); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(*seed))

	docs := make([]db.ShopDoc, 0, batchSize)
	inserted := 0
	for i := 0; i < *count; i++ {
		rec := randomShop(rng, i)
		docs = append(docs, shoprepo.DocFromRecord(&rec))
		if len(docs) == batchSize {
			if err := store.UpsertShops(ctx, docs); err != nil {
				logger.Fatal("Failed to upsert batch", zap.Error(err))
			}
			inserted += len(docs)
			docs = docs[:0]
		}
	}
	if len(docs) > 0 {
		if err := store.UpsertShops(ctx, docs); err != nil {
			logger.Fatal("Failed to upsert batch", zap.Error(err))
		}
		inserted += len(docs)
	}

	logger.Info("Seed complete",
		zap.Int("shops", inserted),
		zap.String("db_driver", cfg.Database.Driver),
	)
}

func newStore(cfg config.Config) (db.Store, error) {
	switch cfg.Database.Driver {
	case "redis":
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "postgres":
		return dbPostgres.NewStore(dbPostgres.Config{DSN: cfg.Database.DSN})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func randomShop(rng *rand.Rand, n int) shop.Record {
	cats := shop.Categories()
	main := cats[rng.Intn(len(cats))]

	var subs []shop.Category
	if rng.Float64() < 0.3 {
		sub := cats[rng.Intn(len(cats))]
		if sub != main {
			subs = append(subs, sub)
		}
	}

	tier := shop.TierNonPartnered
	if rng.Float64() < 0.25 {
		tier = shop.TierPartnered
	}

	featured := rng.Float64() < 0.15
	var featuredUntil time.Time
	if featured && rng.Float64() < 0.5 {
		featuredUntil = time.Now().Add(time.Duration(1+rng.Intn(60)) * 24 * time.Hour)
	}

	// A slice of shops stays non-active so searches exercise the
	// status predicate against realistic data.
	status := shop.StatusActive
	switch {
	case rng.Float64() < 0.05:
		status = shop.StatusPendingApproval
	case rng.Float64() < 0.05:
		status = shop.StatusInactive
	}

	return shop.Record{
		ID:      uuid.NewString(),
		Name:    fmt.Sprintf("%s studio %d", main, n+1),
		Address: fmt.Sprintf("Seoul, test district %d", 1+rng.Intn(25)),
		Phone:   fmt.Sprintf("02-%04d-%04d", rng.Intn(10000), rng.Intn(10000)),
		Location: geo.Point{
			Lat: minLat + rng.Float64()*(maxLat-minLat),
			Lon: minLon + rng.Float64()*(maxLon-minLon),
		},
		Category:      main,
		SubCategories: subs,
		Tier:          tier,
		IsFeatured:    featured,
		FeaturedUntil: featuredUntil,
		Status:        status,
	}
}
