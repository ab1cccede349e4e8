package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelbooking/api"
	"github.com/Domenick1991/travelbooking/config"
	"github.com/Domenick1991/travelbooking/internal/bootstrap"
	"github.com/Domenick1991/travelbooking/internal/cache"
	"github.com/Domenick1991/travelbooking/internal/kafka"
	"github.com/Domenick1991/travelbooking/internal/logger"
	"github.com/Domenick1991/travelbooking/internal/repository"
	"github.com/Domenick1991/travelbooking/internal/service/booking"
	"github.com/Domenick1991/travelbooking/internal/service/customers"
	"github.com/Domenick1991/travelbooking/internal/service/itineraries"
	"github.com/Domenick1991/travelbooking/internal/service/reports"
	"github.com/Domenick1991/travelbooking/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	persister, closePersister := newPersister(ctx, cfg, lg)
	defer closePersister()

	ledger, err := store.Open(ctx, persister, lg)
	if err != nil {
		lg.Error("load travel data, starting empty", "error", err)
	}

	var itineraryCache *cache.RedisCache
	bookingOpts := []booking.BookingServiceOption{booking.WithLogger(lg)}
	if cfg.Redis.Addr != "" {
		itineraryCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Redis.ItinerariesTTLSeconds)*time.Second)
		defer itineraryCache.Close()
		bookingOpts = append(bookingOpts, booking.WithCache(itineraryCache))
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			lg.Warn("kafka unavailable, booking events will fail to publish", "error", err)
		}
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	customerService := customers.NewCustomerService(ledger, lg)
	itineraryService := itineraries.NewItineraryService(ledger, itineraryCacheOrNil(itineraryCache), lg)
	bookingService := booking.NewBookingService(ledger, bookingOpts...)
	reportService := reports.NewReportService(ledger)

	err = bootstrap.Run(ctx, cfg, lg,
		bootstrap.Route{Prefix: "/customers", Handler: api.NewCustomerHandler(customerService)},
		bootstrap.Route{Prefix: "/itineraries", Handler: api.NewItineraryHandler(itineraryService)},
		bootstrap.Route{Prefix: "/bookings", Handler: api.NewBookingHandler(bookingService)},
		bootstrap.Route{Prefix: "/reports", Handler: api.NewReportHandler(reportService)},
	)

	flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if ferr := ledger.Flush(flushCtx); ferr != nil {
		lg.Error("final save of travel data", "error", ferr)
	}
	if err != nil {
		lg.Fatal("server error", "error", err)
	}
	lg.Info("server stopped")
}

func newPersister(ctx context.Context, cfg *config.Config, lg *logger.Logger) (store.Persister, func()) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			lg.Fatal("connect postgres", "error", err)
		}
		pg := repository.NewPGSnapshotStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			lg.Fatal("ensure schema", "error", err)
		}
		return pg, pool.Close
	default:
		return repository.NewXMLFileStore(cfg.Storage.XMLPath, lg), func() {}
	}
}

// itineraryCacheOrNil keeps a nil *RedisCache from becoming a non-nil interface.
func itineraryCacheOrNil(c *cache.RedisCache) itineraries.ItineraryCache {
	if c == nil {
		return nil
	}
	return c
}
