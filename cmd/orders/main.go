package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/adapter/handler/http"
	"github.com/MikeRez0/yporders/internal/adapter/logger"
	"github.com/MikeRez0/yporders/internal/adapter/messaging/kafka"
	"github.com/MikeRez0/yporders/internal/adapter/metrics"
	"github.com/MikeRez0/yporders/internal/adapter/outbox"
	"github.com/MikeRez0/yporders/internal/adapter/storage"
	"github.com/MikeRez0/yporders/internal/adapter/storage/memory"
	"github.com/MikeRez0/yporders/internal/adapter/storage/repository"
	"github.com/MikeRez0/yporders/internal/adapter/validation"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/MikeRez0/yporders/internal/core/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type orderStorage interface {
	port.Repository
	port.IDGenerator
}

type backend struct {
	orders orderStorage
	outbox port.OutboxStore
	tx     port.Transactor
	close  func()
}

//	@title			Orders API
//	@version		1.0
//	@description	Order lifecycle service with transactional payment request handoff.
//	@BasePath		/
func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(conf.App, "orders")
	if err != nil {
		fmt.Printf("error creating log: %s", err)
		os.Exit(1)
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	if err := run(conf, log); err != nil {
		log.Error("orders service stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(conf *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openBackend(ctx, conf.Database, log)
	if err != nil {
		return err
	}
	defer store.close()

	m := metrics.New()

	v, err := validation.New()
	if err != nil {
		return fmt.Errorf("validator creating error: %w", err)
	}

	publisher, err := outbox.NewPublisher(store.outbox, conf.Kafka.PaymentTopic, log.Named("Publisher"))
	if err != nil {
		return fmt.Errorf("publisher creating error: %w", err)
	}

	svc, err := service.NewService(store.orders, store.orders, log.Named("Service"))
	if err != nil {
		return fmt.Errorf("order service creating error: %w", err)
	}

	orderHandler, err := http.NewOrderHandler(svc, publisher, store.tx, v, log.Named("Order handler"))
	if err != nil {
		return fmt.Errorf("order handler creating error: %w", err)
	}

	r, err := http.NewRouter(conf.HTTP, orderHandler, m, log.Named("Router"))
	if err != nil {
		return fmt.Errorf("router creating error: %w", err)
	}

	sink, err := kafka.NewSink(conf.Kafka, log.Named("Kafka"))
	switch {
	case errors.Is(err, kafka.ErrDisabled):
		log.Warn("kafka brokers are not configured, payment requests stay in the outbox")
	case err != nil:
		return fmt.Errorf("kafka sink creating error: %w", err)
	default:
		defer func() {
			if err := sink.Close(); err != nil {
				log.Error("kafka sink close error", zap.Error(err))
			}
		}()

		relay, err := outbox.NewRelay(store.outbox, store.tx, sink, conf.Outbox, m, log.Named("Relay"))
		if err != nil {
			return fmt.Errorf("outbox relay creating error: %w", err)
		}
		if err := relay.Start(ctx); err != nil {
			return err
		}
		defer relay.Stop()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Serve()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.App.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return r.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBackend(ctx context.Context, conf *config.Database, log *zap.Logger) (*backend, error) {
	if conf.InMemory() {
		log.Warn("database is not configured, orders are kept in memory")
		repo := memory.NewRepository()
		return &backend{
			orders: repo,
			outbox: memory.NewOutboxStore(),
			tx:     repo,
			close:  func() {},
		}, nil
	}

	db, err := storage.NewDBStorage(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	version, err := db.RunMigrations()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration error: %w", err)
	}
	log.Info("database schema is up to date", zap.Uint("version", version))

	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("order repo creating error: %w", err)
	}
	outboxRepo, err := repository.NewOutboxRepository(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("outbox repo creating error: %w", err)
	}

	return &backend{
		orders: repo,
		outbox: outboxRepo,
		tx:     db,
		close:  db.Close,
	}, nil
}
