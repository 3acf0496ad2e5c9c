package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/adapter/logger"
	"github.com/MikeRez0/yporders/internal/adapter/messaging/kafka"
	"github.com/MikeRez0/yporders/internal/adapter/storage"
	"github.com/MikeRez0/yporders/internal/adapter/storage/repository"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("database is not configured, set DATABASE_URI or --dsn")

// backend is what the maintenance commands operate on. sink is nil when no
// broker is configured.
type backend struct {
	outbox  port.OutboxStore
	tx      port.Transactor
	sink    port.MessageSink
	migrate func() (uint, error)
	close   func()
}

type opener func(ctx context.Context, conf *config.Config, log *zap.Logger) (*backend, error)

type app struct {
	open opener
	conf *config.Config
	log  *zap.Logger
}

func newRootCmd(open opener) *cobra.Command {
	a := &app{open: open}
	var (
		dsn     string
		brokers []string
	)

	cmd := &cobra.Command{
		Use:           "ordersctl",
		Short:         "Maintenance tool for the orders service",
		Long:          "Apply database migrations and inspect or drain the payment request outbox.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.FromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if cmd.Flags().Changed("dsn") {
				conf.Database.DSN = dsn
			}
			if cmd.Flags().Changed("brokers") {
				conf.Kafka.Brokers = brokers
			}
			a.conf = conf

			a.log, err = logger.NewLogger(conf.App, "ordersctl")
			if err != nil {
				return fmt.Errorf("error creating log: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database string, overrides DATABASE_URI")
	cmd.PersistentFlags().StringSliceVar(&brokers, "brokers", nil, "Kafka brokers, overrides KAFKA_BROKERS")

	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newOutboxCmd(a))
	return cmd
}

func (a *app) backend(ctx context.Context) (*backend, error) {
	if a.conf.Database.InMemory() {
		return nil, errNoDatabase
	}
	return a.open(ctx, a.conf, a.log)
}

func Execute() error {
	return newRootCmd(openPostgres).Execute()
}

func openPostgres(ctx context.Context, conf *config.Config, log *zap.Logger) (*backend, error) {
	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	outboxRepo, err := repository.NewOutboxRepository(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("outbox repo creating error: %w", err)
	}

	b := &backend{
		outbox:  outboxRepo,
		tx:      db,
		migrate: db.RunMigrations,
		close:   db.Close,
	}

	sink, err := kafka.NewSink(conf.Kafka, log.Named("Kafka"))
	switch {
	case errors.Is(err, kafka.ErrDisabled):
	case err != nil:
		db.Close()
		return nil, fmt.Errorf("kafka sink creating error: %w", err)
	default:
		b.sink = sink
		b.close = func() {
			if err := sink.Close(); err != nil {
				log.Error("kafka sink close error", zap.Error(err))
			}
			db.Close()
		}
	}

	return b, nil
}
