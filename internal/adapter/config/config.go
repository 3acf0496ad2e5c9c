package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Kafka    *Kafka
	Outbox   *Outbox
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel        string        `env:"LOG_LEVEL"`
	Mode            string        `env:"APP_MODE"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

// InMemory reports whether orders are kept in process memory.
func (d *Database) InMemory() bool {
	return strings.TrimSpace(d.DSN) == ""
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Kafka struct {
	Brokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	PaymentTopic string   `env:"PAYMENT_TOPIC"`
}

// Enabled reports whether any broker is configured.
func (k *Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

type Outbox struct {
	Schedule    string `env:"OUTBOX_SCHEDULE"`
	BatchSize   int    `env:"OUTBOX_BATCH_SIZE"`
	MaxAttempts int    `env:"OUTBOX_MAX_ATTEMPTS"`
}

// NewConfig reads flags first, then lets environment variables override them.
// Variables from a .env file in the working directory are loaded when present.
func NewConfig() (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

// FromEnv builds a config from defaults, .env and the environment only.
// Tools that own the command line use it instead of NewConfig.
func FromEnv() (*Config, error) {
	return parse(flag.NewFlagSet("env", flag.ContinueOnError), nil)
}

func parse(fset *flag.FlagSet, args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var db Database
	var http HTTP
	var kafka Kafka
	var outbox Outbox
	var app App
	var brokers string

	fset.StringVar(&db.DSN, "d", "", "Database string, empty to keep orders in memory")
	fset.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	fset.StringVar(&brokers, "k", "", "Kafka brokers, comma separated")
	fset.StringVar(&kafka.PaymentTopic, "t", "payment-requests", "Payment requests topic")
	fset.StringVar(&outbox.Schedule, "s", "@every 2s", "Outbox relay schedule (cron spec)")
	fset.IntVar(&outbox.BatchSize, "b", 100, "Outbox relay batch size")
	fset.IntVar(&outbox.MaxAttempts, "r", 10, "Outbox delivery attempts before a message is parked")
	fset.StringVar(&app.LogLevel, "l", `error`, "Log level")
	fset.StringVar(&app.Mode, "m", AppModeDevelop, "PROD / DEV")
	fset.DurationVar(&app.ShutdownTimeout, "g", 10*time.Second, "Graceful shutdown timeout")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	kafka.Brokers = splitCSV(brokers)

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}
	err = env.Parse(&kafka)
	if err != nil {
		return nil, fmt.Errorf("error parsing kafka config: %w", err)
	}
	err = env.Parse(&outbox)
	if err != nil {
		return nil, fmt.Errorf("error parsing outbox config: %w", err)
	}

	if outbox.BatchSize <= 0 {
		return nil, fmt.Errorf("outbox batch size must be positive, got %d", outbox.BatchSize)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Kafka:    &kafka,
		Outbox:   &outbox,
		App:      &app,
	}

	return &config, nil
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
