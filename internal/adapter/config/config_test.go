package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	conf, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{})
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", conf.HTTP.HostString)
	assert.True(t, conf.Database.InMemory())
	assert.False(t, conf.Kafka.Enabled())
	assert.Equal(t, "payment-requests", conf.Kafka.PaymentTopic)
	assert.Equal(t, 100, conf.Outbox.BatchSize)
	assert.Equal(t, 10*time.Second, conf.App.ShutdownTimeout)
	assert.Equal(t, AppModeDevelop, conf.App.Mode)
}

func TestParse_EnvOverridesFlags(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DATABASE_URI", "postgres://localhost/orders")

	conf, err := parse(flag.NewFlagSet("test", flag.ContinueOnError),
		[]string{"-a", ":7070", "-k", "flag:9092", "-b", "5"})
	require.NoError(t, err)

	assert.Equal(t, ":9090", conf.HTTP.HostString)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, conf.Kafka.Brokers)
	assert.False(t, conf.Database.InMemory())
	assert.Equal(t, 5, conf.Outbox.BatchSize)
}

func TestParse_BadBatchSize(t *testing.T) {
	_, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-b", "0"})
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://orders@db/orders")
	t.Setenv("OUTBOX_MAX_ATTEMPTS", "3")

	conf, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://orders@db/orders", conf.Database.DSN)
	assert.False(t, conf.Database.InMemory())
	assert.Equal(t, 3, conf.Outbox.MaxAttempts)
	assert.Equal(t, "payment-requests", conf.Kafka.PaymentTopic)
}
