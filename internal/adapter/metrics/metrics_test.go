package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikeRez0/yporders/internal/adapter/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	// separate registries, so two instances must not collide
	m := metrics.New()
	_ = metrics.New()

	m.Requests.WithLabelValues("create_order", "201").Inc()
	m.OutboxSent.Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("create_order", "201")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OutboxSent))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "orders_outbox_sent_total 2")
}
