package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
)

func sample() calendar.Progress {
	return calendar.Compute(time.Date(2024, time.February, 29, 12, 0, 30, 0, time.UTC))
}

func TestCollectorObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	p := sample()
	c.Observe(p)
	c.Observe(p)

	for _, cy := range calendar.Cycles() {
		got := testutil.ToFloat64(c.progress.WithLabelValues(cy.String()))
		assert.Equal(t, p.Fraction(cy), got, cy.String())
	}
	assert.Equal(t, 0.5, testutil.ToFloat64(c.progress.WithLabelValues("minute")))
	assert.Equal(t, p.YearProgress, testutil.ToFloat64(c.yearByDay))
	assert.Equal(t, 9.0, testutil.ToFloat64(c.isoWeek))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.samples))
	assert.Equal(t, 9, testutil.CollectAndCount(c.progress))
}

func TestNewCollectorRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg).Observe(sample())

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `luminar_cycle_progress{cycle="season"}`)
	assert.Contains(t, string(body), "luminar_iso_week 9")
	assert.Contains(t, string(body), "luminar_samples_total 1")
}

func TestServeStopsWithContext(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- serve(ctx, lis, reg) }()

	url := "http://" + lis.Addr().String() + "/metrics"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServeBadAddress(t *testing.T) {
	err := Serve(context.Background(), "256.0.0.1:bad", prometheus.NewRegistry())
	assert.Error(t, err)
}
