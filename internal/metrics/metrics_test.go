package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	c := New()
	c.ObserveRegistration("register", nil)
	c.ObserveRegistration("register", errors.New("x"))
	c.ObserveRegistration("deregister", nil)
	c.ObservePoll(0, nil)
	c.ObservePoll(3, nil)
	c.ObservePoll(0, errors.New("x"))
	c.ObserveEntry("http")
	c.ObserveEntry("http")
	c.ObserveEntry("raw")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("register", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("register", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("deregister", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.polls.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.polls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.polls.WithLabelValues("error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.interactions.WithLabelValues("http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.interactions.WithLabelValues("raw")))
}

func TestHandler(t *testing.T) {
	c := New()
	c.ObserveEntry("dns")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `interactsh_client_interactions_total{protocol="dns"} 1`), string(body))
}
