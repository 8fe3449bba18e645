package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheus(t *testing.T) {
	t.Run("should count http requests by route", func(t *testing.T) {
		p := NewPrometheus()

		p.RecordHTTPRequest("get", "/api/account", http.StatusOK, 20*time.Millisecond)
		p.RecordHTTPRequest("GET", "/api/account", http.StatusOK, 30*time.Millisecond)
		p.RecordHTTPRequest("GET", "", http.StatusNotFound, time.Millisecond)

		assert.Equal(t, 2.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "/api/account", "200")))
		assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "unmatched", "404")))
	})

	t.Run("should count generations and credits", func(t *testing.T) {
		p := NewPrometheus()

		p.RecordGeneration("classic", "succeeded", 3*time.Second)
		p.RecordGeneration("quick", "failed", 0)
		p.RecordCreditCharge(5)
		p.RecordCreditCharge(8)
		p.RecordCreditCharge(0)
		p.RecordRateLimitDenied("generate")

		assert.Equal(t, 1.0, testutil.ToFloat64(p.generations.WithLabelValues("classic", "succeeded")))
		assert.Equal(t, 1.0, testutil.ToFloat64(p.generations.WithLabelValues("quick", "failed")))
		assert.Equal(t, 13.0, testutil.ToFloat64(p.creditsCharged))
		assert.Equal(t, 1.0, testutil.ToFloat64(p.rateLimitDenials.WithLabelValues("generate")))
	})

	t.Run("should expose the registry over http", func(t *testing.T) {
		p := NewPrometheus()
		p.RecordCreditCharge(5)

		rec := httptest.NewRecorder()
		p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "polaroid_studio_credit_charged_total 5")
	})
}
