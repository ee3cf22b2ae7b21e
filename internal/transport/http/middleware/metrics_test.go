package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"go-gin-jobboard/internal/core/metrics"
)

func TestMetricsUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/jobs/:id", ok)

	hit := metrics.HTTPRequests.WithLabelValues("/jobs/:id", http.MethodGet, "200")
	miss := metrics.HTTPRequests.WithLabelValues(metrics.UnmatchedRoute, http.MethodGet, "404")
	beforeHit, beforeMiss := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	run(r, httptest.NewRequest(http.MethodGet, "/jobs/1", nil))
	run(r, httptest.NewRequest(http.MethodGet, "/jobs/2", nil))
	run(r, httptest.NewRequest(http.MethodGet, "/wp-admin/setup.php", nil))

	assert.Equal(t, beforeHit+2, testutil.ToFloat64(hit))
	assert.Equal(t, beforeMiss+1, testutil.ToFloat64(miss))
	assert.Zero(t, testutil.ToFloat64(metrics.HTTPInFlight))
}
