package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 业务指标，status 取 ok / fail
var (
	LoginTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_login_total", Help: "Login attempts"},
		[]string{"status"},
	)
	RegisterTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_register_total", Help: "Registration attempts"},
		[]string{"status"},
	)
	ApplicationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "applications_submitted_total", Help: "Job applications created"},
	)
	ChatTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "chat_completions_total", Help: "Chat completion calls"},
		[]string{"audience", "status"},
	)
	StorageCleanupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "storage_cleanup_failures_total", Help: "Best-effort object deletions that failed"},
	)
)

func init() {
	prometheus.MustRegister(LoginTotal, RegisterTotal, ApplicationsTotal, ChatTotal, StorageCleanupFailures)
}

func Status(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}

// Handler /metrics
func Handler() http.Handler { return promhttp.Handler() }
