package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAccessLogMasksAndCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	r := gin.New()
	r.Use(RequestID(l), AccessLog(l))
	r.GET("/jobs", ok)
	r.GET("/boom", func(c *gin.Context) { c.AbortWithStatus(http.StatusInternalServerError) })

	req := httptest.NewRequest(http.MethodGet, "/jobs?email=a@x.com&title=go", nil)
	req.Header.Set(KeyRequestID, "rid-7")
	run(r, req)
	run(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.FilterMessage("HTTP").All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "rid-7", first["rid"])
	assert.Equal(t, "/jobs", first["route"])
	q, isMap := first["query"].(map[string][]string)
	require.True(t, isMap)
	assert.Equal(t, []string{"****"}, q["email"])
	assert.Equal(t, []string{"go"}, q["title"])
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "query")
}

func TestSensitive(t *testing.T) {
	for _, k := range []string{"password", "Password", "EMAIL", "access_token"} {
		assert.True(t, Sensitive(k), k)
	}
	assert.False(t, Sensitive("title"))
	assert.False(t, Sensitive(""))
}
