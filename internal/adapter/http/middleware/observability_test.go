package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingReporter struct {
	recovered any
}

func (r *recordingReporter) ReportPanic(_ context.Context, recovered any, _ []byte) {
	r.recovered = recovered
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rep := &recordingReporter{}
	r := gin.New()
	r.Use(Recovery(rep))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"code":"INTERNAL_ERROR","message":"An internal error occurred"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if rep.recovered != "kaboom" {
		t.Fatalf("reporter not called, got %v", rep.recovered)
	}
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)), Metrics())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/ok", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[1].Level != zap.WarnLevel {
		t.Fatalf("unexpected levels %v %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["status"] != int64(http.StatusNotFound) {
		t.Fatalf("unexpected fields %v", entries[1].ContextMap())
	}
}
