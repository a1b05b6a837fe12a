package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	"labtracker/internal/adapter/http/middleware"
	"labtracker/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	customerCaller = middleware.RequestContext{UserID: "u-1", Role: entities.AppRoleCustomer, SessionID: "sess-1"}
	adminCaller    = middleware.RequestContext{UserID: "admin-1", Role: entities.AppRoleAdmin, SessionID: "sess-1"}
)

// newRouter returns a test engine whose requests carry rc as the resolved
// caller.
func newRouter(rc *middleware.RequestContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if rc != nil {
		r.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(middleware.WithRequestContext(c.Request.Context(), *rc))
			c.Next()
		})
	}
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
