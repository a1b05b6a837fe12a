package handlers

import (
	"net/http"

	"labtracker/internal/adapter/http/middleware"
	"labtracker/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest  = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)

	errLabImpersonation = pkg.NewDomainErrorSimple("LAB_IMPERSONATION_ACTIVE", "Usage is metered per customer; stop lab impersonation first", http.StatusConflict)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// caller returns the identity resolved by the middleware chain, writing a
// 401 when it is missing.
func caller(c *gin.Context) (middleware.RequestContext, bool) {
	rc, ok := middleware.RequestContextFrom(c.Request.Context())
	if !ok || rc.UserID == "" {
		writeError(c, errUnauthenticated)
		return middleware.RequestContext{}, false
	}
	return rc, true
}
