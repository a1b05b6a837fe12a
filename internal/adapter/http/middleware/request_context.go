package middleware

import (
	"context"
	"net/http"
	"strings"

	"labtracker/internal/domain/entities"
	"labtracker/internal/infrastructure/logger"
	"labtracker/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderSessionID carries the client session used for impersonation state.
const HeaderSessionID = "X-Session-ID"

var errForbidden = pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient role", http.StatusForbidden)

// RoleResolver looks up the stored role and lab of a user.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) (entities.AppRole, error)
	ResolveLabID(ctx context.Context, userID string) (string, error)
}

// ImpersonationReader returns the impersonation active for a session.
type ImpersonationReader interface {
	Current(ctx context.Context, session string) (entities.ImpersonatedUser, error)
}

// RequestContext is the caller identity resolved once per request.
type RequestContext struct {
	UserID        string
	Email         string
	Role          entities.AppRole
	LabID         string
	SessionID     string
	Impersonation entities.ImpersonatedUser
}

// Scope is the quote visibility of the effective identity. An admin acting
// as a customer or lab sees exactly what that identity would.
func (rc RequestContext) Scope() entities.QuoteScope {
	if rc.Impersonation.Active() {
		switch rc.Impersonation.Kind {
		case entities.ImpersonationCustomer:
			return entities.QuoteScope{UserID: rc.Impersonation.ID}
		case entities.ImpersonationLab:
			return entities.QuoteScope{LabID: rc.Impersonation.ID}
		}
	}
	switch rc.Role {
	case entities.AppRoleAdmin:
		return entities.QuoteScope{All: true}
	case entities.AppRoleLab:
		return entities.QuoteScope{UserID: rc.UserID, LabID: rc.LabID}
	default:
		return entities.QuoteScope{UserID: rc.UserID}
	}
}

// EffectiveUserID is the impersonated customer when one is active, else the
// caller.
func (rc RequestContext) EffectiveUserID() string {
	if rc.Impersonation.Active() && rc.Impersonation.Kind == entities.ImpersonationCustomer {
		return rc.Impersonation.ID
	}
	return rc.UserID
}

func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

func RequestContextFrom(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(RequestContext)
	return rc, ok
}

// Identity resolves role, lab and impersonation for the authenticated
// caller. Role lookups that fail fall back to the least privileged role.
// Only admins may carry an impersonation.
func Identity(roles RoleResolver, imp ImpersonationReader, log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log).Named("identity")
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c.Request.Context())
		if !ok || claims.Subject == "" {
			abort(c, errUnauthorized)
			return
		}
		ctx := c.Request.Context()
		rc := RequestContext{
			UserID:    claims.Subject,
			Email:     claims.Email,
			SessionID: strings.TrimSpace(c.GetHeader(HeaderSessionID)),
		}

		role, err := roles.ResolveRole(ctx, rc.UserID)
		if err != nil {
			log.Warn("role lookup failed, using least privileged role", zap.String("user_id", rc.UserID), zap.Error(err))
			role = entities.LeastPrivilegedRole
		}
		rc.Role = role

		if role == entities.AppRoleLab {
			labID, err := roles.ResolveLabID(ctx, rc.UserID)
			if err != nil {
				log.Warn("lab lookup failed", zap.String("user_id", rc.UserID), zap.Error(err))
			}
			rc.LabID = labID
		}

		if role == entities.AppRoleAdmin && imp != nil && rc.SessionID != "" {
			current, err := imp.Current(ctx, rc.SessionID)
			if err != nil {
				log.Warn("impersonation lookup failed", zap.String("session", rc.SessionID), zap.Error(err))
			}
			rc.Impersonation = current
		}

		c.Request = c.Request.WithContext(WithRequestContext(ctx, rc))
		c.Next()
	}
}

// RequireRole rejects callers whose stored role is not listed. The check
// uses the real role, never the impersonated one.
func RequireRole(allowed ...entities.AppRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := RequestContextFrom(c.Request.Context())
		if !ok {
			abort(c, errUnauthorized)
			return
		}
		for _, r := range allowed {
			if rc.Role == r {
				c.Next()
				return
			}
		}
		abort(c, errForbidden)
	}
}
