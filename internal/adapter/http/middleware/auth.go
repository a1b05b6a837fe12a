// Package middleware holds the gin middleware chain: authentication, request
// identity, logging, metrics and panic recovery.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"labtracker/internal/infrastructure/logger"
	"labtracker/pkg"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	defaultLeeway = 30 * time.Second

	// HeaderDevUserID names the caller when auth is disabled.
	HeaderDevUserID = "X-User-ID"
	devUserID       = "local-dev"
)

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid bearer token", http.StatusUnauthorized)

// Claims are the verified token fields the service uses.
type Claims struct {
	Subject string
	Email   string
	Raw     map[string]any
}

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// JWTVerifier checks tokens against the identity provider's JWKS.
type JWTVerifier struct {
	keyfunc keyfunc.Keyfunc
	parser  *jwt.Parser
}

var _ TokenVerifier = (*JWTVerifier)(nil)

// NewJWTVerifier fetches signing keys from jwksURL, defaulting to the
// issuer's well-known location. The key set refreshes until ctx is done.
func NewJWTVerifier(ctx context.Context, issuer, audience, jwksURL string) (*JWTVerifier, error) {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, errors.New("auth issuer must be set")
	}
	if jwksURL == "" {
		jwksURL = strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"
	}
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("init jwks keyfunc: %w", err)
	}

	opts := []jwt.ParserOption{
		jwt.WithIssuer(issuer),
		jwt.WithLeeway(defaultLeeway),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name, jwt.SigningMethodRS384.Name, jwt.SigningMethodRS512.Name, jwt.SigningMethodES256.Name}),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{keyfunc: k, parser: jwt.NewParser(opts...)}, nil
}

func (v *JWTVerifier) Verify(token string) (*Claims, error) {
	parsed, err := v.parser.Parse(token, v.keyfunc.Keyfunc)
	if err != nil {
		return nil, err
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	sub, _ := mc.GetSubject()
	if sub == "" {
		return nil, errors.New("token missing sub")
	}
	email, _ := mc["email"].(string)
	return &Claims{Subject: sub, Email: email, Raw: mc}, nil
}

type ctxKey int

const (
	claimsKey ctxKey = iota
	requestContextKey
)

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// Auth requires a valid bearer token. With disabled set, every request is
// accepted as the user named by X-User-ID, or local-dev.
func Auth(verifier TokenVerifier, disabled bool, log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log).Named("auth")
	return func(c *gin.Context) {
		if disabled {
			sub := strings.TrimSpace(c.GetHeader(HeaderDevUserID))
			if sub == "" {
				sub = devUserID
			}
			c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), &Claims{Subject: sub}))
			c.Next()
			return
		}
		if verifier == nil {
			abort(c, errUnauthorized)
			return
		}

		token, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Debug("missing or malformed authorization header", zap.String("path", c.Request.URL.Path))
			abort(c, errUnauthorized)
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			log.Info("token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			abort(c, errUnauthorized)
			return
		}
		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func extractBearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abort(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
