package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer   = "https://auth.example.test/"
	testAudience = "labtracker-api"
	testKID      = "test-key"
)

func newTestVerifier(t *testing.T) (*JWTVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to create key: %v", err)
	}
	jwks := map[string]any{"keys": []map[string]string{{
		"kty": "RSA",
		"kid": testKID,
		"use": "sig",
		"alg": "RS256",
		"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
	}}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	v, err := NewJWTVerifier(ctx, testIssuer, testAudience, server.URL)
	if err != nil {
		t.Fatalf("failed to create verifier: %v", err)
	}
	return v, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKID
	s, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   testIssuer,
		"aud":   testAudience,
		"sub":   "user-123",
		"email": "ana@example.com",
		"exp":   now.Add(10 * time.Minute).Unix(),
		"iat":   now.Unix(),
	}
}

func protectedRouter(v TokenVerifier, disabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(v, disabled, nil))
	r.GET("/protected", func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, claims.Subject+"|"+claims.Email)
	})
	return r
}

func doGet(r http.Handler, auth string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	v, key := newTestVerifier(t)
	r := protectedRouter(v, false)

	t.Run("missing token", func(t *testing.T) {
		w := doGet(r, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "UNAUTHORIZED" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		if w := doGet(r, "Token abc"); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("failed to create key: %v", err)
		}
		if w := doGet(r, "Bearer "+signToken(t, other, validClaims())); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims()
		claims["aud"] = "someone-else"
		if w := doGet(r, "Bearer "+signToken(t, key, claims)); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		if w := doGet(r, "Bearer "+signToken(t, key, claims)); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid", func(t *testing.T) {
		w := doGet(r, "Bearer "+signToken(t, key, validClaims()))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "user-123|ana@example.com" {
			t.Fatalf("unexpected claims: %s", w.Body.String())
		}
	})
}

func TestAuth_Disabled(t *testing.T) {
	r := protectedRouter(nil, true)

	if w := doGet(r, ""); w.Body.String() != "local-dev|" {
		t.Fatalf("expected local-dev subject, got %q", w.Body.String())
	}
	if w := doGet(r, "", HeaderDevUserID, "user-7"); w.Body.String() != "user-7|" {
		t.Fatalf("expected header subject, got %q", w.Body.String())
	}
}

func TestAuth_NoVerifier(t *testing.T) {
	if w := doGet(protectedRouter(nil, false), "Bearer abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestExtractBearerToken(t *testing.T) {
	if token, ok := extractBearerToken("bearer abc"); !ok || token != "abc" {
		t.Fatalf("expected token")
	}
	for _, h := range []string{"", "Bearer", "Bearer   ", "Token abc"} {
		if _, ok := extractBearerToken(h); ok {
			t.Fatalf("expected %q to be invalid", h)
		}
	}
}

func TestNewJWTVerifier_RequiresIssuer(t *testing.T) {
	if _, err := NewJWTVerifier(context.Background(), " ", "", ""); err == nil {
		t.Fatalf("expected error")
	}
}
