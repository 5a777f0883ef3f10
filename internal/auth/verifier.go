// Package auth verifies the bearer credentials issued by the external
// identity provider and resolves them to a stable principal id.
package auth

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Common verification errors.
var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier resolves a bearer credential to the owning principal's id.
// Handlers never see the credential format; tests inject a fake.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// IDTokenVerifier validates the provider's RS256-signed ID tokens against
// its published x509 certificates. Verified decisions are optionally cached
// in Redis, keyed by token digest, so hot clients do not pay the signature
// check on every request.
type IDTokenVerifier struct {
	projectID string
	certsURL  string
	cacheTTL  time.Duration

	http *http.Client
	rdb  *redis.Client // nil disables the decision cache
	log  zerolog.Logger

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	keysRefresh time.Time
}

// NewIDTokenVerifier creates a verifier for the given identity project.
// rdb may be nil, in which case every call verifies the signature.
func NewIDTokenVerifier(projectID, certsURL string, cacheTTL time.Duration, rdb *redis.Client, log zerolog.Logger) *IDTokenVerifier {
	return &IDTokenVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		cacheTTL:  cacheTTL,
		http:      &http.Client{Timeout: 10 * time.Second},
		rdb:       rdb,
		log:       log.With().Str("component", "auth").Logger(),
	}
}

// Verify checks the token signature, issuer, audience and expiry, and
// returns the principal id (the token subject).
func (v *IDTokenVerifier) Verify(ctx context.Context, tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrMissingToken
	}

	cacheKey := tokenCacheKey(tokenStr)
	if v.rdb != nil {
		if uid, err := v.rdb.Get(ctx, cacheKey).Result(); err == nil && uid != "" {
			return uid, nil
		}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no key id")
		}
		return v.publicKey(ctx, kid)
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return "", ErrInvalidToken
	}

	if v.rdb != nil {
		if ttl := v.decisionTTL(claims); ttl > 0 {
			if err := v.rdb.Set(ctx, cacheKey, uid, ttl).Err(); err != nil {
				v.log.Warn().Err(err).Msg("Token cache write failed")
			}
		}
	}

	return uid, nil
}

// decisionTTL caps the cache lifetime at both the configured TTL and the
// token's own expiry, so a cached decision never outlives the token.
func (v *IDTokenVerifier) decisionTTL(claims jwt.MapClaims) time.Duration {
	ttl := v.cacheTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

func (v *IDTokenVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.keysRefresh)
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		// Serve a stale key rather than rejecting everyone while the
		// provider is unreachable.
		if ok {
			v.log.Warn().Err(err).Msg("Cert refresh failed, using cached key")
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return key, nil
}

var maxAgeRe = regexp.MustCompile(`max-age=(\d+)`)

func (v *IDTokenVerifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return err
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certs: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read certs: %w", err)
	}

	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return fmt.Errorf("decode certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		block, _ := pem.Decode([]byte(certPEM))
		if block == nil {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			continue
		}
		if rsaKey, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			keys[kid] = rsaKey
		}
	}
	if len(keys) == 0 {
		return errors.New("no usable certs in provider response")
	}

	refresh := time.Now().Add(time.Hour)
	if m := maxAgeRe.FindStringSubmatch(resp.Header.Get("Cache-Control")); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil {
			refresh = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}

	v.mu.Lock()
	v.keys = keys
	v.keysRefresh = refresh
	v.mu.Unlock()

	v.log.Debug().Int("keys", len(keys)).Time("refresh", refresh).Msg("Provider certs refreshed")
	return nil
}

func tokenCacheKey(tokenStr string) string {
	sum := sha256.Sum256([]byte(tokenStr))
	return "idtoken:" + hex.EncodeToString(sum[:])
}
