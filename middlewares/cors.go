package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pol3d/cardmail/internal"
)

// DefaultCORSMaxAge is how long browsers may cache a preflight answer.
const DefaultCORSMaxAge = 12 * time.Hour

// DefaultCORSConfig lets any origin POST JSON, which is what a static card
// form hosted elsewhere needs.
var DefaultCORSConfig = CORSConfig{
	AllowOrigins: []string{"*"},
	AllowMethods: []string{http.MethodPost, http.MethodOptions},
	AllowHeaders: []string{"Content-Type"},
	MaxAge:       DefaultCORSMaxAge,
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists allowed origins. "*" allows any.
	AllowOrigins []string

	// AllowOriginFunc, when set, replaces the AllowOrigins check.
	AllowOriginFunc func(origin string) bool

	AllowMethods  []string
	AllowHeaders  []string
	ExposeHeaders []string

	// AllowCredentials echoes the request origin instead of "*".
	AllowCredentials bool

	// StaticHeaders sends origin, methods and headers on every response,
	// including requests without an Origin header and error responses.
	StaticHeaders bool

	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOrigins = origins }
}

func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowOriginFunc = fn }
}

func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowMethods = methods }
}

func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowHeaders = headers }
}

// WithExposeHeaders lets browser scripts read the given response headers.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) { cfg.ExposeHeaders = headers }
}

func WithAllowCredentials() CORSOption {
	return func(cfg *CORSConfig) { cfg.AllowCredentials = true }
}

// WithStaticHeaders makes every response carry the CORS headers.
func WithStaticHeaders() CORSOption {
	return func(cfg *CORSConfig) { cfg.StaticHeaders = true }
}

func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) { cfg.MaxAge = d }
}

// corsPolicy is a CORSConfig with its header values rendered once.
type corsPolicy struct {
	cfg      CORSConfig
	wildcard bool
	methods  string
	headers  string
	expose   string
	maxAge   string
}

func newCORSPolicy(cfg CORSConfig) *corsPolicy {
	return &corsPolicy{
		cfg:      cfg,
		wildcard: slices.Contains(cfg.AllowOrigins, "*"),
		methods:  strings.Join(cfg.AllowMethods, ", "),
		headers:  strings.Join(cfg.AllowHeaders, ", "),
		expose:   strings.Join(cfg.ExposeHeaders, ", "),
		maxAge:   strconv.Itoa(int(cfg.MaxAge.Seconds())),
	}
}

func (p *corsPolicy) allowed(origin string) bool {
	if p.cfg.AllowOriginFunc != nil {
		return p.cfg.AllowOriginFunc(origin)
	}
	return p.wildcard || slices.Contains(p.cfg.AllowOrigins, origin)
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the header must be omitted.
func (p *corsPolicy) allowOrigin(origin string) string {
	if p.wildcard && !p.cfg.AllowCredentials && p.cfg.AllowOriginFunc == nil {
		if origin != "" || p.cfg.StaticHeaders {
			return "*"
		}
		return ""
	}
	if origin != "" && p.allowed(origin) {
		return origin
	}
	return ""
}

// apply sets the response headers and reports whether the request is an
// allowed cross-origin request.
func (p *corsPolicy) apply(h http.Header, origin string, preflight bool) bool {
	allow := p.allowOrigin(origin)
	if allow == "" && !p.cfg.StaticHeaders {
		return false
	}

	if allow != "" {
		h.Set("Access-Control-Allow-Origin", allow)
		if allow != "*" {
			h.Add("Vary", "Origin")
		}
	}
	if p.cfg.StaticHeaders || preflight {
		h.Set("Access-Control-Allow-Methods", p.methods)
		h.Set("Access-Control-Allow-Headers", p.headers)
	}
	if preflight && !p.cfg.StaticHeaders {
		h.Add("Vary", "Access-Control-Request-Method")
		h.Add("Vary", "Access-Control-Request-Headers")
	}
	if p.cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if p.expose != "" {
		h.Set("Access-Control-Expose-Headers", p.expose)
	}
	if preflight && p.cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", p.maxAge)
	}
	return true
}

// CORS returns middleware that adds Cross-Origin Resource Sharing headers
// and answers preflight requests with 204 before routing.
// Without WithStaticHeaders, requests from disallowed origins pass through
// untouched and the browser blocks them.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := DefaultCORSConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	p := newCORSPolicy(cfg)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			preflight := c.Request().Method == http.MethodOptions
			if !p.apply(c.Response().Header(), c.Header("Origin"), preflight) {
				return next(c)
			}
			if preflight {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
