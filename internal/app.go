package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pol3d/cardmail/pkg/health"
	"github.com/pol3d/cardmail/pkg/logger"
)

// Server defaults. The write timeout leaves room for the request timeout
// middleware to answer first.
const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App is the routed http.Handler. It is fixed once New returns.
type App struct {
	router           *chi.Mux
	logger           *slog.Logger
	errorHandler     ErrorHandler
	notFound         HandlerFunc
	methodNotAllowed HandlerFunc
	health           *healthConfig
	middlewares      []Middleware
	handlers         []Handler
}

// New builds the app from opts.
//
// Example:
//
//	app := cardmail.New(
//	    cardmail.WithMiddleware(middlewares.CORS()),
//	    cardmail.WithHandlers(handlers.NewCard(svc)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:           chi.NewRouter(),
		logger:           logger.NewNope(),
		notFound:         func(Context) error { return NewHTTPError(http.StatusNotFound, "") },
		methodNotAllowed: func(Context) error { return NewHTTPError(http.StatusMethodNotAllowed, "") },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.mount()
	return a
}

// Mux returns the chi router, for adapters that need the concrete type.
func (a *App) Mux() *chi.Mux {
	return a.router
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves the app and blocks until shutdown. A non-empty addr takes
// precedence over the Address option.
//
// Example:
//
//	err := app.Run(":8080", cardmail.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := newRunConfig(opts...)
	if addr != "" {
		cfg.address = addr
	}
	return newServer(a.router, cfg).run()
}

// mount registers middleware before any route, as chi requires.
// Unmatched requests pass through the global middleware too.
func (a *App) mount() {
	a.router.NotFound(a.wrapHandler(a.notFound))
	a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowed))

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if hc := a.health; hc != nil {
		a.router.Get(hc.livenessPath, health.LivenessHandler())
		a.router.Get(hc.readinessPath, health.ReadinessHandler(hc.checks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders err unless a response is already on the wire.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.WarnContext(c, "error after response was written", slog.Any("error", err))
		return
	}

	if a.errorHandler == nil {
		code := statusOf(err)
		http.Error(c.Response(), http.StatusText(code), code)
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		a.logger.ErrorContext(c, "error handler failed", slog.Any("error", herr), slog.Any("cause", err))
	}
}
