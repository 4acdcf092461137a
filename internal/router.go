package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what handlers declare their routes on.
type Router interface {
	// Handle registers h for method and path. Route middleware runs in the
	// order given, after the app and sub-router middleware.
	Handle(method, path string, h HandlerFunc, mw ...Middleware)

	POST(path string, h HandlerFunc, mw ...Middleware)
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Route mounts a sub-router under pattern.
	Route(pattern string, fn func(r Router))

	// Use adds middleware to this router and its sub-routers.
	Use(mw ...Middleware)
}

type routerAdapter struct {
	mux chi.Router
	app *App
}

func (r *routerAdapter) Handle(method, path string, h HandlerFunc, mw ...Middleware) {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	r.mux.Method(method, path, r.app.wrapHandler(h))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, path, h, mw...)
}

func (r *routerAdapter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodOptions, path, h, mw...)
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(&routerAdapter{mux: sub, app: r.app})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.adaptMiddleware(m))
	}
}

// adaptMiddleware runs mw as chi middleware. Errors are handled at this
// layer, so the rest of the chain never sees them.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := newContext(w, r, a.logger)
			err := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})(c)
			if err != nil {
				a.handleError(c, err)
			}
		})
	}
}
