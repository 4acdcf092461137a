// Package internal provides the HTTP application kit behind the cardmail package.
//
// Import "github.com/pol3d/cardmail" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: routing, middleware, error handling and graceful shutdown
//   - Context: request/response access plus JSON and logging helpers
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler signature that returns an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: turns handler errors into responses
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Card) send(c cardmail.Context) error {
//	    res, err := h.svc.Send(c, req)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, res)
//	}
//
// # Errors
//
// Handlers return errors instead of writing them. The App passes every error
// to the ErrorHandler configured with WithErrorHandler, unless the handler
// already wrote a response. Unknown routes and unsupported methods are routed
// through the same handler as *HTTPError values with codes 404 and 405.
//
// # Running
//
// App.Run listens on the given address and shuts down gracefully on SIGINT or
// SIGTERM, running ShutdownHook functions after the server stops. App also
// implements http.Handler and exposes its chi router through Mux for
// serverless adapters.
package internal
