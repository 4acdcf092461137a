// Package middlewares provides HTTP middleware for the cardmail app.
//
// # Request ID
//
// RequestID assigns a unique ID to each request. It reuses an upstream ID from
// the request headers or generates a UUID. Pair it with RequestIDExtractor so
// every log line carries request_id:
//
//	app := cardmail.New(
//	    cardmail.WithLogger(cfg.Logger, middlewares.RequestIDExtractor()),
//	    cardmail.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into *PanicError so the error handler can answer
// with the regular JSON envelope.
//
// # Timeout
//
// Timeout attaches a deadline to the request context. Outbound provider calls
// made with the request context are cancelled once it passes.
//
// # CORS
//
// CORS answers preflight requests with 204 and adds the allow headers. The
// card endpoint is called from a static site, so it runs with static headers
// on every response:
//
//	middlewares.CORS(middlewares.WithStaticHeaders())
//
// # Recommended Middleware Order
//
//	cardmail.WithMiddleware(
//	    middlewares.CORS(),      // First: answer preflight before anything else
//	    middlewares.RequestID(), // Second: assign ID for all subsequent logging
//	    middlewares.Recover(),   // Third: catch panics from timeout and handlers
//	    middlewares.Timeout(25*time.Second),
//	)
package middlewares
