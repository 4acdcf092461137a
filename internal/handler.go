package internal

// Handler declares routes on a router.
//
// Example:
//
//	type CardHandler struct {
//	    svc *card.Service
//	}
//
//	func (h *CardHandler) Routes(r cardmail.Router) {
//	    r.POST("/send-card", h.send)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect or modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Vary(next cardmail.HandlerFunc) cardmail.HandlerFunc {
//	    return func(c cardmail.Context) error {
//	        c.SetHeader("Vary", "Origin")
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
