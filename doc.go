// Package cardmail relays greeting-card images by email.
//
// A browser posts a JSON body with a recipient address and a base64 image.
// The service validates it, renders the greeting copy, attaches the image
// and hands the message to Resend in a single call. Nothing is stored.
//
// # Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	svc, err := config.NewService(cfg, log)
//	if err != nil {
//	    return err
//	}
//
//	app := handlers.NewApp(svc, log, cfg.Server.RequestTimeout)
//
//	return app.Run(cfg.Server.Address, cardmail.Logger(log))
//
// handlers.NewApp is a preset of [New] with the CORS, request ID, recover and
// timeout middleware, the card routes and the JSON error envelope.
//
// # Handlers
//
// Handlers implement the [Handler] interface to declare routes and return
// errors instead of writing them:
//
//	func (h *Card) Routes(r cardmail.Router) {
//	    r.POST("/send-card", h.send)
//	}
//
// # Errors
//
// Every failure becomes the same JSON envelope:
//
//	{"ok": false, "kind": "invalid_recipient", "error": "Invalid recipient email"}
//
// Delivery failures add "details" with the provider message and "status"
// with the provider's HTTP status.
//
// # Hosting
//
// The same [App] runs as a long-lived server (cmd/cardmail serve) or as an
// AWS Lambda function behind API Gateway or Netlify Functions (cmd/function),
// where [App.Mux] feeds the chi proxy adapter.
package cardmail
