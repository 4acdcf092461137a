// Package health serves liveness and readiness probes.
//
// Liveness always answers 200. Readiness runs named checks in parallel under a
// shared timeout and answers 503 with per-check details when any check fails:
//
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"card": func(context.Context) error { return svc.Ready() },
//	}))
package health
