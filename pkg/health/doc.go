// Package health serves liveness and readiness checks for the preview
// server.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis":   redis.Ping(client),
//		"locales": localesCheck,
//	}))
//
// Checks answer "OK" in plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json". A failing readiness check
// answers 503.
package health
