// Package health runs named dependency checks and serves them over HTTP.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] executes [Checks] in parallel and answers 503 when one fails:
//
//	r.Get("/healthz", health.ReadinessHandler(health.Checks{
//		"bundles": health.Bundles(registry.Engines),
//		"redis":   redis.Healthcheck(client),
//	}))
//
// Responses are plain text unless the client asks for JSON with an
// "Accept: application/json" header or "?format=json".
//
// [Run] executes the same checks without HTTP, for CLI diagnostics.
//
// [Bundles] fails only when an engine lost its Default tier. External and
// Internal tiers may be absent.
package health
