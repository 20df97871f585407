// Package server serves composed pages over HTTP.
//
// Each Page is composed on first request, mounted into an in-memory mount
// point and returned as a complete document with an ETag. Routes:
//
//	GET  /                       index of pages
//	GET  /examples/{name}        page document (?refresh recomposes)
//	POST /examples/{name}/events {"hid": "h1", "event": "click"} -> {"alerts": [...]}
//	POST /examples/{name}/reset  recompose and mount again
//	GET  /live/{name}            WebSocket with re-mounted content (Live only)
//	GET  /metrics                Prometheus metrics
//	GET  /healthz
//
// A page that fails to compose is answered with an error placeholder and
// status 500; the previously mounted content, if any, stays in place.
//
// Compositions, mounts and dispatches are traced with OpenTelemetry using
// the global tracer provider.
package server
