// Package httpserver provides a thin wrapper around net/http.Server with
// environment-driven configuration, graceful shutdown on SIGINT/SIGTERM, and
// health check handlers for liveness and readiness probes.
package httpserver
