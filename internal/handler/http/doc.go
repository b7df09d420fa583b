// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the auth
// API. Identity resolution, request tracing, access logging and response
// compression are handled in this package before requests are delegated to
// the service layer. Service errors are translated into status codes and
// JSON error bodies in one place (see errors_mapper.go).
package http
