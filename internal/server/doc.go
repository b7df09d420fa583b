// Package server runs the HTTP transport and the background workers as one
// process lifecycle: start, wait for a termination signal, then shut both
// down gracefully.
package server
