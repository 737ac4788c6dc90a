// Package server provides the HTTP server: a gin engine mounted on a
// ServeMux, h2c support, graceful shutdown, and the error response envelope.
package server
