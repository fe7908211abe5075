// Package http implements the HTTP transport layer of the board.
// It provides middleware, route handlers, and request/response utilities
// for the web surface. Session authentication, logging and tracing are all
// handled at this layer before requests are forwarded to the service layer.
//
// Rendering is out of scope: list endpoints answer JSON, and mutations
// answer the redirects a browser form flow expects. Denials and validation
// failures are recovered here into a 303 redirect carrying an `error`
// query parameter.
package http
