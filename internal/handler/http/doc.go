// Package http implements the HTTP transport layer of the document vault.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Request tracing, access logging and body compression are handled in
// this package before requests are delegated to the service layer. Service
// errors are translated to status codes and generic JSON messages that never
// tell a client which retrieval factor was wrong.
package http
