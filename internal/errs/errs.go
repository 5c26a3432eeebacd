// Package errs defines the HTTP error types returned by handlers and services.
//
// Every error that leaves a handler is rendered as the same envelope:
//
//	{"error": "<message>"}                       // plain errors
//	{"error": [{"field": "...", "error": "..."}]} // validation errors
package errs
