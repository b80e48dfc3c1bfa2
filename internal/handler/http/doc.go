// Package http implements the HTTP transport layer of the project tracker.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Requests are authenticated, traced and access-logged here; bodies are
// date-coerced and checked against the entity schemas before the single
// service call each handler makes. Every answer uses the
// [models.Response] envelope.
package http
