// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts the synthesis engine, the performance
// monitor and the budget tracker to a JSON API.
package api
