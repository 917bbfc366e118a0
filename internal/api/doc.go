// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts HTTP concerns to the application
// services: handlers decode and validate payloads, delegate to the
// service layer, and translate service errors into status codes and
// sanitized messages.
package api
