// Package handlers contains HTTP handlers for the gitsemver HTTP API.
//
// This package provides handlers for:
//   - Version analysis operations (trigger, list, fetch by ID)
//   - Status and health endpoints (monitoring)
//   - Shared response helper functions
//
// All handlers follow a consistent pattern for error handling and response formatting,
// using the errors package for structured error handling and the server/responses
// package for standardized HTTP responses.
package handlers
