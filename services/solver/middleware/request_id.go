// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the solver service.
//
// # Request flow
//
//	Request
//	   │
//	   ▼
//	RequestID ──► reuse X-Request-ID if it is a UUID, else generate one
//	   │
//	   ▼
//	RateLimit ──► 429 when the token bucket is empty
//	   │
//	   ▼
//	Handler (retrieves the ID via GetRequestID)
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// =============================================================================
// Context Keys
// =============================================================================

// HeaderRequestID is read from requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// requestIDKey is the gin context key for the request ID.
const requestIDKey = "quadsolve_request_id"

// =============================================================================
// Context Helpers
// =============================================================================

// GetRequestID returns the ID assigned by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(requestIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// =============================================================================
// Request ID Middleware
// =============================================================================

// RequestID assigns every request an ID.
//
// # Description
//
// An incoming X-Request-ID header is kept when it parses as a UUID so
// callers can correlate across services. Anything else is replaced with a
// fresh random UUID. The ID is stored in the gin context and set on the
// response header before the handler runs.
//
// # Examples
//
//	router.Use(middleware.RequestID())
//
// # Thread Safety
//
// Safe for concurrent use.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
