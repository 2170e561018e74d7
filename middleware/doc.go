// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /stats/dashboard", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). The request ID comes from the X-Request-ID header
or a fresh UUID, is echoed back in the response and is available to
handlers through RequestID(r.Context()).

# CORS Middleware

Enable cross-origin requests for the dashboard frontend:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type,
Authorization, X-Admin-Key, X-Request-ID.

# Rate Limiting

RateLimiter keeps one golang.org/x/time/rate token bucket per client IP:

	limiter := middleware.NewRateLimiter(5, 10)
	mux.HandleFunc("POST /stats/analyze", middleware.WithLogging(limiter.Limit(handler)))

Over-limit requests get 429 with Retry-After. A nil limiter is a no-op,
so callers can leave it unset to disable limiting.

# Hardening

Harden wraps the outermost handler with gorilla/handlers panic recovery
(logged through slog) and gzip compression:

	server.Handler = middleware.Harden(middleware.CORS(mux))

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Request bodies carrying initiatives are decoded with store.ReadJSON,
which validates them against the initiative schema first.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
