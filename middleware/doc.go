// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (client,
duration_ms).

# Client Identity

WithClient issues the baraza_client cookie on first contact and stores
the ID in the request context:

	handler := middleware.WithClient(mux)
	id := middleware.ClientID(r.Context())

# CORS Middleware

Enable cross-origin requests for the configured frontends:

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins)(handler),
	}

Listed origins may use GET, POST, PUT, DELETE and OPTIONS with credentials,
so the client cookie survives cross-origin calls. Any other origin gets no
CORS headers and the browser blocks the response.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.DemoLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
