// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/baraza/handlers"
	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/portal"
)

func NewRouter(reg *portal.Registry) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(reg)
	formHandler := handlers.NewFormHandler(reg)
	registerHandler := handlers.NewRegisterHandler(reg)
	notificationHandler := handlers.NewNotificationHandler(reg)
	geoHandler := handlers.NewGeoHandler()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session and navigation
	mux.HandleFunc("GET /session", middleware.WithLogging(sessionHandler.Get))
	mux.HandleFunc("POST /session/login", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("POST /session/demo-login", middleware.WithLogging(sessionHandler.DemoLogin))
	mux.HandleFunc("POST /session/logout", middleware.WithLogging(sessionHandler.Logout))
	mux.HandleFunc("GET /navigate", middleware.WithLogging(sessionHandler.Navigate))

	// Forms (gated by the route table)
	mux.HandleFunc("GET /forms", middleware.WithLogging(formHandler.List))
	mux.HandleFunc("GET /forms/{form}", middleware.WithLogging(formHandler.Get))
	mux.HandleFunc("PUT /forms/{form}", middleware.WithLogging(formHandler.Put))
	mux.HandleFunc("POST /forms/{form}/submit", middleware.WithLogging(formHandler.Submit))
	mux.HandleFunc("POST /forms/{form}/reset", middleware.WithLogging(formHandler.Reset))
	mux.HandleFunc("DELETE /forms/{form}/error", middleware.WithLogging(formHandler.DismissError))

	// Registration wizard
	mux.HandleFunc("GET /register", middleware.WithLogging(registerHandler.Get))
	mux.HandleFunc("PUT /register", middleware.WithLogging(registerHandler.Put))
	mux.HandleFunc("POST /register/next", middleware.WithLogging(registerHandler.Next))
	mux.HandleFunc("POST /register/back", middleware.WithLogging(registerHandler.Back))
	mux.HandleFunc("POST /register/submit", middleware.WithLogging(registerHandler.Submit))
	mux.HandleFunc("POST /register/reset", middleware.WithLogging(registerHandler.Reset))

	// Notifications
	mux.HandleFunc("GET /notifications", middleware.WithLogging(notificationHandler.List))
	mux.HandleFunc("DELETE /notifications/{id}", middleware.WithLogging(notificationHandler.Dismiss))

	// Location lists (public)
	mux.HandleFunc("GET /geo/constituencies", middleware.WithLogging(geoHandler.Constituencies))
	mux.HandleFunc("GET /geo/wards/{constituency}", middleware.WithLogging(geoHandler.Wards))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("baraza API v1"))
	})

	return middleware.WithClient(mux)
}
