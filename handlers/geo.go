// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
)

// GeoHandler serves the constituency and ward lists the location
// selectors are built from. It needs no session.
type GeoHandler struct{}

func NewGeoHandler() *GeoHandler {
	return &GeoHandler{}
}

// Constituencies handles GET /geo/constituencies
func (h *GeoHandler) Constituencies(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.Constituencies)
}

// Wards handles GET /geo/wards/{constituency}
func (h *GeoHandler) Wards(w http.ResponseWriter, r *http.Request) {
	wards, ok := models.Wards[r.PathValue("constituency")]
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Constituency not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, wards)
}
