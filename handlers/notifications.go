// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/portal"
)

type NotificationHandler struct {
	reg *portal.Registry
}

func NewNotificationHandler(reg *portal.Registry) *NotificationHandler {
	return &NotificationHandler{reg: reg}
}

// List handles GET /notifications
// Returns the unexpired notices, oldest first
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	active := ws.Notices.Active()
	resp := make([]models.NoticeResponse, 0, len(active))
	for _, n := range active {
		resp = append(resp, models.NoticeResponse{
			ID:        n.ID,
			Level:     string(n.Level),
			Message:   n.Message,
			PostedAt:  n.PostedAt,
			ExpiresAt: n.ExpiresAt,
			Posted:    humanize.Time(n.PostedAt),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Dismiss handles DELETE /notifications/{id}
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	if !ws.Notices.Dismiss(r.PathValue("id")) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
