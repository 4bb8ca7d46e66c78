// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/testutil"
)

func listNotices(t *testing.T, h *NotificationHandler, clientID string) []models.NoticeResponse {
	t.Helper()
	w := testutil.Serve(h.List, testutil.MakeRequest("GET", "/notifications", nil, clientID))
	testutil.AssertStatus(t, w, http.StatusOK)
	var notices []models.NoticeResponse
	testutil.AssertJSON(t, w, &notices)
	return notices
}

func TestNotifications(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewNotificationHandler(reg)
	clientID := testutil.NewClientID()

	if got := listNotices(t, handler, clientID); len(got) != 0 {
		t.Fatalf("Expected no notices for a new client, got %v", got)
	}

	demoLogin(t, reg, clientID, models.RoleAdmin)

	notices := listNotices(t, handler, clientID)
	if len(notices) != 1 {
		t.Fatalf("Expected 1 notice after demo login, got %d", len(notices))
	}
	n := notices[0]
	if n.Level != "success" || n.Message != "Signed in as admin (demo)" {
		t.Errorf("Unexpected notice %+v", n)
	}
	if n.Posted == "" {
		t.Error("Expected a humanized posted time")
	}
	if !n.ExpiresAt.After(n.PostedAt) {
		t.Error("Expected the notice to expire after it was posted")
	}

	// Notices belong to their client
	if got := listNotices(t, handler, testutil.NewClientID()); len(got) != 0 {
		t.Errorf("Expected another client to see no notices, got %d", len(got))
	}

	req := testutil.MakeRequest("DELETE", "/notifications/"+n.ID, nil, clientID)
	req.SetPathValue("id", n.ID)
	w := testutil.Serve(handler.Dismiss, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if got := listNotices(t, handler, clientID); len(got) != 0 {
		t.Errorf("Expected no notices after dismiss, got %d", len(got))
	}

	// Dismissing twice finds nothing
	req = testutil.MakeRequest("DELETE", "/notifications/"+n.ID, nil, clientID)
	req.SetPathValue("id", n.ID)
	w = testutil.Serve(handler.Dismiss, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
