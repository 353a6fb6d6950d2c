package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestContactCreatePublic(t *testing.T) {
	srv, _ := setupServer(t)

	res, body := doJSON(t, http.MethodPost, srv.URL+"/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello there",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", res.StatusCode, body)
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Message != "Thank you for your message! We will get back to you soon." {
		t.Fatalf("unexpected message: %q", out.Message)
	}

	// missing fields are rejected with per-field errors
	res, body = doJSON(t, http.MethodPost, srv.URL+"/contact", "", map[string]string{
		"name": "Visitor",
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", res.StatusCode, body)
	}
	var verr struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &verr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(verr.Errors["email"]) == 0 || len(verr.Errors["message"]) == 0 {
		t.Fatalf("expected errors on email and message, got %v", verr.Errors)
	}
}

func TestContactStaffOnlyReads(t *testing.T) {
	srv, repo := setupServer(t)

	res, _ := doJSON(t, http.MethodPost, srv.URL+"/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello there",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("seed message: got %d", res.StatusCode)
	}

	// anonymous list is 401
	res, _ = doJSON(t, http.MethodGet, srv.URL+"/contact", "", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401 got %d", res.StatusCode)
	}

	// regular users get 403
	user := registerUser(t, srv, "reader", "str0ngpass")
	res, _ = doJSON(t, http.MethodGet, srv.URL+"/contact", user.Access, nil)
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("non-staff: expected 403 got %d", res.StatusCode)
	}

	staff := staffToken(t, srv, repo, "admin")
	res, body := doJSON(t, http.MethodGet, srv.URL+"/contact", staff, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("staff list: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var list []struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Visitor" {
		t.Fatalf("unexpected list: %+v", list)
	}

	msgURL := fmt.Sprintf("%s/contact/%d", srv.URL, list[0].ID)

	res, body = doJSON(t, http.MethodGet, msgURL, staff, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("staff get: expected 200 got %d body=%s", res.StatusCode, body)
	}

	// partial update keeps untouched fields
	res, body = doJSON(t, http.MethodPatch, msgURL, staff, map[string]string{
		"message": "Edited",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("staff update: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var updated struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if updated.Message != "Edited" || updated.Name != "Visitor" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	res, _ = doJSON(t, http.MethodDelete, msgURL, staff, nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("staff delete: expected 204 got %d", res.StatusCode)
	}
	res, _ = doJSON(t, http.MethodGet, msgURL, staff, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("after delete: expected 404 got %d", res.StatusCode)
	}
}
