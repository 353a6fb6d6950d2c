package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func applyMultipart(t *testing.T, srv, token string, jobID int64, email string) (*http.Response, []byte) {
	t.Helper()
	return doMultipart(t, http.MethodPost, srv+"/applications", token,
		map[string]string{
			"job":        fmt.Sprintf("%d", jobID),
			"first_name": "Ayan",
			"last_name":  "Mohamed",
			"email":      email,
		},
		filePart{field: "resume", filename: "cv.pdf", content: "pdf-bytes"},
	)
}

func TestApplicationCreate(t *testing.T) {
	srv, repo := setupServer(t)
	staff := staffToken(t, srv, repo, "admin")
	jobID := seedJob(t, srv.URL, staff, nil)

	// anonymous submission works
	res, body := applyMultipart(t, srv.URL, "", jobID, "anon@example.com")
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("anonymous apply: expected 201 got %d body=%s", res.StatusCode, body)
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Message != "Your application has been submitted successfully!" {
		t.Fatalf("unexpected message: %q", out.Message)
	}

	// missing resume is rejected
	res, body = doJSON(t, http.MethodPost, srv.URL+"/applications", "", map[string]any{
		"job": jobID, "first_name": "A", "last_name": "B", "email": "a@b.com",
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("no resume: expected 400 got %d body=%s", res.StatusCode, body)
	}
	var verr struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &verr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(verr.Errors["resume"]) == 0 {
		t.Fatalf("expected resume error, got %v", verr.Errors)
	}

	// unknown job is rejected
	res, body = doMultipart(t, http.MethodPost, srv.URL+"/applications", "",
		map[string]string{"job": "9999", "first_name": "A", "last_name": "B", "email": "a@b.com"},
		filePart{field: "resume", filename: "cv.pdf", content: "x"},
	)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad job: expected 400 got %d body=%s", res.StatusCode, body)
	}

	// wrong resume extension is rejected
	res, body = doMultipart(t, http.MethodPost, srv.URL+"/applications", "",
		map[string]string{"job": fmt.Sprintf("%d", jobID), "first_name": "A", "last_name": "B", "email": "a@b.com"},
		filePart{field: "resume", filename: "cv.exe", content: "x"},
	)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad extension: expected 400 got %d body=%s", res.StatusCode, body)
	}
}

func TestApplicationOwnerScoping(t *testing.T) {
	srv, repo := setupServer(t)
	staff := staffToken(t, srv, repo, "admin")
	jobID := seedJob(t, srv.URL, staff, nil)

	alice := registerUser(t, srv, "alice", "str0ngpass")
	bob := registerUser(t, srv, "bob", "str0ngpass")

	// alice applies signed in, an anonymous visitor applies too
	if res, body := applyMultipart(t, srv.URL, alice.Access, jobID, "alice@example.com"); res.StatusCode != http.StatusCreated {
		t.Fatalf("alice apply: got %d body=%s", res.StatusCode, body)
	}
	if res, body := applyMultipart(t, srv.URL, "", jobID, "anon@example.com"); res.StatusCode != http.StatusCreated {
		t.Fatalf("anon apply: got %d body=%s", res.StatusCode, body)
	}

	// anonymous listing is denied
	res, _ := doJSON(t, http.MethodGet, srv.URL+"/applications", "", nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401 got %d", res.StatusCode)
	}

	// alice sees only her own application, linked to her account
	res, body := doJSON(t, http.MethodGet, srv.URL+"/applications", alice.Access, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("alice list: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var mine []struct {
		ID        int64   `json:"id"`
		User      *int64  `json:"user"`
		JobTitle  string  `json:"job_title"`
		UserEmail *string `json:"user_email"`
		ResumeURL *string `json:"resume_url"`
	}
	if err := json.Unmarshal(body, &mine); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected exactly alice's application, got %+v", mine)
	}
	if mine[0].User == nil {
		t.Fatal("expected application linked to alice")
	}
	if mine[0].JobTitle != "Backend Engineer" {
		t.Fatalf("expected denormalized job title, got %q", mine[0].JobTitle)
	}
	if mine[0].UserEmail == nil || *mine[0].UserEmail != "alice@example.com" {
		t.Fatalf("expected denormalized user email, got %v", mine[0].UserEmail)
	}
	if mine[0].ResumeURL == nil || !strings.Contains(*mine[0].ResumeURL, "/media/resumes/") {
		t.Fatalf("expected resume URL, got %v", mine[0].ResumeURL)
	}

	// bob has none
	res, body = doJSON(t, http.MethodGet, srv.URL+"/applications", bob.Access, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("bob list: expected 200 got %d", res.StatusCode)
	}
	var bobs []json.RawMessage
	if err := json.Unmarshal(body, &bobs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(bobs) != 0 {
		t.Fatalf("expected empty list for bob, got %s", body)
	}

	// a foreign application reads as absent, not forbidden
	aliceURL := fmt.Sprintf("%s/applications/%d", srv.URL, mine[0].ID)
	res, _ = doJSON(t, http.MethodGet, aliceURL, bob.Access, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign get: expected 404 got %d", res.StatusCode)
	}
	res, _ = doJSON(t, http.MethodGet, aliceURL, alice.Access, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("own get: expected 200 got %d", res.StatusCode)
	}

	// staff sees everything
	res, body = doJSON(t, http.MethodGet, srv.URL+"/applications", staff, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("staff list: expected 200 got %d", res.StatusCode)
	}
	var all []json.RawMessage
	if err := json.Unmarshal(body, &all); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both applications for staff, got %d", len(all))
	}
}

func TestApplicationUpdateStatus(t *testing.T) {
	srv, repo := setupServer(t)
	staff := staffToken(t, srv, repo, "admin")
	jobID := seedJob(t, srv.URL, staff, nil)

	alice := registerUser(t, srv, "alice", "str0ngpass")
	if res, body := applyMultipart(t, srv.URL, alice.Access, jobID, "alice@example.com"); res.StatusCode != http.StatusCreated {
		t.Fatalf("apply: got %d body=%s", res.StatusCode, body)
	}

	res, body := doJSON(t, http.MethodGet, srv.URL+"/applications", alice.Access, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list: got %d", res.StatusCode)
	}
	var mine []struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &mine); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(mine) != 1 || mine[0].Status != "pending" {
		t.Fatalf("expected one pending application, got %+v", mine)
	}

	statusURL := fmt.Sprintf("%s/applications/%d/update_status", srv.URL, mine[0].ID)

	// applicants cannot move their own application
	res, _ = doJSON(t, http.MethodPatch, statusURL, alice.Access, map[string]string{"status": "accepted"})
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("non-staff status change: expected 403 got %d", res.StatusCode)
	}

	// bogus status is rejected
	res, body = doJSON(t, http.MethodPatch, statusURL, staff, map[string]string{"status": "maybe"})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus status: expected 400 got %d body=%s", res.StatusCode, body)
	}
	var badOut struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &badOut); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if badOut.Error != "Invalid status" {
		t.Fatalf("unexpected error: %q", badOut.Error)
	}

	res, body = doJSON(t, http.MethodPatch, statusURL, staff, map[string]string{
		"status": "shortlisted",
		"notes":  "strong portfolio",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status change: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var out struct {
		Message     string `json:"message"`
		Application struct {
			Status string `json:"status"`
			Notes  string `json:"notes"`
		} `json:"application"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Message != "Status updated successfully" {
		t.Fatalf("unexpected message: %q", out.Message)
	}
	if out.Application.Status != "shortlisted" || out.Application.Notes != "strong portfolio" {
		t.Fatalf("unexpected application: %+v", out.Application)
	}

	// notes survive a status-only change
	res, body = doJSON(t, http.MethodPatch, statusURL, staff, map[string]string{"status": "accepted"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("second change: expected 200 got %d body=%s", res.StatusCode, body)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Application.Status != "accepted" || out.Application.Notes != "strong portfolio" {
		t.Fatalf("notes were lost: %+v", out.Application)
	}
}
