package api_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestCompanyInfoSingleton(t *testing.T) {
	srv, repo := setupServer(t)

	// public read materializes the row with its defaults
	res, body := doJSON(t, http.MethodGet, srv.URL+"/company", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("public list: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var list []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one-element collection, got %+v", list)
	}
	if list[0].ID != 1 || list[0].Name != "Saxansaxo Technology" {
		t.Fatalf("unexpected defaults: %+v", list[0])
	}

	// any path id resolves to the same row
	res, body = doJSON(t, http.MethodGet, srv.URL+"/company/42", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get by odd id: expected 200 got %d", res.StatusCode)
	}
	var got struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("expected singleton id 1, got %d", got.ID)
	}

	// writes are staff only
	res, _ = doJSON(t, http.MethodPut, srv.URL+"/company/1", "", map[string]string{"name": "Evil Corp"})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous write: expected 401 got %d", res.StatusCode)
	}
	user := registerUser(t, srv, "reader", "str0ngpass")
	res, _ = doJSON(t, http.MethodPut, srv.URL+"/company/1", user.Access, map[string]string{"name": "Evil Corp"})
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("non-staff write: expected 403 got %d", res.StatusCode)
	}

	staff := staffToken(t, srv, repo, "admin")
	res, body = doJSON(t, http.MethodPatch, srv.URL+"/company/1", staff, map[string]string{
		"about": "We build software",
		"email": "info@saxansaxo.so",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("staff update: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var updated struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		About string `json:"about"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if updated.ID != 1 || updated.Name != "Saxansaxo Technology" || updated.About != "We build software" || updated.Email != "info@saxansaxo.so" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// POST upserts onto the same row rather than growing the collection
	res, _ = doJSON(t, http.MethodPost, srv.URL+"/company", staff, map[string]string{"name": "Saxansaxo Tech"})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("staff create: expected 201 got %d", res.StatusCode)
	}
	res, body = doJSON(t, http.MethodGet, srv.URL+"/company", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list after post: got %d", res.StatusCode)
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Saxansaxo Tech" {
		t.Fatalf("expected the singleton to absorb the write, got %+v", list)
	}
}

func TestCompanyLogoUpload(t *testing.T) {
	srv, repo := setupServer(t)
	staff := staffToken(t, srv, repo, "admin")

	res, body := doMultipart(t, http.MethodPatch, srv.URL+"/company/1", staff,
		map[string]string{"name": "Saxansaxo Technology"},
		filePart{field: "logo", filename: "logo.png", content: "png-bytes"},
	)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("logo upload: expected 200 got %d body=%s", res.StatusCode, body)
	}
	var out struct {
		LogoURL *string `json:"logo_url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.LogoURL == nil || !strings.Contains(*out.LogoURL, "/media/company/") {
		t.Fatalf("expected logo URL, got %v", out.LogoURL)
	}
}
