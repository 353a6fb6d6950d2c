package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saxansaxo/backend/api"
	dbfs "github.com/saxansaxo/backend/db"
	"github.com/saxansaxo/backend/internal/config"
	dbpkg "github.com/saxansaxo/backend/internal/db"
	sqlite "github.com/saxansaxo/backend/internal/repository/sqlite"
	"github.com/saxansaxo/backend/internal/storage"
)

// setupServer wires the full router against a fresh named in-memory database
// so tests exercise the real middleware, policy and repository stack.
func setupServer(t *testing.T) (*httptest.Server, *sqlite.SQLiteRepo) {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	d, err := dbpkg.New(ctx, dsn)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// generous rate limits so only the throttle tests hit them
	cfg := &config.Config{
		JWTSecret:       "testsecret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		RateRPS:         1000,
		RateBurst:       1000,
	}
	media := storage.New(t.TempDir())

	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "test", d, media))
	t.Cleanup(func() {
		srv.Close()
		http.DefaultTransport.(*http.Transport).CloseIdleConnections()
	})

	return srv, sqlite.New(d)
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func registerUser(t *testing.T, srv *httptest.Server, username, password string) tokenPair {
	t.Helper()
	res, body := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"password":  password,
		"password2": password,
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d body=%s", username, res.StatusCode, body)
	}
	var pair tokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	return pair
}

func loginUser(t *testing.T, srv *httptest.Server, username, password string) tokenPair {
	t.Helper()
	res, body := doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d body=%s", username, res.StatusCode, body)
	}
	var pair tokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	return pair
}

// staffToken registers an account, promotes it and signs in again so the
// token carries the staff flag.
func staffToken(t *testing.T, srv *httptest.Server, repo *sqlite.SQLiteRepo, username string) string {
	t.Helper()
	ctx := context.Background()

	registerUser(t, srv, username, "str0ngpass")
	u, err := repo.GetUserByUsername(ctx, username)
	if err != nil || u == nil {
		t.Fatalf("load user %s: %v", username, err)
	}
	u.IsStaff = true
	if err := repo.UpdateUser(ctx, u); err != nil {
		t.Fatalf("promote user %s: %v", username, err)
	}

	return loginUser(t, srv, username, "str0ngpass").Access
}
