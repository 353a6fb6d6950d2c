package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/saxansaxo/backend/internal/policy"
	"github.com/saxansaxo/backend/internal/validation"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, map[string]string{"error": msg}, status)
}

// writeValidationErrors reports every failing field together.
func writeValidationErrors(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, map[string]any{
		"errors":  errs,
		"message": "Validation failed. Please check your input.",
	}, http.StatusBadRequest)
}

func notFound(w http.ResponseWriter) {
	writeError(w, "Not found", http.StatusNotFound)
}

// denyRequest reports a policy denial: anonymous callers get 401,
// authenticated ones 403.
func denyRequest(w http.ResponseWriter, id policy.Identity) {
	if !id.IsAuthenticated() {
		writeError(w, "Authentication credentials were not provided", http.StatusUnauthorized)
		return
	}
	writeError(w, "You do not have permission to perform this action", http.StatusForbidden)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// requestBaseURL derives the absolute origin of the current request for
// building file URLs.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

// multipart field helpers: a field only counts as provided when the form
// actually carries it, so partial updates leave absent fields alone.

func formString(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

func formBool(r *http.Request, key string) *bool {
	s := formString(r, key)
	if s == nil {
		return nil
	}
	b := *s == "true" || *s == "1"
	return &b
}

func formInt(r *http.Request, key string) *int {
	s := formString(r, key)
	if s == nil {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return nil
	}
	return &n
}

func formInt64(r *http.Request, key string) *int64 {
	s := formString(r, key)
	if s == nil {
		return nil
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
