package api

import (
	"net/http"
	"strings"

	"github.com/saxansaxo/backend/internal/policy"
	"github.com/saxansaxo/backend/internal/validation"
	"github.com/saxansaxo/backend/pkg/models"
	"github.com/saxansaxo/backend/pkg/repository"
)

// UsersHandler is the staff-only account administration surface. Password
// changes and self-service go through the auth endpoints instead.
type UsersHandler struct {
	repo repository.UserRepo
}

func NewUsersHandler(repo repository.UserRepo) *UsersHandler {
	return &UsersHandler{repo: repo}
}

type userRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	IsStaff     *bool   `json:"is_staff"`
	IsSuperuser *bool   `json:"is_superuser"`
}

func (u *userRequest) apply(m *models.User) {
	if u.Username != nil {
		m.Username = *u.Username
	}
	if u.Email != nil {
		m.Email = *u.Email
	}
	if u.FirstName != nil {
		m.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		m.LastName = *u.LastName
	}
	if u.IsStaff != nil {
		m.IsStaff = *u.IsStaff
	}
	if u.IsSuperuser != nil {
		m.IsSuperuser = *u.IsSuperuser
	}
}

func validateUser(m *models.User) validation.Errors {
	errs := validation.Errors{}
	errs.Required("username", m.Username)
	errs.MaxLen("username", m.Username, 150)
	if m.Email != "" {
		errs.Email("email", m.Email)
	}
	errs.MaxLen("first_name", m.FirstName, 150)
	errs.MaxLen("last_name", m.LastName, 150)
	return errs
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Users, policy.List, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	users, err := h.repo.ListUsers(r.Context())
	if err != nil {
		writeError(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, users, http.StatusOK)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Users, policy.Read, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	userID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	u, err := h.repo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}
	if u == nil {
		notFound(w)
		return
	}

	writeJSON(w, u, http.StatusOK)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Users, policy.Update, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	userID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	u, err := h.repo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}
	if u == nil {
		notFound(w)
		return
	}

	var req userRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(u)

	if errs := validateUser(u); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.repo.UpdateUser(r.Context(), u); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			errs := validation.Errors{}
			errs.Add("username", "A user with that username or email already exists.")
			writeValidationErrors(w, errs)
			return
		}
		writeError(w, "Failed to update user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, u, http.StatusOK)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Users, policy.Delete, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	userID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	u, err := h.repo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, "Failed to load user", http.StatusInternalServerError)
		return
	}
	if u == nil {
		notFound(w)
		return
	}

	if err := h.repo.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
