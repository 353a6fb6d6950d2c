package api

import (
	"net/http"

	"github.com/saxansaxo/backend/internal/policy"
	"github.com/saxansaxo/backend/internal/validation"
	"github.com/saxansaxo/backend/pkg/models"
	"github.com/saxansaxo/backend/pkg/repository"
)

type ContactHandler struct {
	contactRepo repository.ContactRepo
}

func NewContactHandler(cr repository.ContactRepo) *ContactHandler {
	return &ContactHandler{contactRepo: cr}
}

type contactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

func (p *contactRequest) apply(m *models.ContactMessage) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Message != nil {
		m.Message = *p.Message
	}
}

func validateContact(m *models.ContactMessage) validation.Errors {
	errs := validation.Errors{}
	errs.Required("name", m.Name)
	errs.MaxLen("name", m.Name, 100)
	if errs.Required("email", m.Email) {
		errs.Email("email", m.Email)
	}
	errs.Required("message", m.Message)
	return errs
}

// Create is the public contact form.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.ContactMessages, policy.Create, id).Allowed {
		denyRequest(w, id)
		return
	}

	var req contactRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var m models.ContactMessage
	req.apply(&m)

	if errs := validateContact(&m); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if _, err := h.contactRepo.CreateContactMessage(r.Context(), &m); err != nil {
		writeError(w, "Failed to store message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Thank you for your message! We will get back to you soon."}, http.StatusCreated)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.ContactMessages, policy.List, id).Allowed {
		denyRequest(w, id)
		return
	}

	list, err := h.contactRepo.ListContactMessages(r.Context())
	if err != nil {
		writeError(w, "Failed to list messages", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.ContactMessage{}
	}

	writeJSON(w, list, http.StatusOK)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.ContactMessages, policy.Read, id).Allowed {
		denyRequest(w, id)
		return
	}

	msgID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.contactRepo.GetContactMessage(r.Context(), msgID)
	if err != nil {
		writeError(w, "Failed to load message", http.StatusInternalServerError)
		return
	}
	if m == nil {
		notFound(w)
		return
	}

	writeJSON(w, m, http.StatusOK)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.ContactMessages, policy.Update, id).Allowed {
		denyRequest(w, id)
		return
	}

	msgID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.contactRepo.GetContactMessage(r.Context(), msgID)
	if err != nil {
		writeError(w, "Failed to load message", http.StatusInternalServerError)
		return
	}
	if m == nil {
		notFound(w)
		return
	}

	var req contactRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(m)

	if errs := validateContact(m); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.contactRepo.UpdateContactMessage(r.Context(), m); err != nil {
		writeError(w, "Failed to update message", http.StatusInternalServerError)
		return
	}

	writeJSON(w, m, http.StatusOK)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.ContactMessages, policy.Delete, id).Allowed {
		denyRequest(w, id)
		return
	}

	msgID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.contactRepo.GetContactMessage(r.Context(), msgID)
	if err != nil {
		writeError(w, "Failed to load message", http.StatusInternalServerError)
		return
	}
	if m == nil {
		notFound(w)
		return
	}

	if err := h.contactRepo.DeleteContactMessage(r.Context(), msgID); err != nil {
		writeError(w, "Failed to delete message", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
