package api

import (
	"net/http"

	"github.com/saxansaxo/backend/internal/policy"
	"github.com/saxansaxo/backend/internal/validation"
	"github.com/saxansaxo/backend/pkg/models"
	"github.com/saxansaxo/backend/pkg/repository"
)

type ServicesHandler struct {
	serviceRepo repository.ServiceRepo
}

func NewServicesHandler(sr repository.ServiceRepo) *ServicesHandler {
	return &ServicesHandler{serviceRepo: sr}
}

type serviceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (p *serviceRequest) apply(s *models.Service) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Icon != nil {
		s.Icon = *p.Icon
	}
}

func validateService(s *models.Service) validation.Errors {
	errs := validation.Errors{}
	errs.Required("title", s.Title)
	errs.MaxLen("title", s.Title, 200)
	errs.Required("description", s.Description)
	errs.MaxLen("icon", s.Icon, 50)
	return errs
}

func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Services, policy.List, id).Allowed {
		denyRequest(w, id)
		return
	}

	list, err := h.serviceRepo.ListServices(r.Context())
	if err != nil {
		writeError(w, "Failed to list services", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Service{}
	}

	writeJSON(w, list, http.StatusOK)
}

func (h *ServicesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Services, policy.Read, id).Allowed {
		denyRequest(w, id)
		return
	}

	svcID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	s, err := h.serviceRepo.GetService(r.Context(), svcID)
	if err != nil {
		writeError(w, "Failed to load service", http.StatusInternalServerError)
		return
	}
	if s == nil {
		notFound(w)
		return
	}

	writeJSON(w, s, http.StatusOK)
}

func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Services, policy.Create, id).Allowed {
		denyRequest(w, id)
		return
	}

	var req serviceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var s models.Service
	req.apply(&s)

	if errs := validateService(&s); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	svcID, err := h.serviceRepo.CreateService(r.Context(), &s)
	if err != nil {
		writeError(w, "Failed to create service", http.StatusInternalServerError)
		return
	}

	created, err := h.serviceRepo.GetService(r.Context(), svcID)
	if err != nil || created == nil {
		writeError(w, "Failed to load created service", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Services, policy.Update, id).Allowed {
		denyRequest(w, id)
		return
	}

	svcID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	s, err := h.serviceRepo.GetService(r.Context(), svcID)
	if err != nil {
		writeError(w, "Failed to load service", http.StatusInternalServerError)
		return
	}
	if s == nil {
		notFound(w)
		return
	}

	var req serviceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(s)

	if errs := validateService(s); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.serviceRepo.UpdateService(r.Context(), s); err != nil {
		writeError(w, "Failed to update service", http.StatusInternalServerError)
		return
	}

	writeJSON(w, s, http.StatusOK)
}

func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Services, policy.Delete, id).Allowed {
		denyRequest(w, id)
		return
	}

	svcID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	s, err := h.serviceRepo.GetService(r.Context(), svcID)
	if err != nil {
		writeError(w, "Failed to load service", http.StatusInternalServerError)
		return
	}
	if s == nil {
		notFound(w)
		return
	}

	if err := h.serviceRepo.DeleteService(r.Context(), svcID); err != nil {
		writeError(w, "Failed to delete service", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
