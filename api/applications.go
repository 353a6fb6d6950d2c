package api

import (
	"mime/multipart"
	"net/http"

	"github.com/saxansaxo/backend/internal/policy"
	"github.com/saxansaxo/backend/internal/storage"
	"github.com/saxansaxo/backend/internal/validation"
	"github.com/saxansaxo/backend/pkg/models"
	"github.com/saxansaxo/backend/pkg/repository"
)

type ApplicationsHandler struct {
	applicationRepo repository.ApplicationRepo
	jobRepo         repository.JobRepo
	media           *storage.Store
}

func NewApplicationsHandler(ar repository.ApplicationRepo, jr repository.JobRepo, media *storage.Store) *ApplicationsHandler {
	return &ApplicationsHandler{applicationRepo: ar, jobRepo: jr, media: media}
}

type applicationRequest struct {
	JobID       *int64  `json:"job"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	CoverLetter *string `json:"cover_letter"`
}

func decodeApplicationRequest(r *http.Request) (*applicationRequest, *multipart.FileHeader, error) {
	if !isMultipart(r) {
		var req applicationRequest
		if err := readJSON(r, &req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}
	req := applicationRequest{
		JobID:       formInt64(r, "job"),
		FirstName:   formString(r, "first_name"),
		LastName:    formString(r, "last_name"),
		Email:       formString(r, "email"),
		Phone:       formString(r, "phone"),
		CoverLetter: formString(r, "cover_letter"),
	}
	var file *multipart.FileHeader
	if fs := r.MultipartForm.File["resume"]; len(fs) > 0 {
		file = fs[0]
	}
	return &req, file, nil
}

func (p *applicationRequest) apply(a *models.JobApplication) {
	if p.JobID != nil {
		a.JobID = *p.JobID
	}
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.CoverLetter != nil {
		a.CoverLetter = *p.CoverLetter
	}
}

func (h *ApplicationsHandler) validateApplication(r *http.Request, a *models.JobApplication, resume *multipart.FileHeader) validation.Errors {
	errs := validation.Errors{}
	if a.JobID <= 0 {
		errs.Add("job", "This field is required.")
	} else if job, err := h.jobRepo.GetJob(r.Context(), a.JobID, false); err != nil || job == nil {
		errs.Add("job", "Invalid job.")
	}
	errs.Required("first_name", a.FirstName)
	errs.MaxLen("first_name", a.FirstName, 100)
	errs.Required("last_name", a.LastName)
	errs.MaxLen("last_name", a.LastName, 100)
	if errs.Required("email", a.Email) {
		errs.Email("email", a.Email)
	}
	errs.MaxLen("phone", a.Phone, 20)
	if resume == nil && a.Resume == "" {
		errs.Add("resume", "This field is required.")
	}
	if resume != nil && !storage.AllowedExt(storage.KindResume, resume.Filename) {
		errs.Add("resume", "File extension not allowed. Allowed extensions are: "+storage.ExtList(storage.KindResume)+".")
	}
	return errs
}

// Create accepts a public or authenticated submission. A signed-in
// applicant is linked to the application; linkage is fixed at creation time.
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Applications, policy.Create, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	req, resume, err := decodeApplicationRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var a models.JobApplication
	req.apply(&a)
	if d.ForceOwner {
		a.UserID = &id.UserID
	}

	if errs := h.validateApplication(r, &a, resume); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	rel, err := saveUpload(h.media, storage.KindResume, resume)
	if err != nil {
		writeError(w, "Failed to store resume", http.StatusInternalServerError)
		return
	}
	a.Resume = rel

	if _, err := h.applicationRepo.CreateApplication(r.Context(), &a); err != nil {
		writeError(w, "Failed to store application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "Your application has been submitted successfully!"}, http.StatusCreated)
}

func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Applications, policy.List, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	list, err := h.applicationRepo.ListApplications(r.Context(), d.OwnerID)
	if err != nil {
		writeError(w, "Failed to list applications", http.StatusInternalServerError)
		return
	}

	base := requestBaseURL(r)
	out := make([]applicationView, 0, len(list))
	for _, a := range list {
		out = append(out, newApplicationView(a, base))
	}

	writeJSON(w, out, http.StatusOK)
}

func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Applications, policy.Read, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	appID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.applicationRepo.GetApplication(r.Context(), appID, d.OwnerID)
	if err != nil {
		writeError(w, "Failed to load application", http.StatusInternalServerError)
		return
	}
	if a == nil {
		// outside the owner scope the row is absent, not forbidden
		notFound(w)
		return
	}

	writeJSON(w, newApplicationView(*a, requestBaseURL(r)), http.StatusOK)
}

func (h *ApplicationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Applications, policy.Update, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	appID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.applicationRepo.GetApplication(r.Context(), appID, d.OwnerID)
	if err != nil {
		writeError(w, "Failed to load application", http.StatusInternalServerError)
		return
	}
	if a == nil {
		notFound(w)
		return
	}

	req, resume, err := decodeApplicationRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(a)

	if errs := h.validateApplication(r, a, resume); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if resume != nil {
		rel, err := saveUpload(h.media, storage.KindResume, resume)
		if err != nil {
			writeError(w, "Failed to store resume", http.StatusInternalServerError)
			return
		}
		if a.Resume != "" {
			_ = h.media.Remove(a.Resume)
		}
		a.Resume = rel
	}

	if err := h.applicationRepo.UpdateApplication(r.Context(), a); err != nil {
		writeError(w, "Failed to update application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newApplicationView(*a, requestBaseURL(r)), http.StatusOK)
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateStatus is the staff-only review operation: it accepts only a status
// value and optional notes, nothing else on the application is touched.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Applications, policy.UpdateStatus, id).Allowed {
		denyRequest(w, id)
		return
	}

	appID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.applicationRepo.GetApplication(r.Context(), appID, nil)
	if err != nil {
		writeError(w, "Failed to load application", http.StatusInternalServerError)
		return
	}
	if a == nil {
		notFound(w)
		return
	}

	var req updateStatusRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	valid := false
	for _, s := range models.ApplicationStatuses {
		if req.Status == s {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, "Invalid status", http.StatusBadRequest)
		return
	}

	notes := a.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := h.applicationRepo.UpdateApplicationStatus(r.Context(), appID, req.Status, notes); err != nil {
		writeError(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	a.Status = req.Status
	a.Notes = notes

	writeJSON(w, map[string]any{
		"message":     "Status updated successfully",
		"application": newApplicationView(*a, requestBaseURL(r)),
	}, http.StatusOK)
}

func (h *ApplicationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Applications, policy.Delete, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	appID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.applicationRepo.GetApplication(r.Context(), appID, d.OwnerID)
	if err != nil {
		writeError(w, "Failed to load application", http.StatusInternalServerError)
		return
	}
	if a == nil {
		notFound(w)
		return
	}

	if err := h.applicationRepo.DeleteApplication(r.Context(), appID); err != nil {
		writeError(w, "Failed to delete application", http.StatusInternalServerError)
		return
	}
	if a.Resume != "" {
		_ = h.media.Remove(a.Resume)
	}

	w.WriteHeader(http.StatusNoContent)
}
