package api

import (
	"net/http"

	"log/slog"

	"github.com/saxansaxo/backend/internal/policy"
	"github.com/saxansaxo/backend/internal/validation"
	"github.com/saxansaxo/backend/pkg/models"
	"github.com/saxansaxo/backend/pkg/repository"
)

type JobsHandler struct {
	jobRepo repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobRepo: jr}
}

type jobRequest struct {
	Title               *string `json:"title"`
	Department          *string `json:"department"`
	Location            *string `json:"location"`
	JobType             *string `json:"job_type"`
	Description         *string `json:"description"`
	Requirements        *string `json:"requirements"`
	Responsibilities    *string `json:"responsibilities"`
	SalaryRange         *string `json:"salary_range"`
	IsActive            *bool   `json:"is_active"`
	ApplicationDeadline *string `json:"application_deadline"`
}

// apply overlays the provided fields; posted_date is read-only and never
// touched here.
func (p *jobRequest) apply(j *models.Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Department != nil {
		j.Department = *p.Department
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.JobType != nil {
		j.JobType = *p.JobType
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Requirements != nil {
		j.Requirements = *p.Requirements
	}
	if p.Responsibilities != nil {
		j.Responsibilities = *p.Responsibilities
	}
	if p.SalaryRange != nil {
		j.SalaryRange = *p.SalaryRange
	}
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
	if p.ApplicationDeadline != nil {
		if *p.ApplicationDeadline == "" {
			j.ApplicationDeadline = nil
		} else {
			j.ApplicationDeadline = p.ApplicationDeadline
		}
	}
}

func validateJob(j *models.Job) validation.Errors {
	errs := validation.Errors{}
	errs.Required("title", j.Title)
	errs.MaxLen("title", j.Title, 200)
	errs.Required("department", j.Department)
	errs.MaxLen("department", j.Department, 100)
	errs.Required("location", j.Location)
	errs.MaxLen("location", j.Location, 100)
	errs.OneOf("job_type", j.JobType, models.JobTypes)
	errs.Required("description", j.Description)
	errs.Required("requirements", j.Requirements)
	errs.Required("responsibilities", j.Responsibilities)
	errs.MaxLen("salary_range", j.SalaryRange, 100)
	if j.ApplicationDeadline != nil {
		errs.Date("application_deadline", *j.ApplicationDeadline)
	}
	return errs
}

func (h *JobsHandler) view(r *http.Request, j models.Job) jobView {
	count, err := h.jobRepo.CountApplicationsByJob(r.Context(), j.ID)
	if err != nil {
		logger.Error("count applications", slog.Int64("job_id", j.ID), slog.Any("err", err))
	}
	return newJobView(j, count)
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Jobs, policy.List, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	list, err := h.jobRepo.ListJobs(r.Context(), d.ActiveOnly)
	if err != nil {
		writeError(w, "Failed to list jobs", http.StatusInternalServerError)
		return
	}

	out := make([]jobView, 0, len(list))
	for _, j := range list {
		out = append(out, h.view(r, j))
	}

	writeJSON(w, out, http.StatusOK)
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Jobs, policy.Read, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	jobID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	j, err := h.jobRepo.GetJob(r.Context(), jobID, d.ActiveOnly)
	if err != nil {
		writeError(w, "Failed to load job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		notFound(w)
		return
	}

	writeJSON(w, h.view(r, *j), http.StatusOK)
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Jobs, policy.Create, id).Allowed {
		denyRequest(w, id)
		return
	}

	var req jobRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	j := models.Job{JobType: models.JobTypeFullTime, IsActive: true}
	req.apply(&j)

	if errs := validateJob(&j); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	jobID, err := h.jobRepo.CreateJob(r.Context(), &j)
	if err != nil {
		writeError(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	created, err := h.jobRepo.GetJob(r.Context(), jobID, false)
	if err != nil || created == nil {
		writeError(w, "Failed to load created job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.view(r, *created), http.StatusCreated)
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Jobs, policy.Update, id).Allowed {
		denyRequest(w, id)
		return
	}

	jobID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	j, err := h.jobRepo.GetJob(r.Context(), jobID, false)
	if err != nil {
		writeError(w, "Failed to load job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		notFound(w)
		return
	}

	var req jobRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(j)

	if errs := validateJob(j); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.jobRepo.UpdateJob(r.Context(), j); err != nil {
		writeError(w, "Failed to update job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.view(r, *j), http.StatusOK)
}

func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.Jobs, policy.Delete, id).Allowed {
		denyRequest(w, id)
		return
	}

	jobID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	j, err := h.jobRepo.GetJob(r.Context(), jobID, false)
	if err != nil {
		writeError(w, "Failed to load job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		notFound(w)
		return
	}

	// applications cascade with the job
	if err := h.jobRepo.DeleteJob(r.Context(), jobID); err != nil {
		writeError(w, "Failed to delete job", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
