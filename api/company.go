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

// CompanyHandler serves the single company_info row. Reads create the row on
// demand so the endpoint never 404s; writes always collapse onto the same id.
type CompanyHandler struct {
	repo  repository.CompanyRepo
	media *storage.Store
}

func NewCompanyHandler(repo repository.CompanyRepo, media *storage.Store) *CompanyHandler {
	return &CompanyHandler{repo: repo, media: media}
}

type companyRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	About   *string `json:"about"`
	Mission *string `json:"mission"`
	Vision  *string `json:"vision"`
}

func decodeCompanyRequest(r *http.Request) (*companyRequest, *multipart.FileHeader, error) {
	if !isMultipart(r) {
		var req companyRequest
		if err := readJSON(r, &req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}
	req := companyRequest{
		Name:    formString(r, "name"),
		Email:   formString(r, "email"),
		Phone:   formString(r, "phone"),
		Address: formString(r, "address"),
		About:   formString(r, "about"),
		Mission: formString(r, "mission"),
		Vision:  formString(r, "vision"),
	}
	var logo *multipart.FileHeader
	if fs := r.MultipartForm.File["logo"]; len(fs) > 0 {
		logo = fs[0]
	}
	return &req, logo, nil
}

func (c *companyRequest) apply(m *models.CompanyInfo) {
	if c.Name != nil {
		m.Name = *c.Name
	}
	if c.Email != nil {
		m.Email = *c.Email
	}
	if c.Phone != nil {
		m.Phone = *c.Phone
	}
	if c.Address != nil {
		m.Address = *c.Address
	}
	if c.About != nil {
		m.About = *c.About
	}
	if c.Mission != nil {
		m.Mission = *c.Mission
	}
	if c.Vision != nil {
		m.Vision = *c.Vision
	}
}

// validateCompany stays lenient on the contact fields so the bootstrapped
// row can be filled in piecemeal; only the name must never go blank.
func validateCompany(m *models.CompanyInfo, logo *multipart.FileHeader) validation.Errors {
	errs := validation.Errors{}
	errs.Required("name", m.Name)
	errs.MaxLen("name", m.Name, 200)
	errs.Email("email", m.Email)
	errs.MaxLen("phone", m.Phone, 20)
	if logo != nil && !storage.AllowedExt(storage.KindLogo, logo.Filename) {
		errs.Add("logo", "File extension not allowed. Allowed extensions are: "+storage.ExtList(storage.KindLogo)+".")
	}
	return errs
}

// List returns the singleton as a one-element collection.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Company, policy.List, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	c, err := h.repo.GetOrCreateCompanyInfo(r.Context())
	if err != nil {
		writeError(w, "Failed to load company info", http.StatusInternalServerError)
		return
	}

	writeJSON(w, []companyView{newCompanyView(*c, requestBaseURL(r))}, http.StatusOK)
}

// Get ignores the path id: every id resolves to the one row.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Company, policy.Read, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	c, err := h.repo.GetOrCreateCompanyInfo(r.Context())
	if err != nil {
		writeError(w, "Failed to load company info", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newCompanyView(*c, requestBaseURL(r)), http.StatusOK)
}

func (h *CompanyHandler) save(w http.ResponseWriter, r *http.Request, status int) {
	id := identityFrom(r)
	if d := policy.Decide(policy.Company, policy.Update, id); !d.Allowed {
		denyRequest(w, id)
		return
	}

	c, err := h.repo.GetOrCreateCompanyInfo(r.Context())
	if err != nil {
		writeError(w, "Failed to load company info", http.StatusInternalServerError)
		return
	}

	req, logo, err := decodeCompanyRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(c)

	if errs := validateCompany(c, logo); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if logo != nil {
		rel, err := saveUpload(h.media, storage.KindLogo, logo)
		if err != nil {
			writeError(w, "Failed to store logo", http.StatusInternalServerError)
			return
		}
		if c.Logo != "" {
			_ = h.media.Remove(c.Logo)
		}
		c.Logo = rel
	}

	if err := h.repo.SaveCompanyInfo(r.Context(), c); err != nil {
		writeError(w, "Failed to save company info", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newCompanyView(*c, requestBaseURL(r)), status)
}

// Create behaves as an upsert onto the singleton row.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, http.StatusCreated)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, http.StatusOK)
}
