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

// maxUploadBytes caps multipart request memory buffering.
const maxUploadBytes = 32 << 20

type TeamHandler struct {
	teamRepo repository.TeamRepo
	media    *storage.Store
}

func NewTeamHandler(tr repository.TeamRepo, media *storage.Store) *TeamHandler {
	return &TeamHandler{teamRepo: tr, media: media}
}

type teamMemberRequest struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	Bio      *string `json:"bio"`
	Email    *string `json:"email"`
	LinkedIn *string `json:"linkedin"`
	Twitter  *string `json:"twitter"`
	GitHub   *string `json:"github"`
	IsActive *bool   `json:"is_active"`
	Order    *int    `json:"order"`
}

func decodeTeamMemberRequest(r *http.Request) (*teamMemberRequest, *multipart.FileHeader, error) {
	if !isMultipart(r) {
		var req teamMemberRequest
		if err := readJSON(r, &req); err != nil {
			return nil, nil, err
		}
		return &req, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}
	req := teamMemberRequest{
		Name:     formString(r, "name"),
		Position: formString(r, "position"),
		Bio:      formString(r, "bio"),
		Email:    formString(r, "email"),
		LinkedIn: formString(r, "linkedin"),
		Twitter:  formString(r, "twitter"),
		GitHub:   formString(r, "github"),
		IsActive: formBool(r, "is_active"),
		Order:    formInt(r, "order"),
	}
	var file *multipart.FileHeader
	if fs := r.MultipartForm.File["image"]; len(fs) > 0 {
		file = fs[0]
	}
	return &req, file, nil
}

func (p *teamMemberRequest) apply(m *models.TeamMember) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Position != nil {
		m.Position = *p.Position
	}
	if p.Bio != nil {
		m.Bio = *p.Bio
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.LinkedIn != nil {
		m.LinkedIn = *p.LinkedIn
	}
	if p.Twitter != nil {
		m.Twitter = *p.Twitter
	}
	if p.GitHub != nil {
		m.GitHub = *p.GitHub
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
	if p.Order != nil {
		m.Order = *p.Order
	}
}

func validateTeamMember(m *models.TeamMember, image *multipart.FileHeader) validation.Errors {
	errs := validation.Errors{}
	errs.Required("name", m.Name)
	errs.MaxLen("name", m.Name, 100)
	errs.Required("position", m.Position)
	errs.MaxLen("position", m.Position, 100)
	errs.Email("email", m.Email)
	if image != nil && !storage.AllowedExt(storage.KindTeamImage, image.Filename) {
		errs.Add("image", "File extension not allowed. Allowed extensions are: "+storage.ExtList(storage.KindTeamImage)+".")
	}
	return errs
}

// saveUpload stores an uploaded file and returns its relative path.
func saveUpload(media *storage.Store, kind storage.Kind, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return media.Save(kind, fh.Filename, f)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.TeamMembers, policy.List, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	list, err := h.teamRepo.ListTeamMembers(r.Context(), d.ActiveOnly)
	if err != nil {
		writeError(w, "Failed to list team members", http.StatusInternalServerError)
		return
	}

	base := requestBaseURL(r)
	out := make([]teamMemberView, 0, len(list))
	for _, m := range list {
		out = append(out, newTeamMemberView(m, base))
	}

	writeJSON(w, out, http.StatusOK)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.TeamMembers, policy.Read, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	memberID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.teamRepo.GetTeamMember(r.Context(), memberID, d.ActiveOnly)
	if err != nil {
		writeError(w, "Failed to load team member", http.StatusInternalServerError)
		return
	}
	if m == nil {
		notFound(w)
		return
	}

	writeJSON(w, newTeamMemberView(*m, requestBaseURL(r)), http.StatusOK)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.TeamMembers, policy.Create, id).Allowed {
		denyRequest(w, id)
		return
	}

	req, image, err := decodeTeamMemberRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	m := models.TeamMember{IsActive: true}
	req.apply(&m)

	if errs := validateTeamMember(&m, image); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if image != nil {
		rel, err := saveUpload(h.media, storage.KindTeamImage, image)
		if err != nil {
			writeError(w, "Failed to store image", http.StatusInternalServerError)
			return
		}
		m.Image = rel
	}

	memberID, err := h.teamRepo.CreateTeamMember(r.Context(), &m)
	if err != nil {
		writeError(w, "Failed to create team member", http.StatusInternalServerError)
		return
	}

	created, err := h.teamRepo.GetTeamMember(r.Context(), memberID, false)
	if err != nil || created == nil {
		writeError(w, "Failed to load created team member", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newTeamMemberView(*created, requestBaseURL(r)), http.StatusCreated)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.TeamMembers, policy.Update, id).Allowed {
		denyRequest(w, id)
		return
	}

	memberID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.teamRepo.GetTeamMember(r.Context(), memberID, false)
	if err != nil {
		writeError(w, "Failed to load team member", http.StatusInternalServerError)
		return
	}
	if m == nil {
		notFound(w)
		return
	}

	req, image, err := decodeTeamMemberRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(m)

	if errs := validateTeamMember(m, image); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if image != nil {
		rel, err := saveUpload(h.media, storage.KindTeamImage, image)
		if err != nil {
			writeError(w, "Failed to store image", http.StatusInternalServerError)
			return
		}
		if m.Image != "" {
			_ = h.media.Remove(m.Image)
		}
		m.Image = rel
	}

	if err := h.teamRepo.UpdateTeamMember(r.Context(), m); err != nil {
		writeError(w, "Failed to update team member", http.StatusInternalServerError)
		return
	}

	writeJSON(w, newTeamMemberView(*m, requestBaseURL(r)), http.StatusOK)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	if !policy.Decide(policy.TeamMembers, policy.Delete, id).Allowed {
		denyRequest(w, id)
		return
	}

	memberID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.teamRepo.GetTeamMember(r.Context(), memberID, false)
	if err != nil {
		writeError(w, "Failed to load team member", http.StatusInternalServerError)
		return
	}
	if m == nil {
		notFound(w)
		return
	}

	if err := h.teamRepo.DeleteTeamMember(r.Context(), memberID); err != nil {
		writeError(w, "Failed to delete team member", http.StatusInternalServerError)
		return
	}
	if m.Image != "" {
		_ = h.media.Remove(m.Image)
	}

	w.WriteHeader(http.StatusNoContent)
}
