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

type ProfilesHandler struct {
	profileRepo repository.ProfileRepo
	userRepo    repository.UserRepo
	media       *storage.Store
}

func NewProfilesHandler(pr repository.ProfileRepo, ur repository.UserRepo, media *storage.Store) *ProfilesHandler {
	return &ProfilesHandler{profileRepo: pr, userRepo: ur, media: media}
}

type profileRequest struct {
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
}

func decodeProfileRequest(r *http.Request) (*profileRequest, *multipart.FileHeader, *multipart.FileHeader, error) {
	if !isMultipart(r) {
		var req profileRequest
		if err := readJSON(r, &req); err != nil {
			return nil, nil, nil, err
		}
		return &req, nil, nil, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, nil, err
	}
	req := profileRequest{
		Phone: formString(r, "phone"),
		Bio:   formString(r, "bio"),
	}
	var avatar, resume *multipart.FileHeader
	if fs := r.MultipartForm.File["avatar"]; len(fs) > 0 {
		avatar = fs[0]
	}
	if fs := r.MultipartForm.File["resume"]; len(fs) > 0 {
		resume = fs[0]
	}
	return &req, avatar, resume, nil
}

func (p *profileRequest) apply(m *models.UserProfile) {
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.Bio != nil {
		m.Bio = *p.Bio
	}
}

func validateProfile(m *models.UserProfile, avatar, resume *multipart.FileHeader) validation.Errors {
	errs := validation.Errors{}
	errs.MaxLen("phone", m.Phone, 20)
	if avatar != nil && !storage.AllowedExt(storage.KindAvatar, avatar.Filename) {
		errs.Add("avatar", "File extension not allowed. Allowed extensions are: "+storage.ExtList(storage.KindAvatar)+".")
	}
	if resume != nil && !storage.AllowedExt(storage.KindUserResume, resume.Filename) {
		errs.Add("resume", "File extension not allowed. Allowed extensions are: "+storage.ExtList(storage.KindUserResume)+".")
	}
	return errs
}

func (h *ProfilesHandler) view(r *http.Request, p models.UserProfile) profileView {
	u, err := h.userRepo.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		u = nil
	}
	return newProfileView(p, u, requestBaseURL(r))
}

func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Profiles, policy.List, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	list, err := h.profileRepo.ListProfiles(r.Context(), d.OwnerID)
	if err != nil {
		writeError(w, "Failed to list profiles", http.StatusInternalServerError)
		return
	}

	out := make([]profileView, 0, len(list))
	for _, p := range list {
		out = append(out, h.view(r, p))
	}

	writeJSON(w, out, http.StatusOK)
}

func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Profiles, policy.Read, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	profileID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.profileRepo.GetProfile(r.Context(), profileID, d.OwnerID)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		notFound(w)
		return
	}

	writeJSON(w, h.view(r, *p), http.StatusOK)
}

// Create makes a profile for the calling user. Registration already creates
// one, so this mostly serves accounts imported from elsewhere; a second
// profile for the same user is rejected.
func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Profiles, policy.Create, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	req, avatar, resume, err := decodeProfileRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// Ownership always comes from the caller, staff included.
	p := models.UserProfile{UserID: id.UserID}
	req.apply(&p)

	errs := validateProfile(&p, avatar, resume)
	if existing, err := h.profileRepo.GetProfileByUserID(r.Context(), p.UserID); err == nil && existing != nil {
		errs.Add("user", "A profile for this user already exists.")
	}
	if !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if avatar != nil {
		rel, err := saveUpload(h.media, storage.KindAvatar, avatar)
		if err != nil {
			writeError(w, "Failed to store avatar", http.StatusInternalServerError)
			return
		}
		p.Avatar = rel
	}
	if resume != nil {
		rel, err := saveUpload(h.media, storage.KindUserResume, resume)
		if err != nil {
			writeError(w, "Failed to store resume", http.StatusInternalServerError)
			return
		}
		p.Resume = rel
	}

	profileID, err := h.profileRepo.CreateProfile(r.Context(), &p)
	if err != nil {
		writeError(w, "Failed to create profile", http.StatusInternalServerError)
		return
	}

	created, err := h.profileRepo.GetProfile(r.Context(), profileID, nil)
	if err != nil || created == nil {
		writeError(w, "Failed to load created profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.view(r, *created), http.StatusCreated)
}

func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Profiles, policy.Update, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	profileID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.profileRepo.GetProfile(r.Context(), profileID, d.OwnerID)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		notFound(w)
		return
	}

	req, avatar, resume, err := decodeProfileRequest(r)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req.apply(p)

	if errs := validateProfile(p, avatar, resume); !errs.Empty() {
		writeValidationErrors(w, errs)
		return
	}

	if avatar != nil {
		rel, err := saveUpload(h.media, storage.KindAvatar, avatar)
		if err != nil {
			writeError(w, "Failed to store avatar", http.StatusInternalServerError)
			return
		}
		if p.Avatar != "" {
			_ = h.media.Remove(p.Avatar)
		}
		p.Avatar = rel
	}
	if resume != nil {
		rel, err := saveUpload(h.media, storage.KindUserResume, resume)
		if err != nil {
			writeError(w, "Failed to store resume", http.StatusInternalServerError)
			return
		}
		if p.Resume != "" {
			_ = h.media.Remove(p.Resume)
		}
		p.Resume = rel
	}

	if err := h.profileRepo.UpdateProfile(r.Context(), p); err != nil {
		writeError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.view(r, *p), http.StatusOK)
}

func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r)
	d := policy.Decide(policy.Profiles, policy.Delete, id)
	if !d.Allowed {
		denyRequest(w, id)
		return
	}

	profileID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.profileRepo.GetProfile(r.Context(), profileID, d.OwnerID)
	if err != nil {
		writeError(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	if p == nil {
		notFound(w)
		return
	}

	if err := h.profileRepo.DeleteProfile(r.Context(), profileID); err != nil {
		writeError(w, "Failed to delete profile", http.StatusInternalServerError)
		return
	}
	if p.Avatar != "" {
		_ = h.media.Remove(p.Avatar)
	}
	if p.Resume != "" {
		_ = h.media.Remove(p.Resume)
	}

	w.WriteHeader(http.StatusNoContent)
}
