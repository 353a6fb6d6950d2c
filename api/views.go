package api

import (
	"github.com/saxansaxo/backend/pkg/models"
)

// View types are the externally-visible representations: the stored entity
// plus derived fields (absolute file URLs, live counts, denormalized
// attributes). A record without a file projects a null URL, never a broken
// one.

func fileURL(base, rel string) *string {
	if rel == "" {
		return nil
	}
	u := base + "/media/" + rel
	return &u
}

type teamMemberView struct {
	models.TeamMember
	ImageURL *string `json:"image_url"`
}

func newTeamMemberView(m models.TeamMember, base string) teamMemberView {
	return teamMemberView{TeamMember: m, ImageURL: fileURL(base, m.Image)}
}

type jobView struct {
	models.Job
	ApplicationCount int64 `json:"application_count"`
}

func newJobView(j models.Job, applicationCount int64) jobView {
	return jobView{Job: j, ApplicationCount: applicationCount}
}

type applicationView struct {
	models.JobApplication
	ResumeURL *string `json:"resume_url"`
}

func newApplicationView(a models.JobApplication, base string) applicationView {
	return applicationView{JobApplication: a, ResumeURL: fileURL(base, a.Resume)}
}

type profileView struct {
	models.UserProfile
	User      *models.User `json:"user"`
	AvatarURL *string      `json:"avatar_url"`
	ResumeURL *string      `json:"resume_url"`
}

func newProfileView(p models.UserProfile, u *models.User, base string) profileView {
	return profileView{
		UserProfile: p,
		User:        u,
		AvatarURL:   fileURL(base, p.Avatar),
		ResumeURL:   fileURL(base, p.Resume),
	}
}

type companyView struct {
	models.CompanyInfo
	LogoURL *string `json:"logo_url"`
}

func newCompanyView(c models.CompanyInfo, base string) companyView {
	return companyView{CompanyInfo: c, LogoURL: fileURL(base, c.Logo)}
}
