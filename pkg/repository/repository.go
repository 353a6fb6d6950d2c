package repository

import (
	"context"

	"github.com/saxansaxo/backend/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// List/Get methods take scope arguments (activeOnly, ownerID) so that access
// narrowing happens in the query itself; a caller outside the scope sees
// a missing row, not a forbidden one.

type ContactRepo interface {
	CreateContactMessage(ctx context.Context, m *models.ContactMessage) (int64, error)
	GetContactMessage(ctx context.Context, id int64) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	UpdateContactMessage(ctx context.Context, m *models.ContactMessage) error
	DeleteContactMessage(ctx context.Context, id int64) error
}

type ServiceRepo interface {
	CreateService(ctx context.Context, s *models.Service) (int64, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id int64) error
}

type TeamRepo interface {
	CreateTeamMember(ctx context.Context, m *models.TeamMember) (int64, error)
	GetTeamMember(ctx context.Context, id int64, activeOnly bool) (*models.TeamMember, error)
	ListTeamMembers(ctx context.Context, activeOnly bool) ([]models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, m *models.TeamMember) error
	DeleteTeamMember(ctx context.Context, id int64) error
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) (int64, error)
	GetJob(ctx context.Context, id int64, activeOnly bool) (*models.Job, error)
	ListJobs(ctx context.Context, activeOnly bool) ([]models.Job, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	DeleteJob(ctx context.Context, id int64) error
	CountApplicationsByJob(ctx context.Context, jobID int64) (int64, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.JobApplication) (int64, error)
	// GetApplication narrows to rows owned by ownerID when non-nil.
	GetApplication(ctx context.Context, id int64, ownerID *int64) (*models.JobApplication, error)
	// ListApplications narrows to rows owned by ownerID when non-nil.
	ListApplications(ctx context.Context, ownerID *int64) ([]models.JobApplication, error)
	UpdateApplication(ctx context.Context, a *models.JobApplication) error
	UpdateApplicationStatus(ctx context.Context, id int64, status, notes string) error
	DeleteApplication(ctx context.Context, id int64) error
}

type UserRepo interface {
	// CreateUserWithProfile atomically creates the user and its paired
	// profile row; neither exists if the call fails.
	CreateUserWithProfile(ctx context.Context, u *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.UserProfile) (int64, error)
	GetProfile(ctx context.Context, id int64, ownerID *int64) (*models.UserProfile, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	ListProfiles(ctx context.Context, ownerID *int64) ([]models.UserProfile, error)
	UpdateProfile(ctx context.Context, p *models.UserProfile) error
	DeleteProfile(ctx context.Context, id int64) error
}

type CompanyRepo interface {
	// GetOrCreateCompanyInfo returns the singleton row, materializing it
	// with defaults on first access. Safe under concurrent first reads.
	GetOrCreateCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	// SaveCompanyInfo writes the singleton row regardless of c.ID.
	SaveCompanyInfo(ctx context.Context, c *models.CompanyInfo) error
}
