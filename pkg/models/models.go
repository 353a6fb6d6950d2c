package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are unix milliseconds (UTC). File fields hold paths relative to
// the media root; empty string means no file.

// Job type choices.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// JobTypes lists the accepted job_type values.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// Application status choices.
const (
	StatusPending     = "pending"
	StatusReviewing   = "reviewing"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusAccepted    = "accepted"
)

// ApplicationStatuses lists the accepted application status values.
var ApplicationStatuses = []string{StatusPending, StatusReviewing, StatusShortlisted, StatusRejected, StatusAccepted}

type ContactMessage struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name" validate:"required"`
	Email     string `json:"email" db:"email" validate:"required,email"`
	Message   string `json:"message" db:"message" validate:"required"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type Service struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title" validate:"required"`
	Description string `json:"description" db:"description" validate:"required"`
	Icon        string `json:"icon" db:"icon"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

type TeamMember struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name" validate:"required"`
	Position  string `json:"position" db:"position" validate:"required"`
	Bio       string `json:"bio" db:"bio"`
	Email     string `json:"email" db:"email"`
	LinkedIn  string `json:"linkedin" db:"linkedin"`
	Twitter   string `json:"twitter" db:"twitter"`
	GitHub    string `json:"github" db:"github"`
	Image     string `json:"image" db:"image"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	Order     int    `json:"order" db:"sort_order"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type Job struct {
	ID                  int64   `json:"id" db:"id"`
	Title               string  `json:"title" db:"title" validate:"required"`
	Department          string  `json:"department" db:"department" validate:"required"`
	Location            string  `json:"location" db:"location" validate:"required"`
	JobType             string  `json:"job_type" db:"job_type"`
	Description         string  `json:"description" db:"description" validate:"required"`
	Requirements        string  `json:"requirements" db:"requirements" validate:"required"`
	Responsibilities    string  `json:"responsibilities" db:"responsibilities" validate:"required"`
	SalaryRange         string  `json:"salary_range" db:"salary_range"`
	IsActive            bool    `json:"is_active" db:"is_active"`
	PostedDate          int64   `json:"posted_date" db:"posted_date"`
	ApplicationDeadline *string `json:"application_deadline" db:"application_deadline"`
}

type JobApplication struct {
	ID          int64  `json:"id" db:"id"`
	JobID       int64  `json:"job" db:"job_id" validate:"required"`
	UserID      *int64 `json:"user" db:"user_id"`
	FirstName   string `json:"first_name" db:"first_name" validate:"required"`
	LastName    string `json:"last_name" db:"last_name" validate:"required"`
	Email       string `json:"email" db:"email" validate:"required,email"`
	Phone       string `json:"phone" db:"phone"`
	Resume      string `json:"resume" db:"resume" validate:"required"`
	CoverLetter string `json:"cover_letter" db:"cover_letter"`
	Status      string `json:"status" db:"status"`
	AppliedDate int64  `json:"applied_date" db:"applied_date"`
	Notes       string `json:"notes" db:"notes"`

	// Denormalized from the related job/user, populated on read.
	JobTitle  string  `json:"job_title" db:"-"`
	UserEmail *string `json:"user_email" db:"-"`
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	IsStaff      bool   `json:"is_staff" db:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser" db:"is_superuser"`
	DateJoined   int64  `json:"date_joined" db:"date_joined"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type UserProfile struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"-" db:"user_id"`
	Phone     string `json:"phone" db:"phone"`
	Bio       string `json:"bio" db:"bio"`
	Avatar    string `json:"avatar" db:"avatar"`
	Resume    string `json:"resume" db:"resume"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

// CompanyInfoID is the fixed primary key of the company_info singleton row.
const CompanyInfoID int64 = 1

type CompanyInfo struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Email     string `json:"email" db:"email" validate:"required,email"`
	Phone     string `json:"phone" db:"phone" validate:"required"`
	Address   string `json:"address" db:"address" validate:"required"`
	About     string `json:"about" db:"about" validate:"required"`
	Mission   string `json:"mission" db:"mission"`
	Vision    string `json:"vision" db:"vision"`
	Logo      string `json:"logo" db:"logo"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}
