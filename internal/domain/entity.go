package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin     = "admin"
	RoleEmployer  = "employer"
	RoleJobseeker = "jobseeker"
)

// DefaultRoles 启动时幂等写入
var DefaultRoles = []string{RoleAdmin, RoleEmployer, RoleJobseeker}

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       uint      `gorm:"not null;index" json:"role_id"`
	Role         *Role     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profile *UserProfile `gorm:"-" json:"profile,omitempty"`
}

func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

type UserProfile struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	UserID     uint                        `gorm:"not null;uniqueIndex" json:"user_id"`
	User       *User                       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FullName   string                      `gorm:"size:255" json:"full_name"`
	Phone      string                      `gorm:"size:20" json:"phone"`
	Address    string                      `gorm:"size:500" json:"address"`
	DOB        *datatypes.Date             `gorm:"column:dob" json:"dob"`
	Skills     string                      `gorm:"type:text" json:"skills"`
	Experience string                      `gorm:"type:text" json:"experience"`
	Education  string                      `gorm:"type:text" json:"education"`
	AvatarURL  string                      `gorm:"column:avatar_url;type:text" json:"avatar_url"`
	CVURL      datatypes.JSONSlice[string] `gorm:"column:cv_url" json:"cv_url"`
	CVText     string                      `gorm:"column:cv_text;type:text" json:"-"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// LatestCV 最近一次上传的 CV
func (p *UserProfile) LatestCV() string {
	if p == nil || len(p.CVURL) == 0 {
		return ""
	}
	return p.CVURL[len(p.CVURL)-1]
}

var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1001-5000", "5000+"}

type Company struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"`
	User           *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Size           string    `gorm:"size:50" json:"size"`
	Type           string    `gorm:"size:100" json:"type"`
	Address        string    `gorm:"size:500" json:"address"`
	Website        string    `gorm:"size:255" json:"website"`
	Phone          string    `gorm:"size:50" json:"phone"`
	Email          string    `gorm:"size:255" json:"email"`
	LogoCompanyURL string    `gorm:"column:logo_company_url;type:text" json:"logo_company_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (c *Company) OwnedBy(userID uint) bool {
	return c != nil && c.UserID != nil && *c.UserID == userID
}

// Public 对外展示不带 user_id
func (c Company) Public() Company {
	c.UserID = nil
	return c
}

type CompanySummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	LogoCompanyURL string `json:"logo_company_url"`
}

const JobStatusActive = "active"

type Job struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CompanyID    uint            `gorm:"not null;index" json:"company_id"`
	Company      *Company        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	Level        string          `gorm:"size:100" json:"level"`
	Salary       string          `gorm:"size:100" json:"salary"`
	Location     string          `gorm:"size:255" json:"location"`
	Deadline     *datatypes.Date `json:"deadline"`
	Description  string          `gorm:"type:text" json:"description"`
	Requirements string          `gorm:"type:text" json:"requirements"`
	Benefits     string          `gorm:"type:text" json:"benefits"`
	Status       string          `gorm:"size:50;not null;default:active" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	CompanyInfo *CompanySummary `gorm:"-" json:"company,omitempty"`
}

type JobSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CompanyID uint   `json:"company_id"`
	Location  string `json:"location"`
	Salary    string `json:"salary"`
}

const (
	StatusApplied            = "applied"
	StatusUnderReview        = "under_review"
	StatusInterviewScheduled = "interview_scheduled"
	StatusOffered            = "offered"
	StatusRejected           = "rejected"
)

var ApplicationStatuses = []string{StatusApplied, StatusUnderReview, StatusInterviewScheduled, StatusOffered, StatusRejected}

type JobApplication struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_job_applications_job_user" json:"job_id"`
	Job       *Job      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_job_applications_job_user;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CVURL     string    `gorm:"column:cv_url;type:text" json:"cv_url"`
	Status    string    `gorm:"size:32;not null;default:applied" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobInfo   *JobSummary       `gorm:"-" json:"job,omitempty"`
	Applicant *ApplicantSummary `gorm:"-" json:"applicant,omitempty"`
}

type ApplicantSummary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Models AutoMigrate 顺序（父表在前）
func Models() []any {
	return []any{&Role{}, &User{}, &UserProfile{}, &Company{}, &Job{}, &JobApplication{}}
}
