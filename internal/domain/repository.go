package domain

import "context"

// 仓储约定：查不到返回 (nil, nil)；唯一冲突返回 ErrDuplicate

type RoleRepository interface {
	FindByID(ctx context.Context, id uint) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	EnsureDefaults(ctx context.Context) error
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f UserFilter) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uint) (*UserProfile, error)
	Create(ctx context.Context, p *UserProfile) error
	Update(ctx context.Context, p *UserProfile) error
	Delete(ctx context.Context, id uint) error
}

type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id uint) (*Company, error)
	FindByUserID(ctx context.Context, userID uint) (*Company, error)
	FindByName(ctx context.Context, name string) (*Company, error)
	List(ctx context.Context, f CompanyFilter) ([]Company, int64, error)
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id uint) error
}

type JobRepository interface {
	Create(ctx context.Context, j *Job) error
	FindByID(ctx context.Context, id uint) (*Job, error)
	IDsByCompany(ctx context.Context, companyID uint) ([]uint, error)
	List(ctx context.Context, f JobFilter) ([]Job, int64, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id uint) error
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *JobApplication) error
	FindByID(ctx context.Context, id uint) (*JobApplication, error)
	FindByJobAndUser(ctx context.Context, jobID, userID uint) (*JobApplication, error)
	ListByUser(ctx context.Context, userID uint, f ApplicationFilter) ([]JobApplication, int64, error)
	ListByJob(ctx context.Context, jobID uint, f ApplicationFilter) ([]JobApplication, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// Store 聚合所有仓储，Tx 内拿到的是同一事务下的 Store
type Store interface {
	Roles() RoleRepository
	Users() UserRepository
	Profiles() ProfileRepository
	Companies() CompanyRepository
	Jobs() JobRepository
	Applications() ApplicationRepository
	Tx(ctx context.Context, fn func(tx Store) error) error
}
