package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/cache"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/core/storage"
	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/pkg/utils"
)

// CompanyInput 部分更新：nil 表示不改；没有 user_id 字段，归属不能通过更新改掉
type CompanyInput struct {
	Name        *string `json:"name" form:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=5000"`
	Size        *string `json:"size" form:"size" binding:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1001-5000 5000+"`
	Type        *string `json:"type" form:"type" binding:"omitempty,max=100"`
	Address     *string `json:"address" form:"address" binding:"omitempty,max=500"`
	Website     *string `json:"website" form:"website" binding:"omitempty,url"`
	Phone       *string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Email       *string `json:"email" form:"email" binding:"omitempty,email"`
}

// apply 去掉首尾空白后再校验 name，纯空白的名字在 binding 里会被当成合法
func (in CompanyInput) apply(c *domain.Company) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&c.Name, in.Name)
	set(&c.Description, in.Description)
	set(&c.Size, in.Size)
	set(&c.Type, in.Type)
	set(&c.Address, in.Address)
	set(&c.Website, in.Website)
	set(&c.Phone, in.Phone)
	set(&c.Email, in.Email)
	if utf8.RuneCountInString(c.Name) < 2 {
		return errCompanyName
	}
	return nil
}

var (
	errCompanyNotFound  = domain.NotFound("Company not found")
	errNoCompanyForUser = domain.NotFound("No company found for this user")
	errAlreadyHasCo     = domain.BadRequest("User already has a company registered")
	errCompanyRace      = domain.Conflict("User already has a company registered")
	errCompanyUpdate    = domain.Forbidden("You do not have permission to update this company")
	errCompanyDelete    = domain.Forbidden("You do not have permission to delete this company")
	errCompanyName      = domain.BadRequest("Company name must be at least 2 characters")
)

type CompanyService struct {
	store  domain.Store
	files  fileStore
	bucket string
	cache  *cache.Cache
	log    *zap.Logger
}

func NewCompanyService(store domain.Store, files fileStore, bucket string, c *cache.Cache, l *zap.Logger) *CompanyService {
	return &CompanyService{store: store, files: files, bucket: bucket, cache: c, log: l.Named("company")}
}

// Create 有 logo 时先传到临时 key，拿到 id 后再搬到 company_<id>/ 下
func (s *CompanyService) Create(ctx context.Context, userID uint, in CompanyInput, logo *File) (*domain.Company, error) {
	existing, err := s.store.Companies().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errAlreadyHasCo
	}

	c := &domain.Company{UserID: &userID}
	if err := in.apply(c); err != nil {
		return nil, err
	}

	var tmpURL string
	if logo != nil {
		tmpURL, err = s.files.put(ctx, s.bucket, "company_tmp/"+utils.NewID(), logo)
		if err != nil {
			return nil, err
		}
		c.LogoCompanyURL = tmpURL
	}

	if err := s.store.Companies().Create(ctx, c); err != nil {
		s.files.cleanup(ctx, tmpURL)
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, errCompanyRace
		}
		return nil, err
	}

	if logo != nil {
		s.relocateLogo(ctx, c, logo, tmpURL)
	}
	return c, nil
}

// relocateLogo 失败只记日志，保留临时 url
func (s *CompanyService) relocateLogo(ctx context.Context, c *domain.Company, logo *File, tmpURL string) {
	l := logger.FromContext(ctx, s.log).With(zap.Uint("company_id", c.ID))

	finalURL, err := s.files.put(ctx, s.bucket, storage.CompanyPrefix(c.ID), logo)
	if err != nil {
		l.Warn("logo relocate upload failed", zap.Error(err))
		return
	}
	c.LogoCompanyURL = finalURL
	if err := s.store.Companies().Update(ctx, c); err != nil {
		l.Warn("logo relocate update failed", zap.Error(err))
		c.LogoCompanyURL = tmpURL
		s.files.cleanup(ctx, finalURL)
		return
	}
	s.files.cleanup(ctx, tmpURL)
}

func (s *CompanyService) List(ctx context.Context, f domain.CompanyFilter) (domain.Page[domain.Company], error) {
	f.ListOptions = f.Normalize()
	rows, total, err := s.store.Companies().List(ctx, f)
	if err != nil {
		return domain.Page[domain.Company]{}, err
	}
	for i := range rows {
		rows[i] = rows[i].Public()
	}
	return domain.NewPage(rows, f.ListOptions, total), nil
}

// GetByID 对外视图，走缓存
func (s *CompanyService) GetByID(ctx context.Context, id uint) (*domain.Company, error) {
	c, err := cache.GetOrLoadJSON(s.cache, ctx, cache.CompanyKey(id), 0, func(ctx context.Context) (*domain.Company, error) {
		c, err := s.store.Companies().FindByID(ctx, id)
		if err != nil || c == nil {
			return nil, err
		}
		pub := c.Public()
		return &pub, nil
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errCompanyNotFound
	}
	return c, nil
}

func (s *CompanyService) GetMine(ctx context.Context, userID uint) (*domain.Company, error) {
	c, err := s.store.Companies().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errNoCompanyForUser
	}
	return c, nil
}

func (s *CompanyService) owned(ctx context.Context, id, userID uint, denied error) (*domain.Company, error) {
	c, err := s.store.Companies().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errCompanyNotFound
	}
	if !c.OwnedBy(userID) {
		return nil, denied
	}
	return c, nil
}

// Update 换 logo：先传新的，写库成功后再删旧的
func (s *CompanyService) Update(ctx context.Context, id, userID uint, in CompanyInput, logo *File) (*domain.Company, error) {
	c, err := s.owned(ctx, id, userID, errCompanyUpdate)
	if err != nil {
		return nil, err
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}

	oldLogo := c.LogoCompanyURL
	var newLogo string
	if logo != nil {
		if newLogo, err = s.files.put(ctx, s.bucket, storage.CompanyPrefix(c.ID), logo); err != nil {
			return nil, err
		}
		c.LogoCompanyURL = newLogo
	}

	if err := s.store.Companies().Update(ctx, c); err != nil {
		s.files.cleanup(ctx, newLogo)
		return nil, err
	}
	s.evict(ctx, id)
	if newLogo != "" && oldLogo != newLogo {
		s.files.cleanup(ctx, oldLogo)
	}
	return c, nil
}

// Delete 岗位和投递由外键级联删除
func (s *CompanyService) Delete(ctx context.Context, id, userID uint) error {
	c, err := s.owned(ctx, id, userID, errCompanyDelete)
	if err != nil {
		return err
	}
	keys, err := companyKeys(ctx, s.store, id)
	if err != nil {
		return err
	}
	if err := s.store.Companies().Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Del(ctx, keys...)
	s.files.cleanup(ctx, c.LogoCompanyURL)
	return nil
}

// evict 更新后失效公司和它名下岗位；查岗位失败至少清掉公司 key
func (s *CompanyService) evict(ctx context.Context, id uint) {
	keys, err := companyKeys(ctx, s.store, id)
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("collect job cache keys failed", zap.Uint("company_id", id), zap.Error(err))
		keys = []string{cache.CompanyKey(id)}
	}
	s.cache.Del(ctx, keys...)
}
