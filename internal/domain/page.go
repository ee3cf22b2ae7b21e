package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) Normalize() ListOptions {
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	return o
}

func (o ListOptions) Offset() int { return (o.Page - 1) * o.Limit }

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination totalPages = ceil(total/limit)
func NewPagination(o ListOptions, total int64) Pagination {
	o = o.Normalize()
	pages := int((total + int64(o.Limit) - 1) / int64(o.Limit))
	return Pagination{
		CurrentPage:  o.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: o.Limit,
		HasNextPage:  o.Page < pages,
		HasPrevPage:  o.Page > 1,
	}
}

// Page 列表结果：items + 分页信息
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

func NewPage[T any](items []T, o ListOptions, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: NewPagination(o, total)}
}

func (p Page[T]) PageItems() any        { return p.Items }
func (p Page[T]) PageInfo() *Pagination { return &p.Pagination }

type CompanyFilter struct {
	ListOptions
	Search string
	Type   string
	Size   string
}

type JobFilter struct {
	ListOptions
	Search    string
	Location  string
	CompanyID uint
	Status    string
	Level     string
}

type ApplicationFilter struct {
	ListOptions
	Status string
	JobID  uint
	UserID uint
}

type UserFilter struct {
	ListOptions
	Search string
	RoleID uint
}
