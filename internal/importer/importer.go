package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"go-gin-jobboard/internal/domain"
)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`(?m)^\s*//.*$`)
)

// Load 读取 JSON 数组；允许手工加的 // 和 /* */ 注释
func Load(r io.Reader) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = blockComment.ReplaceAll(raw, nil)
	raw = lineComment.ReplaceAll(raw, nil)

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("job data must be a JSON array of objects: %w", err)
	}
	return entries, nil
}

type Result struct {
	Companies      int // 新建
	CompaniesFound int // 按名称复用
	Jobs           int
	Skipped        int // 没有公司名或职位名
}

type Importer struct {
	store  domain.Store
	log    *zap.Logger
	dryRun bool
}

func New(store domain.Store, l *zap.Logger, dryRun bool) *Importer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Importer{store: store, log: l.Named("importer"), dryRun: dryRun}
}

// CompanyFrom 映射公司字段；导入的公司不归属任何用户
func CompanyFrom(e Entry) domain.Company {
	get := func(f string) string { return CompanyFields.Get(e, f) }
	return domain.Company{
		Name:        get("name"),
		Description: CleanHTML(get("description")),
		Size:        get("size"),
		Type:        get("type"),
		Address:     get("address"),
		Website:     get("website"),
		Phone:       get("phone"),
		Email:       get("email"),
	}
}

func JobFrom(e Entry) domain.Job {
	get := func(f string) string { return JobFields.Get(e, f) }
	j := domain.Job{
		Title:        get("title"),
		Level:        get("level"),
		Salary:       get("salary"),
		Location:     get("location"),
		Description:  CleanHTML(get("description")),
		Requirements: CleanHTML(get("requirements")),
		Benefits:     CleanHTML(get("benefits")),
		Status:       get("status"),
	}
	if j.Status == "" {
		j.Status = domain.JobStatusActive
	}
	if t, ok := ParseDateVN(get("deadline")); ok {
		d := datatypes.Date(t)
		j.Deadline = &d
	}
	return j
}

// Run 逐条导入；每条一个事务，公司按名称 upsert
func (im *Importer) Run(ctx context.Context, entries []Entry) (Result, error) {
	var res Result
	known := map[string]uint{}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c := CompanyFrom(e)
		if c.Name == "" {
			res.Skipped++
			continue
		}
		j := JobFrom(e)

		if im.dryRun {
			if _, ok := known[c.Name]; ok {
				res.CompaniesFound++
			} else {
				known[c.Name] = 0
				res.Companies++
			}
			if j.Title == "" {
				res.Skipped++
			} else {
				res.Jobs++
			}
			continue
		}

		var companyID uint
		var created, jobCreated bool
		err := im.store.Tx(ctx, func(tx domain.Store) error {
			id, isNew, err := upsertCompany(ctx, tx, known, &c)
			if err != nil {
				return err
			}
			companyID, created = id, isNew
			if j.Title == "" {
				return nil
			}
			j.CompanyID = id
			if err := tx.Jobs().Create(ctx, &j); err != nil {
				return err
			}
			jobCreated = true
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("entry %d (%s): %w", i, c.Name, err)
		}

		known[c.Name] = companyID
		if created {
			res.Companies++
		} else {
			res.CompaniesFound++
		}
		if jobCreated {
			res.Jobs++
		} else {
			res.Skipped++
		}
	}
	im.log.Info("import finished",
		zap.Int("entries", len(entries)),
		zap.Int("companies", res.Companies),
		zap.Int("companies_reused", res.CompaniesFound),
		zap.Int("jobs", res.Jobs),
		zap.Int("skipped", res.Skipped),
		zap.Bool("dry_run", im.dryRun),
	)
	return res, nil
}

func upsertCompany(ctx context.Context, tx domain.Store, known map[string]uint, c *domain.Company) (uint, bool, error) {
	if id, ok := known[c.Name]; ok && id != 0 {
		return id, false, nil
	}
	existing, err := tx.Companies().FindByName(ctx, c.Name)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}
	if err := tx.Companies().Create(ctx, c); err != nil {
		return 0, false, err
	}
	return c.ID, true, nil
}
