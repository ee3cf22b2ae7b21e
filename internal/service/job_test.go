package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-jobboard/internal/domain"
)

func TestJobCreateRequiresCompanyOwnership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	stranger := h.register(t, "s@x.com", domain.RoleEmployer)
	c := h.company(t, e, "Acme")

	_, err := h.svc.Jobs.Create(ctx, stranger.ID, c.ID, JobInput{Title: ptr("Spy")})
	assertKind(t, err, domain.KindForbidden, "You do not own this company")
	_, err = h.svc.Jobs.Create(ctx, e.ID, 9999, JobInput{Title: ptr("Ghost")})
	assertKind(t, err, domain.KindForbidden, "You do not own this company")

	j, err := h.svc.Jobs.Create(ctx, e.ID, c.ID, JobInput{Title: ptr("Backend Engineer"), Deadline: ptr("2025-12-31")})
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusActive, j.Status)
	require.NotNil(t, j.Deadline)
	assert.Equal(t, "2025-12-31", time.Time(*j.Deadline).Format(dateLayout))
	require.NotNil(t, j.CompanyInfo)
	assert.Equal(t, "Acme", j.CompanyInfo.Name)
}

func TestJobUpdateDeleteByNonOwnerLeavesRow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	stranger := h.register(t, "s@x.com", domain.RoleEmployer)
	j := h.job(t, e, h.company(t, e, "Acme"), "Backend Engineer")

	_, err := h.svc.Jobs.Update(ctx, j.ID, stranger.ID, JobInput{Title: ptr("Changed")})
	assertKind(t, err, domain.KindForbidden, "You do not have permission to update this job")
	err = h.svc.Jobs.Delete(ctx, j.ID, stranger.ID)
	assertKind(t, err, domain.KindForbidden, "You do not have permission to delete this job")

	got, err := h.svc.Jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)

	_, err = h.svc.Jobs.Update(ctx, 9999, e.ID, JobInput{})
	assertKind(t, err, domain.KindNotFound, "Job not found")
}

func TestJobUpdateInvalidatesCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	j := h.job(t, e, h.company(t, e, "Acme"), "Backend Engineer")

	_, err := h.svc.Jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)

	updated, err := h.svc.Jobs.Update(ctx, j.ID, e.ID, JobInput{Salary: ptr("2000$"), Status: ptr("closed")})
	require.NoError(t, err)
	assert.Equal(t, j.CompanyID, updated.CompanyID)

	got, err := h.svc.Jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "2000$", got.Salary)
	assert.Equal(t, "closed", got.Status)
	require.NotNil(t, got.CompanyInfo)

	require.NoError(t, h.svc.Jobs.Delete(ctx, j.ID, e.ID))
	_, err = h.svc.Jobs.GetByID(ctx, j.ID)
	assertKind(t, err, domain.KindNotFound, "Job not found")
}

func TestJobListPaginationInvariant(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	c := h.company(t, e, "Acme")
	for i := 0; i < 7; i++ {
		h.job(t, e, c, "Engineer")
	}

	for _, limit := range []int{1, 2, 3, 7, 10} {
		for page := 1; page <= 9; page++ {
			res, err := h.svc.Jobs.List(ctx, domain.JobFilter{ListOptions: domain.ListOptions{Page: page, Limit: limit}})
			require.NoError(t, err)
			p := res.Pagination
			if int64(p.ItemsPerPage*(p.CurrentPage-1)) < p.TotalItems {
				assert.NotEmpty(t, res.Items, "limit=%d page=%d", limit, page)
			} else {
				assert.Empty(t, res.Items, "limit=%d page=%d", limit, page)
			}
			assert.Equal(t, p.CurrentPage < p.TotalPages, p.HasNextPage)
		}
	}

	first, err := h.svc.Jobs.List(ctx, domain.JobFilter{})
	require.NoError(t, err)
	require.Len(t, first.Items, 7)
	assert.Greater(t, first.Items[0].ID, first.Items[6].ID, "newest first")
}

func TestJobBlankTitleRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	c := h.company(t, e, "Acme")

	_, err := h.svc.Jobs.Create(ctx, e.ID, c.ID, JobInput{Title: ptr("   ")})
	assertKind(t, err, domain.KindBadRequest, "Job title is required")

	j := h.job(t, e, c, "  Backend Engineer ")
	assert.Equal(t, "Backend Engineer", j.Title)
	_, err = h.svc.Jobs.Update(ctx, j.ID, e.ID, JobInput{Title: ptr("\t \n")})
	assertKind(t, err, domain.KindBadRequest, "Job title is required")

	got, err := h.svc.Jobs.GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Title)
}
