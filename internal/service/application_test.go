package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-jobboard/internal/domain"
)

type appFixture struct {
	employer, seeker *domain.User
	job              *domain.Job
}

func newAppFixture(t *testing.T, h *harness) appFixture {
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	return appFixture{
		employer: e,
		seeker:   h.register(t, "j@x.com", domain.RoleJobseeker),
		job:      h.job(t, e, h.company(t, e, "Acme"), "Backend Engineer"),
	}
}

func TestApplyTwice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := newAppFixture(t, h)

	a, err := h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, a.Status)
	assert.Empty(t, a.CVURL)

	_, err = h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	assertKind(t, err, domain.KindBadRequest, "You have already applied for this job")

	var n int64
	require.NoError(t, h.store.DB().Model(&domain.JobApplication{}).
		Where("job_id = ? AND user_id = ?", f.job.ID, f.seeker.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = h.svc.Applications.Apply(ctx, f.seeker.ID, 9999)
	assertKind(t, err, domain.KindNotFound, "Job not found")
}

func TestApplySnapshotsLatestCV(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := newAppFixture(t, h)

	cv := func(name string) File {
		return File{Name: name, ContentType: "application/msword", Data: []byte("doc")}
	}
	p, err := h.svc.Profiles.UpdateMine(ctx, f.seeker.ID, ProfileInput{}, ProfileFiles{CVs: []File{cv("old.doc"), cv("new.doc")}})
	require.NoError(t, err)
	require.Len(t, p.CVURL, 2)

	a, err := h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)
	assert.Equal(t, p.CVURL[1], a.CVURL)
}

func TestApplicationScenarioMyApplications(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := newAppFixture(t, h)
	_, err := h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)

	mine, err := h.svc.Applications.ListMine(ctx, f.seeker.ID, domain.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, domain.StatusApplied, mine.Items[0].Status)
	require.NotNil(t, mine.Items[0].JobInfo)
	assert.Equal(t, "Backend Engineer", mine.Items[0].JobInfo.Title)
}

func TestListForJobOwnership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := newAppFixture(t, h)
	_, err := h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)
	rival := h.register(t, "r@x.com", domain.RoleEmployer)

	_, err = h.svc.Applications.ListForJob(ctx, f.job.ID, rival.ID, domain.ApplicationFilter{})
	assertKind(t, err, domain.KindForbidden, "You do not own this job")
	_, err = h.svc.Applications.ListForJob(ctx, 9999, f.employer.ID, domain.ApplicationFilter{})
	assertKind(t, err, domain.KindNotFound, "Job not found")

	res, err := h.svc.Applications.ListForJob(ctx, f.job.ID, f.employer.ID, domain.ApplicationFilter{UserID: f.seeker.ID})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Items[0].Applicant)
	assert.Equal(t, "j@x.com", res.Items[0].Applicant.Email)
}

func TestUpdateStatusOnlyByEmployer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := newAppFixture(t, h)
	a, err := h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)

	_, err = h.svc.Applications.UpdateStatus(ctx, a.ID, f.seeker.ID, domain.StatusOffered)
	assertKind(t, err, domain.KindForbidden, "You do not have permission to update this application")

	// 流转不受限制：applied 直接到 offered
	got, err := h.svc.Applications.UpdateStatus(ctx, a.ID, f.employer.ID, domain.StatusOffered)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffered, got.Status)

	reread, err := h.svc.Applications.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOffered, reread.Status)
	require.NotNil(t, reread.JobInfo)

	_, err = h.svc.Applications.GetByID(ctx, 9999)
	assertKind(t, err, domain.KindNotFound, "Application not found")
}

func TestDeleteApplicationPermissions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := newAppFixture(t, h)
	stranger := h.register(t, "s@x.com", domain.RoleJobseeker)

	a, err := h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)
	err = h.svc.Applications.Delete(ctx, a.ID, stranger.ID)
	assertKind(t, err, domain.KindForbidden, "You do not have permission to delete this application")
	require.NoError(t, h.svc.Applications.Delete(ctx, a.ID, f.seeker.ID))

	a, err = h.svc.Applications.Apply(ctx, f.seeker.ID, f.job.ID)
	require.NoError(t, err)
	require.NoError(t, h.svc.Applications.Delete(ctx, a.ID, f.employer.ID))
}
