package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-jobboard/internal/core/llm"
	"go-gin-jobboard/internal/domain"
)

func TestGuestChat(t *testing.T) {
	h := newHarness(t)
	res, err := h.svc.Chat.Guest(context.Background(), ChatInput{Question: "  How do I write a CV?  "})
	require.NoError(t, err)
	assert.Equal(t, "How do I write a CV?", res.Question)
	assert.Equal(t, "Sure.", res.Answer)
	assert.Contains(t, h.llm.lastPrompt(), "Question: How do I write a CV?")
	assert.Contains(t, h.llm.lastPrompt(), "do not use emoji")

	_, err = h.svc.Chat.Guest(context.Background(), ChatInput{Question: "   "})
	assertKind(t, err, domain.KindBadRequest, "Question is required")
}

func TestJobseekerChatUsesProfile(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	j := h.register(t, "j@x.com", domain.RoleJobseeker)

	res, err := h.svc.Chat.Jobseeker(ctx, j.ID, ChatInput{Question: "Which jobs fit me?"})
	require.NoError(t, err)
	assert.Equal(t, "No information", res.JobseekerInfo)
	_, err = h.svc.Profiles.GetByUserID(ctx, j.ID)
	require.NoError(t, err, "chat creates the profile")

	_, err = h.svc.Profiles.UpdateMine(ctx, j.ID, ProfileInput{FullName: ptr("Le C"), Skills: ptr("Go, SQL")}, ProfileFiles{})
	require.NoError(t, err)
	res, err = h.svc.Chat.Jobseeker(ctx, j.ID, ChatInput{Question: "Which jobs fit me?"})
	require.NoError(t, err)
	assert.Equal(t, "Full name: Le C, Skills: Go, SQL", res.JobseekerInfo)
	assert.Contains(t, h.llm.lastPrompt(), "Jobseeker information: Full name: Le C")
}

func TestEmployerChat(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e := h.register(t, "e@x.com", domain.RoleEmployer)
	c := h.company(t, e, "Acme")
	j := h.job(t, e, c, "Backend Engineer")
	seeker := h.register(t, "s@x.com", domain.RoleJobseeker)
	_, err := h.svc.Profiles.UpdateMine(ctx, seeker.ID, ProfileInput{FullName: ptr("Pham D")}, ProfileFiles{})
	require.NoError(t, err)
	a, err := h.svc.Applications.Apply(ctx, seeker.ID, j.ID)
	require.NoError(t, err)

	_, err = h.svc.Chat.Employer(ctx, EmployerChatInput{Question: "q", CompanyID: 9999})
	assertKind(t, err, domain.KindNotFound, "Company not found")

	res, err := h.svc.Chat.Employer(ctx, EmployerChatInput{Question: "Is this candidate a fit?", CompanyID: c.ID, JobID: &j.ID, JobApplicationID: &a.ID})
	require.NoError(t, err)
	assert.Equal(t, "Company name: Acme", res.CompanyInfo)
	assert.Equal(t, "Title: Backend Engineer", res.JobInfo)
	assert.Equal(t, "Full name: Pham D", res.JobseekerInfo)

	res, err = h.svc.Chat.Employer(ctx, EmployerChatInput{Question: "Hi", CompanyID: c.ID, JobID: ptr(uint(9999))})
	require.NoError(t, err)
	assert.Equal(t, "No information", res.JobInfo)
	assert.Equal(t, "No information", res.JobseekerInfo)
}

func TestChatCompletionFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.llm.err = errors.New("upstream 502: secret details")
	_, err := h.svc.Chat.Guest(ctx, ChatInput{Question: "hi"})
	assertKind(t, err, domain.KindInternal, "Failed to get response from chatbot service")

	h.llm.err = llm.ErrEmptyAnswer
	res, err := h.svc.Chat.Guest(ctx, ChatInput{Question: "hi"})
	require.NoError(t, err)
	assert.Equal(t, fallbackAnswer, res.Answer)

	h.llm.err, h.llm.answer = nil, "  "
	res, err = h.svc.Chat.Guest(ctx, ChatInput{Question: "hi"})
	require.NoError(t, err)
	assert.Equal(t, fallbackAnswer, res.Answer)
}
