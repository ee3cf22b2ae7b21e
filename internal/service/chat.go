package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/llm"
	"go-gin-jobboard/internal/core/logger"
	"go-gin-jobboard/internal/core/metrics"
	"go-gin-jobboard/internal/domain"
)

const (
	noInformation   = "No information"
	fallbackAnswer  = "Sorry, I cannot answer this question."
	cvExcerptLimit  = 2000
	chatFailMessage = "Failed to get response from chatbot service"
)

type ChatInput struct {
	Question string `json:"question" binding:"required,min=1,max=2000"`
}

type EmployerChatInput struct {
	Question         string `json:"question" binding:"required,min=1,max=2000"`
	CompanyID        uint   `json:"companyId" binding:"required,min=1"`
	JobID            *uint  `json:"jobId" binding:"omitempty,min=1"`
	JobApplicationID *uint  `json:"jobApplicationId" binding:"omitempty,min=1"`
}

type GuestAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type JobseekerAnswer struct {
	Question      string `json:"question"`
	JobseekerInfo string `json:"jobseekerInfo"`
	Answer        string `json:"answer"`
}

type EmployerAnswer struct {
	Question      string `json:"question"`
	CompanyInfo   string `json:"companyInfo"`
	JobInfo       string `json:"jobInfo"`
	JobseekerInfo string `json:"jobseekerInfo"`
	Answer        string `json:"answer"`
}

type ChatService struct {
	store domain.Store
	llm   llm.Completer
	log   *zap.Logger
}

func NewChatService(store domain.Store, c llm.Completer, l *zap.Logger) *ChatService {
	return &ChatService{store: store, llm: c, log: l.Named("chat")}
}

func buildPrompt(question, jobseekerInfo, companyInfo, jobInfo string) string {
	return "As a smart recruiting and career assistant, answer the following question based on the information provided.\n" +
		"Answer in a concise, well-structured format and do not use emoji.\n" +
		"Jobseeker information: " + jobseekerInfo + "\n" +
		"Company information: " + companyInfo + "\n" +
		"Job information: " + jobInfo + "\n" +
		"Question: " + question
}

// labeled 只保留非空字段，用 ", " 拼接
type labeled []string

func (l *labeled) add(label, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*l = append(*l, label+": "+v)
	}
}

func (l labeled) String() string { return strings.Join(l, ", ") }

func formatJobseekerInfo(p *domain.UserProfile) string {
	if p == nil {
		return ""
	}
	var parts labeled
	parts.add("Full name", p.FullName)
	parts.add("Phone", p.Phone)
	parts.add("Address", p.Address)
	if p.DOB != nil {
		parts.add("Date of birth", time.Time(*p.DOB).Format(dateLayout))
	}
	parts.add("Skills", p.Skills)
	parts.add("Experience", p.Experience)
	parts.add("Education", p.Education)
	parts.add("CV", truncateRunes(p.CVText, cvExcerptLimit))
	return parts.String()
}

func formatCompanyInfo(c *domain.Company) string {
	if c == nil {
		return ""
	}
	var parts labeled
	parts.add("Company name", c.Name)
	parts.add("Description", c.Description)
	parts.add("Type", c.Type)
	parts.add("Size", c.Size)
	parts.add("Address", c.Address)
	parts.add("Website", c.Website)
	return parts.String()
}

func formatJobInfo(j *domain.Job) string {
	if j == nil {
		return ""
	}
	var parts labeled
	parts.add("Title", j.Title)
	parts.add("Description", j.Description)
	parts.add("Requirements", j.Requirements)
	parts.add("Salary", j.Salary)
	parts.add("Location", j.Location)
	parts.add("Level", j.Level)
	if j.Deadline != nil {
		parts.add("Deadline", time.Time(*j.Deadline).Format(dateLayout))
	}
	return parts.String()
}

func orNoInfo(s string) string {
	if s == "" {
		return noInformation
	}
	return s
}

func (s *ChatService) complete(ctx context.Context, audience, prompt string) (answer string, err error) {
	defer func() { metrics.ChatTotal.WithLabelValues(audience, metrics.Status(err)).Inc() }()

	answer, err = s.llm.Complete(ctx, "", prompt)
	if errors.Is(err, llm.ErrEmptyAnswer) || (err == nil && strings.TrimSpace(answer) == "") {
		return fallbackAnswer, nil
	}
	if err != nil {
		logger.FromContext(ctx, s.log).Error("chat completion failed", zap.String("audience", audience), zap.Error(err))
		return "", domain.Internal(chatFailMessage, err)
	}
	return answer, nil
}

func question(q string) (string, error) {
	if q = strings.TrimSpace(q); q == "" {
		return "", domain.BadRequest("Question is required")
	}
	return q, nil
}

func (s *ChatService) Guest(ctx context.Context, in ChatInput) (*GuestAnswer, error) {
	q, err := question(in.Question)
	if err != nil {
		return nil, err
	}
	answer, err := s.complete(ctx, "guest", buildPrompt(q, "", "", ""))
	if err != nil {
		return nil, err
	}
	return &GuestAnswer{Question: q, Answer: answer}, nil
}

// Jobseeker 没有档案时先建空档案
func (s *ChatService) Jobseeker(ctx context.Context, userID uint, in ChatInput) (*JobseekerAnswer, error) {
	q, err := question(in.Question)
	if err != nil {
		return nil, err
	}
	p, err := ensureProfile(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	info := formatJobseekerInfo(p)
	answer, err := s.complete(ctx, "jobseeker", buildPrompt(q, info, "", ""))
	if err != nil {
		return nil, err
	}
	return &JobseekerAnswer{Question: q, JobseekerInfo: orNoInfo(info), Answer: answer}, nil
}

// Employer job / 投递不存在时对应信息留空，不报错
func (s *ChatService) Employer(ctx context.Context, in EmployerChatInput) (*EmployerAnswer, error) {
	q, err := question(in.Question)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Companies().FindByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errCompanyNotFound
	}
	companyInfo := formatCompanyInfo(c)

	var jobInfo, seekerInfo string
	if in.JobID != nil {
		j, err := s.store.Jobs().FindByID(ctx, *in.JobID)
		if err != nil {
			return nil, err
		}
		jobInfo = formatJobInfo(j)
	}
	if in.JobApplicationID != nil {
		if seekerInfo, err = s.applicantInfo(ctx, *in.JobApplicationID); err != nil {
			return nil, err
		}
	}

	answer, err := s.complete(ctx, "employer", buildPrompt(q, seekerInfo, companyInfo, jobInfo))
	if err != nil {
		return nil, err
	}
	return &EmployerAnswer{
		Question:      q,
		CompanyInfo:   orNoInfo(companyInfo),
		JobInfo:       orNoInfo(jobInfo),
		JobseekerInfo: orNoInfo(seekerInfo),
		Answer:        answer,
	}, nil
}

// applicantInfo 投递 -> 用户 -> 档案
func (s *ChatService) applicantInfo(ctx context.Context, applicationID uint) (string, error) {
	a, err := s.store.Applications().FindByID(ctx, applicationID)
	if err != nil || a == nil {
		return "", err
	}
	p, err := s.store.Profiles().FindByUserID(ctx, a.UserID)
	if err != nil {
		return "", fmt.Errorf("applicant profile: %w", err)
	}
	return formatJobseekerInfo(p), nil
}
