package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/auth"
	"go-gin-jobboard/internal/core/cache"
	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/database"
	"go-gin-jobboard/internal/domain"
	"go-gin-jobboard/internal/repo"
)

const testBase = "http://minio.test"

type fakeObjects struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	failUpload bool
	failDelete bool
}

func newFakeObjects() *fakeObjects { return &fakeObjects{objects: map[string][]byte{}} }

func (f *fakeObjects) Upload(_ context.Context, bucket, object string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return "", errors.New("upload refused")
	}
	u := testBase + "/" + bucket + "/" + object
	f.objects[u] = data
	return u, nil
}

func (f *fakeObjects) Delete(_ context.Context, rawURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, rawURL)
	if f.failDelete {
		return errors.New("delete refused")
	}
	delete(f.objects, rawURL)
	return nil
}

func (f *fakeObjects) has(u string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[u]
	return ok
}

func (f *fakeObjects) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type fakeLLM struct {
	mu      sync.Mutex
	prompts []string
	answer  string
	err     error
}

func (f *fakeLLM) Complete(_ context.Context, _, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type harness struct {
	store   *repo.Store
	objects *fakeObjects
	llm     *fakeLLM
	jwt     *auth.JWTer
	redis   *miniredis.Miniredis
	svc     *Services
}

var testBuckets = config.Buckets{Default: "uploads", Avatars: "avatars", Resumes: "resumes", Logos: "logos"}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: "file::memory:", LogLevel: "silent", Log: zap.NewNop()})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, database.MigrateAuto, "sqlite", "", zap.NewNop()))
	store := repo.NewStore(db)
	require.NoError(t, store.Roles().EnsureDefaults(context.Background()))

	mr := miniredis.RunT(t)
	h := &harness{
		store:   store,
		objects: newFakeObjects(),
		llm:     &fakeLLM{answer: "Sure."},
		jwt:     &auth.JWTer{Secret: []byte("test-secret"), Issuer: "jobboard", TTL: time.Hour},
		redis:   mr,
	}
	h.svc = New(Deps{
		Store:   store,
		Objects: h.objects,
		Buckets: testBuckets,
		Cache:   cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute),
		JWT:     h.jwt,
		LLM:     h.llm,
		Log:     zap.NewNop(),
	})
	return h
}

func (h *harness) register(t *testing.T, email, role string) *domain.User {
	t.Helper()
	u, err := h.svc.Auth.Register(context.Background(), RegisterInput{Email: email, Password: "Passw0rd!", RoleName: role})
	require.NoError(t, err)
	return u
}

func (h *harness) company(t *testing.T, owner *domain.User, name string) *domain.Company {
	t.Helper()
	c, err := h.svc.Companies.Create(context.Background(), owner.ID, CompanyInput{Name: ptr(name)}, nil)
	require.NoError(t, err)
	return c
}

func (h *harness) job(t *testing.T, owner *domain.User, c *domain.Company, title string) *domain.Job {
	t.Helper()
	j, err := h.svc.Jobs.Create(context.Background(), owner.ID, c.ID, JobInput{Title: ptr(title)})
	require.NoError(t, err)
	return j
}

func ptr[T any](v T) *T { return &v }

func assertKind(t *testing.T, err error, kind domain.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, domain.KindOf(err))
	if msg != "" {
		assert.Equal(t, msg, err.Error())
	}
}

func pngFile(name string) *File {
	return &File{Name: name, ContentType: "image/png", Data: []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("x", 16))}
}
