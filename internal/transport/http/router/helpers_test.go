package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-jobboard/internal/core/auth"
	"go-gin-jobboard/internal/core/config"
	"go-gin-jobboard/internal/core/database"
	"go-gin-jobboard/internal/repo"
	"go-gin-jobboard/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

const objectBase = "http://minio.test"

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memObjects) Upload(_ context.Context, bucket, object string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := objectBase + "/" + bucket + "/" + object
	m.objects[u] = data
	return u, nil
}

func (m *memObjects) Delete(_ context.Context, rawURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, rawURL)
	return nil
}

type echoLLM struct{}

func (echoLLM) Complete(context.Context, string, string) (string, error) {
	return "Sure, happy to help.", nil
}

type harness struct {
	t     *testing.T
	api   *gin.Engine
	admin *gin.Engine
	store *repo.Store
	objs  *memObjects
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: "file::memory:", LogLevel: "silent", Log: zap.NewNop()})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, database.MigrateAuto, "sqlite", "", zap.NewNop()))
	store := repo.NewStore(db)
	require.NoError(t, store.Roles().EnsureDefaults(context.Background()))

	objs := &memObjects{objects: map[string][]byte{}}
	svc := service.New(service.Deps{
		Store:   store,
		Objects: objs,
		Buckets: config.Buckets{Default: "recruitment-files", Avatars: "avatars", Resumes: "resumes", Logos: "company-logos"},
		JWT:     &auth.JWTer{Secret: []byte("router-test"), Issuer: "test", TTL: time.Hour},
		LLM:     echoLLM{},
		Log:     zap.NewNop(),
	})
	d := Deps{Log: zap.NewNop(), Svc: svc}
	return &harness{t: t, api: NewAPIEngine(d), admin: NewAdminEngine(d), store: store, objs: objs}
}

type result struct {
	Code int
	Body map[string]any
}

func (r result) data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func (r result) list() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

func (r result) message() string {
	s, _ := r.Body["message"].(string)
	return s
}

func serve(t *testing.T, h http.Handler, req *http.Request) result {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var body map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	}
	return result{Code: w.Code, Body: body}
}

func (h *harness) do(method, path, token string, body any) result {
	return h.doOn(h.api, method, path, token, body)
}

func (h *harness) doOn(e *gin.Engine, method, path, token string, body any) result {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(h.t, e, req)
}

type part struct {
	field, filename string
	data            []byte
}

func (h *harness) multipart(method, path, token string, fields map[string]string, files ...part) result {
	h.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(h.t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(h.t, err)
		_, err = fw.Write(f.data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(h.t, h.api, req)
}

// signup 注册并登录，返回 token 和用户 id
func (h *harness) signup(email, role string) (string, uint) {
	h.t.Helper()
	r := h.do(http.MethodPost, "/api/v1/public/register", "", map[string]any{
		"email": email, "password": "Passw0rd!", "roleName": role,
	})
	require.Equal(h.t, http.StatusCreated, r.Code, r.Body)
	r = h.do(http.MethodPost, "/api/v1/public/login", "", map[string]any{"email": email, "password": "Passw0rd!"})
	require.Equal(h.t, http.StatusOK, r.Code, r.Body)
	user := r.data()["user"].(map[string]any)
	return r.data()["token"].(string), uint(user["id"].(float64))
}

func (h *harness) createCompany(token, name string) uint {
	h.t.Helper()
	r := h.do(http.MethodPost, "/api/v1/companies", token, map[string]any{"name": name})
	require.Equal(h.t, http.StatusCreated, r.Code, r.Body)
	return uint(r.data()["id"].(float64))
}

func (h *harness) createJob(token string, companyID uint, title string) uint {
	h.t.Helper()
	r := h.do(http.MethodPost, "/api/v1/jobs", token, map[string]any{"company_id": companyID, "title": title})
	require.Equal(h.t, http.StatusCreated, r.Code, r.Body)
	return uint(r.data()["id"].(float64))
}

func urlf(format string, args ...any) string { return fmt.Sprintf(format, args...) }

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)
