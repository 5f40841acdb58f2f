package service

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/api/backend"
	"github.com/langchou/parkpic/internal/mockapi"
	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/session"
)

// env 服务层测试环境：真实 backend.Client 打到内存 mock 后端
type env struct {
	mock     *mockapi.Server
	api      *backend.Client
	store    *session.Store
	uploader *fakeUploader
}

func newEnv(t *testing.T) *env {
	t.Helper()

	mock := mockapi.NewServer(zap.NewNop())
	srv := httptest.NewServer(mock.Router())
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
	api := backend.NewClient(srv.URL+"/api/v1", 5*time.Second, store, zap.NewNop())

	return &env{
		mock:     mock,
		api:      api,
		store:    store,
		uploader: &fakeUploader{},
	}
}

// loginAs 跳过登录接口，直接给 user 签发 token 并写入会话
func (e *env) loginAs(user models.User) {
	e.mock.SeedUser(user, user.Email, "password123")
	token := e.mock.IssueToken(user.ID)
	e.store.Login(&user, token, "")
}

// fakeUploader 记录上传过的路径，返回可预测的 URL
type fakeUploader struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeUploader) UploadFile(ctx context.Context, path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.mu.Unlock()
	return "https://cdn.example.com/" + path, nil
}

func (f *fakeUploader) uploaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.paths))
	copy(out, f.paths)
	return out
}

// fakeGeocoder 固定返回预置坐标，并记录查询串
type fakeGeocoder struct {
	coords  *models.Coordinates
	queries []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) *models.Coordinates {
	f.queries = append(f.queries, query)
	return f.coords
}
