package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
	"github.com/langchou/parkpic/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := newTestStore(t)
	client := NewClient(srv.URL, 5*time.Second, store, zap.NewNop())
	return client, store, srv
}

func TestBearerTokenInjection(t *testing.T) {
	var gotAuth []string
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`))
	}))

	// 未登录：匿名请求
	_, err := client.Get(context.Background(), "/ping")
	require.NoError(t, err)

	// 登录后：携带当前 token
	store.Login(&models.User{ID: "1"}, "token-a", "")
	_, err = client.Get(context.Background(), "/ping")
	require.NoError(t, err)

	// token 变更后：下一次请求立即使用新 token
	store.Login(&models.User{ID: "1"}, "token-b", "")
	_, err = client.Get(context.Background(), "/ping")
	require.NoError(t, err)

	require.Len(t, gotAuth, 3)
	assert.Equal(t, "", gotAuth[0])
	assert.Equal(t, "Bearer token-a", gotAuth[1])
	assert.Equal(t, "Bearer token-b", gotAuth[2])
}

func TestUnauthorizedClearsSession(t *testing.T) {
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"token expired"}`))
	}))

	store.Login(&models.User{ID: "1"}, "stale-token", "")

	_, err := client.Get(context.Background(), "/auth/me")
	require.Error(t, err)

	// 错误要交还给调用方，并能用 errors.Is 识别
	assert.True(t, errors.Is(err, ErrUnauthorized))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)

	// 会话已被清空
	assert.False(t, store.Snapshot().LoggedIn())
	assert.Empty(t, store.AccessToken())
}

func TestNonSuccessStatusReturnsAPIError(t *testing.T) {
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"already approved"}`))
	}))
	store.Login(&models.User{ID: "1"}, "token-a", "")

	_, err := client.Put(context.Background(), "/car-request/5/approve", map[string]int64{"carid": 9})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "already approved", apiErr.Message)
	// 非 401 不清会话
	assert.True(t, store.Snapshot().LoggedIn())
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestApproveRequestWire(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"success":true,"message":"approved"}`))
	}))
	store.Login(&models.User{ID: "1"}, "token-a", "")

	err := client.ApproveRequest(context.Background(), 42, 7)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/car-request/42/approve", gotPath)
	assert.JSONEq(t, `{"carid":7}`, gotBody)
}

func TestDenyRequestWire(t *testing.T) {
	var gotPath, gotBody string
	client, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"success":true}`))
	}))
	store.Login(&models.User{ID: "1"}, "token-a", "")

	err := client.DenyRequest(context.Background(), 42, "documents missing")
	require.NoError(t, err)

	assert.Equal(t, "/car-request/42/deny", gotPath)
	assert.JSONEq(t, `{"denialreason":"documents missing"}`, gotBody)
}

func TestWithID(t *testing.T) {
	assert.Equal(t, "/car-request/42/approve", withID(EndpointRequestApprove, 42))
	assert.Equal(t, "/cars/getcar/7", withID(EndpointCarDetails, 7))
	assert.Equal(t, "/user/updateuser/u-9", withIDString(EndpointUserUpdate, "u-9"))
}
