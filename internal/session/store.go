package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
)

// Session 当前会话快照：user 与 accessToken 由 Login/Logout 成对写入/清除
type Session struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// LoggedIn 是否处于已登录状态
func (s Session) LoggedIn() bool {
	return s.User != nil && s.AccessToken != ""
}

// Store 进程级会话存储：内存持有 + 每次变更落盘到单个 JSON 文件
// 文件中只持久化 user / accessToken / refreshToken，瞬态标志不落盘
type Store struct {
	mu       sync.RWMutex
	session  Session
	file     string
	logger   *zap.Logger
	onChange func(Session) // 变更回调（强制登出等由上层观察）
}

// NewStore 创建会话存储并尝试从文件恢复已有会话
func NewStore(file string, logger *zap.Logger) *Store {
	s := &Store{
		file:   file,
		logger: logger,
	}

	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to restore session", zap.String("file", file), zap.Error(err))
		}
	}

	return s
}

// SetOnChange 设置变更回调（在每次落盘后、持锁外调用）
func (s *Store) SetOnChange(fn func(Session)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Login 整体替换会话
func (s *Store) Login(user *models.User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.session = Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	s.persistLocked()
	snapshot := s.session
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Logout 清空会话的所有字段，并同步清空持久化文件
func (s *Store) Logout() {
	s.mu.Lock()
	s.session = Session{}
	s.persistLocked()
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(Session{})
	}
}

// UpdateUser 将 patch 浅合并进当前用户；未登录时为空操作
func (s *Store) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	if s.session.User == nil {
		s.mu.Unlock()
		return
	}
	patch.Apply(s.session.User)
	s.persistLocked()
	snapshot := s.session
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

// Snapshot 返回会话副本（user 深拷贝，调用方可安全修改）
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.session
	if s.session.User != nil {
		userCopy := *s.session.User
		snapshot.User = &userCopy
	}
	return snapshot
}

// AccessToken 当前访问令牌（未登录返回空串）
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// persistLocked 落盘（调用方必须持有写锁）
func (s *Store) persistLocked() {
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		s.logger.Error("Failed to marshal session", zap.Error(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.file), 0700); err != nil {
		s.logger.Error("Failed to create session dir", zap.Error(err))
		return
	}

	if err := os.WriteFile(s.file, data, 0600); err != nil {
		s.logger.Error("Failed to persist session", zap.String("file", s.file), zap.Error(err))
	}
}

// load 从文件恢复会话
func (s *Store) load() error {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("decode session file: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return nil
}
