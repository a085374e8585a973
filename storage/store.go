package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/linchx/tradesnap/session"
)

// Store keeps one framework config per user. Implementations are
// last-writer-wins per user key; corrupt or unreadable data reads as absent
// so the user simply re-enters setup.
type Store interface {
	Get(userID int64) (session.Config, bool)
	Put(userID int64, cfg session.Config) error
}

// FileStore persists configs as a single JSON file keyed by user id, the
// same shape the original data file used:
//
//	{ "123": { "pairs": [...], "questions": [...] } }
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

// Get returns the stored config for a user, or ok=false when absent.
func (s *FileStore) Get(userID int64) (session.Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	cfg, ok := data[strconv.FormatInt(userID, 10)]
	return cfg, ok
}

// Put saves the config for a user, overwriting any previous one.
func (s *FileStore) Put(userID int64, cfg session.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	data[strconv.FormatInt(userID, 10)] = cfg

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: 序列化用户数据失败: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("storage: 写入 %s 失败: %w", s.path, err)
	}
	return nil
}

// load reads the whole data file. Missing file means empty; corrupt content
// is logged and treated as empty rather than surfaced as an error.
func (s *FileStore) load() map[string]session.Config {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("user data file unreadable, starting fresh",
				zap.String("path", s.path), zap.Error(err))
		}
		return map[string]session.Config{}
	}

	data := map[string]session.Config{}
	if err := json.Unmarshal(raw, &data); err != nil {
		s.log.Warn("user data file corrupted, starting fresh",
			zap.String("path", s.path), zap.Error(err))
		return map[string]session.Config{}
	}
	return data
}
