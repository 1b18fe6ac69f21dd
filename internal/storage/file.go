package storage

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// File persists each key as a file under a data directory. Keys are
// hex-encoded for the file name so arbitrary key strings stay
// filesystem-safe.
type File struct {
	dir    string
	logger *zap.Logger
}

// NewFile creates the data directory if needed and returns a file-backed
// store. A directory that cannot be created still yields a usable store;
// reads miss and writes are logged and dropped.
func NewFile(dir string, logger *zap.Logger) *File {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Warn("session storage dir unavailable", zap.String("dir", dir), zap.Error(err))
	}
	return &File{dir: dir, logger: logger}
}

func (f *File) Get(key string) (string, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (f *File) Set(key, value string) {
	if err := os.WriteFile(f.path(key), []byte(value), 0o600); err != nil {
		f.logger.Warn("session storage write failed", zap.String("key", key), zap.Error(err))
	}
}

func (f *File) Remove(key string) {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		f.logger.Warn("session storage remove failed", zap.String("key", key), zap.Error(err))
	}
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, hex.EncodeToString([]byte(key))+".session")
}
