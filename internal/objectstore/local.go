package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore хранит объекты в каталоге на диске. Используется для локальной разработки,
// web отдаёт этот каталог по PublicURL.
type LocalStore struct {
	basePath string
	baseURL  string
	log      *slog.Logger
}

func NewLocalStore(basePath, baseURL string, log *slog.Logger) (*LocalStore, error) {
	const op = "objectstore.NewLocalStore"
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}

	log.Info("initialized local object storage", slog.String("base_path", abs))
	return &LocalStore{
		basePath: abs,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		log:      log,
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, data io.Reader, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Op: "Put", Key: key, Err: err}
	}
	filePath, err := s.resolvePath(key)
	if err != nil {
		return "", &Error{Op: "Put", Key: key, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return "", &Error{Op: "Put", Key: key, Err: err}
	}

	f, err := os.CreateTemp(filepath.Dir(filePath), ".upload-*")
	if err != nil {
		return "", &Error{Op: "Put", Key: key, Err: err}
	}
	tmp := f.Name()
	if _, err := io.Copy(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", &Error{Op: "Put", Key: key, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", &Error{Op: "Put", Key: key, Err: err}
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return "", &Error{Op: "Put", Key: key, Err: err}
	}

	s.log.Debug("stored object on disk", slog.String("key", key))
	return s.baseURL + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: "Delete", Key: key, Err: err}
	}
	filePath, err := s.resolvePath(key)
	if err != nil {
		return &Error{Op: "Delete", Key: key, Err: err}
	}
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Op: "Delete", Key: key, Err: err}
	}
	return nil
}

// BasePath каталог, из которого web раздаёт загруженные файлы.
func (s *LocalStore) BasePath() string {
	return s.basePath
}

func (s *LocalStore) resolvePath(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(key))
	if !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}
	return full, nil
}
