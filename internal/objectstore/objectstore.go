// Package objectstore сохраняет скриншоты оплаты в S3-совместимый бакет
// или в локальный каталог и возвращает непрозрачную ссылку на объект.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
)

const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

var (
	ErrNotFound        = errors.New("object not found")
	ErrInvalidKey      = errors.New("invalid storage key")
	ErrTooLarge        = errors.New("object exceeds maximum size")
	ErrAccessDenied    = errors.New("access denied")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Error ошибка операции с хранилищем с ключом объекта.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("objectstore %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("objectstore %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store хранилище объектов.
type Store interface {
	// Put сохраняет data под ключом key и возвращает публичную ссылку.
	Put(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	// Delete удаляет объект. Отсутствие объекта ошибкой не считается.
	Delete(ctx context.Context, key string) error
}

// New создаёт хранилище по cfg.Provider.
func New(ctx context.Context, cfg config.ObjectStorage, log *slog.Logger) (Store, error) {
	switch cfg.Provider {
	case ProviderLocal, "":
		return NewLocalStore(cfg.LocalPath, cfg.PublicURL, log)
	case ProviderS3:
		return NewS3Store(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("objectstore.New: unknown provider %q", cfg.Provider)
	}
}

// SlipKey ключ для скриншота оплаты: slips/YYYY/MM/<uuid><ext>.
func SlipKey(now time.Time, ext string) string {
	return fmt.Sprintf("slips/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.New(), ext)
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	if path.Clean(key) != key {
		return ErrInvalidKey
	}
	return nil
}
