package objectstore

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/config"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSlipKey(t *testing.T) {
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	key := SlipKey(now, ".jpg")
	assert.Regexp(t, regexp.MustCompile(`^slips/2026/03/[0-9a-f-]{36}\.jpg$`), key)
	assert.NotEqual(t, key, SlipKey(now, ".jpg"))
	assert.NoError(t, validateKey(key))
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"", "/abs", "../x", "a/../../b", "a//b"} {
		assert.ErrorIs(t, validateKey(key), ErrInvalidKey, key)
	}
}

func TestNormalizeSlip(t *testing.T) {
	t.Run("png resized to jpeg", func(t *testing.T) {
		out, ct, err := NormalizeSlip(bytes.NewReader(pngImage(t, 3200, 800)), 10<<20)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", ct)

		img, _, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 1600, img.Bounds().Dx())
		assert.Equal(t, 400, img.Bounds().Dy())
	})

	t.Run("small image keeps size", func(t *testing.T) {
		out, _, err := NormalizeSlip(bytes.NewReader(pngImage(t, 300, 200)), 10<<20)
		require.NoError(t, err)
		img, _, err := image.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
	})

	t.Run("too large", func(t *testing.T) {
		_, _, err := NormalizeSlip(bytes.NewReader(pngImage(t, 300, 200)), 10)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("not an image", func(t *testing.T) {
		_, _, err := NormalizeSlip(strings.NewReader("%PDF-1.4 hello"), 10<<20)
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "http://localhost:8080/uploads/", newNoopLogger())
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "slips/2026/01/a.jpg", strings.NewReader("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/slips/2026/01/a.jpg", url)

	got, err := os.ReadFile(filepath.Join(dir, "slips", "2026", "01", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	require.NoError(t, s.Delete(ctx, "slips/2026/01/a.jpg"))
	require.NoError(t, s.Delete(ctx, "slips/2026/01/a.jpg"))
	_, err = os.Stat(filepath.Join(dir, "slips", "2026", "01", "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Put(ctx, "../escape.jpg", strings.NewReader("x"), "image/jpeg")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "", newNoopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, "slips/a.jpg", strings.NewReader("x"), "image/jpeg")
	assert.ErrorIs(t, err, context.Canceled)
}

// fakeS3 минимальный S3 API: PUT и DELETE объектов с path-style адресацией.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	deny    bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deny {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
		return
	}
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	cfg := config.ObjectStorage{
		Provider:        ProviderS3,
		Bucket:          "payment-slips",
		Endpoint:        srv.URL,
		Region:          "auto",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		PublicURL:       "https://cdn.test",
	}
	store, err := New(context.Background(), cfg, newNoopLogger())
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Put(ctx, "slips/2026/01/a.jpg", bytes.NewReader([]byte("jpeg")), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/slips/2026/01/a.jpg", url)
	assert.Equal(t, []byte("jpeg"), fake.objects["/payment-slips/slips/2026/01/a.jpg"])

	require.NoError(t, store.Delete(ctx, "slips/2026/01/a.jpg"))
	assert.Empty(t, fake.objects)

	fake.deny = true
	_, err = store.Put(ctx, "slips/2026/01/b.jpg", bytes.NewReader([]byte("jpeg")), "image/jpeg")
	require.ErrorIs(t, err, ErrAccessDenied)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Put", storeErr.Op)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.ObjectStorage{Provider: "ftp"}, newNoopLogger())
	assert.Error(t, err)
}
