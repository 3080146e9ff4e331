package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsvs/backend/internal/infrastructure/config"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"chat/1/a.txt", "chat/1/a.txt", false},
		{"/chat//1/a.txt", "chat/1/a.txt", false},
		{`licenses\2\b.pdf`, "licenses/2/b.pdf", false},
		{"", "", true},
		{"/", "", true},
		{"../secret", "", true},
		{"chat/../../secret", "", true},
		{"chat/1/report..v2.pdf", "chat/1/report..v2.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStorage(config.LocalStorageConfig{Root: root, URLPrefix: "/static/"}, zap.NewNop())
	require.NoError(t, err)

	t.Run("upload writes the file", func(t *testing.T) {
		require.NoError(t, s.Upload(ctx, "chat/1/hello.txt", strings.NewReader("hello"), 5, "text/plain"))

		data, err := os.ReadFile(filepath.Join(root, "chat", "1", "hello.txt"))
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))

		ok, err := s.Exists(ctx, "chat/1/hello.txt")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("size mismatch leaves nothing behind", func(t *testing.T) {
		err := s.Upload(ctx, "chat/1/short.txt", strings.NewReader("abc"), 10, "")
		require.Error(t, err)

		ok, err := s.Exists(ctx, "chat/1/short.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("url escapes segments", func(t *testing.T) {
		u, err := s.URL(ctx, "licenses/7/my scan.pdf")
		require.NoError(t, err)
		assert.Equal(t, "/static/licenses/7/my%20scan.pdf", u)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "chat/1/hello.txt"))
		require.NoError(t, s.Delete(ctx, "chat/1/hello.txt"))

		ok, err := s.Exists(ctx, "chat/1/hello.txt")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("traversal is rejected", func(t *testing.T) {
		err := s.Upload(ctx, "../outside.txt", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestNew(t *testing.T) {
	t.Run("local is the default", func(t *testing.T) {
		s, err := New(context.Background(), config.StorageConfig{Local: config.LocalStorageConfig{Root: t.TempDir()}}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &LocalStorage{}, s)
	})

	t.Run("s3 ensures the bucket", func(t *testing.T) {
		fake, srv := newFakeS3(t)
		s, err := New(context.Background(), config.StorageConfig{
			Backend: "s3",
			S3: config.S3StorageConfig{
				Endpoint: srv.URL, Bucket: "files", AccessKeyID: "k", SecretAccessKey: "s", UsePathStyle: true,
			},
		}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &S3ObjectStorage{}, s)
		assert.True(t, fake.buckets["files"])
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := New(context.Background(), config.StorageConfig{Backend: "ftp"}, zap.NewNop())
		assert.ErrorContains(t, err, "unsupported storage backend")
	})
}
