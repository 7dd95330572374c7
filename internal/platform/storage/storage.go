// Package storage archives generated documents.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/console/pkg/config"
)

// Store writes an object and returns the location it was written to.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ObjectKey joins prefix and name, dropping any path the name tries to climb out with.
func ObjectKey(prefix, name string) string {
	name = path.Base("/" + strings.ReplaceAll(name, `\`, "/"))
	if prefix == "" {
		return name
	}
	return strings.Trim(prefix, "/") + "/" + name
}

// Local stores objects under a directory on disk.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	p := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return "", fmt.Errorf("rename archive file: %w", err)
	}
	return p, nil
}

func New(l *zap.SugaredLogger, cfg *cfgpkg.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case cfgpkg.StorageDriverS3:
		s, err := NewS3(context.Background(), cfg.Storage)
		if err != nil {
			return nil, err
		}
		l.Infow("invoice archive on s3", "bucket", cfg.Storage.S3Bucket)
		return s, nil
	case cfgpkg.StorageDriverLocal, "":
		l.Infow("invoice archive on local disk", "dir", cfg.Storage.LocalDir)
		return NewLocal(cfg.Storage.LocalDir), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
