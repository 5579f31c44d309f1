package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// LocalStore keeps blobs on a filesystem rooted at a directory.
type LocalStore struct {
	fs afero.Fs
}

// NewLocalStore roots the store at dir on the OS filesystem.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return NewFsStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func NewFsStore(fs afero.Fs) *LocalStore {
	return &LocalStore{fs: fs}
}

func (l *LocalStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	name := filepath.FromSlash(key)
	if err := l.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("failed to create dir: %w", err)
	}
	f, err := l.fs.OpenFile(name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logrus.Infof("File %s stored", key)
	return nil
}

func (l *LocalStore) Get(_ context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	f, err := l.fs.Open(filepath.FromSlash(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrObjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return f, &ObjectInfo{Size: st.Size(), ContentType: ContentType(key)}, nil
}

func (l *LocalStore) Delete(_ context.Context, key string) error {
	err := l.fs.Remove(filepath.FromSlash(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	logrus.Infof("File %s deleted", key)
	return nil
}

func (l *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	return afero.Exists(l.fs, filepath.FromSlash(key))
}
