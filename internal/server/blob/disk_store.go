package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/filex"
	"github.com/google/uuid"
)

// DiskStore keeps blobs as flat files under a single root directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) Open(ctx context.Context) error {
	return filex.EnsureDir(s.root)
}

func (s *DiskStore) Close() error { return nil }

func (s *DiskStore) Ping(ctx context.Context) error {
	fi, err := os.Stat(s.root)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("blob root %s is not a directory", s.root)
	}
	return nil
}

func (s *DiskStore) Save(ctx context.Context, data []byte) (string, error) {

	// the root may have been removed since Open
	if err := filex.EnsureDir(s.root); err != nil {
		return "", err
	}

	name := uuid.NewString()
	path := filepath.Join(s.root, name)

	// write to a temp sibling and rename, so a failed write never leaves
	// a readable partial blob under the advertised name
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o660); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("blob write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("blob rename %s: %w", name, err)
	}

	return name, nil
}

func (s *DiskStore) Load(ctx context.Context, name string) ([]byte, error) {

	// reject names that try to escape the root
	if name == "" || name != filepath.Base(name) {
		return nil, common.ErrorNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("blob read %s: %w", name, err)
	}

	return data, nil
}
