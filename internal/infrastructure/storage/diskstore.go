package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs under a local media directory. The API serves that
// directory statically at /media in development.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root}, nil
}

func (d *DiskStore) Put(data []byte, key string) (string, error) {
	if key == "" {
		return "", errors.New("diskstore: key is empty")
	}

	path := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return key, nil
}

func (d *DiskStore) Delete(key string) error {
	err := os.Remove(filepath.Join(d.root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (d *DiskStore) URL(key string) string {
	return "/media/" + key
}
