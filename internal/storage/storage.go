// Package storage persists uploaded post images. Posts only ever store the
// reference returned by Save; serving the bytes back is someone else's job.
package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
)

// Every stored image lives under this prefix.
const imagePrefix = "posts/"

type Store interface {
	// Save writes the image and returns its reference, e.g.
	// "posts/4f3c….png". The original filename only contributes its
	// extension.
	Save(filename string, r io.Reader) (string, error)
}

// DiskStore writes images below a media root directory.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	ref := imagePrefix + uuid.NewString() + filepath.Ext(filename)

	path := filepath.Join(s.root, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", xerrors.New(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", xerrors.New(err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", xerrors.New(err)
	}

	return ref, nil
}
