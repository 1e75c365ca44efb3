package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Hugo9809/pdfcraft/core"
)

const (
	blobDir = "blobs"
	metaDir = "meta"
	tmpDir  = "tmp"
)

// DirStore is a durable core.FileStore backed by a private directory. Blob
// names are opaque keys; they are percent-escaped into file names so callers
// may use arbitrary strings. Each blob carries a small JSON sidecar holding
// its MIME type so Load round-trips the type recorded at Save. Blobs,
// sidecars, and in-flight temporaries live in disjoint subdirectories, so no
// blob name can alias an internal file.
//
// Save is atomic from a reader's perspective: bytes are written to a
// temporary file on the same filesystem and moved into place with a rename,
// so a concurrent Load observes either the old or the new contents, never a
// partial write.
type DirStore struct {
	root    string
	initErr error
}

type blobMeta struct {
	Type string `json:"type"`
}

// NewDirStore creates (if needed) and opens the store rooted at dir. A root
// that cannot be created does not fail construction; it makes the store
// report Supported() == false and every operation degrade per the FileStore
// contract.
func NewDirStore(dir string) *DirStore {
	s := &DirStore{root: dir}
	for _, sub := range []string{blobDir, metaDir, tmpDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o700); err != nil {
			s.initErr = err
			break
		}
	}
	return s
}

// Supported reports whether the backing directory is usable. It performs no
// I/O and never returns an error.
func (s *DirStore) Supported() bool { return s.initErr == nil }

// Save writes the file's bytes under name, fully replacing prior contents.
func (s *DirStore) Save(ctx context.Context, name string, file core.File) error {
	if s.initErr != nil {
		return core.ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Join(s.root, tmpDir), "blob-*")
	if err != nil {
		return core.NewStoreError("save", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(file.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.NewStoreError("save", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.NewStoreError("save", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return core.NewStoreError("save", err)
	}
	if err := os.Rename(tmpName, s.blobPath(name)); err != nil {
		os.Remove(tmpName)
		return core.NewStoreError("save", err)
	}
	// Sidecar is advisory: a missing or stale one only costs the recorded
	// MIME type, not the bytes.
	s.writeMeta(name, file.Type)
	return nil
}

// Load returns the blob stored under name or core.ErrNotFound.
func (s *DirStore) Load(ctx context.Context, name string) (core.File, error) {
	if s.initErr != nil {
		return core.File{}, core.ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return core.File{}, err
	}
	data, err := os.ReadFile(s.blobPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.File{}, core.ErrNotFound
		}
		return core.File{}, core.NewStoreError("load", err)
	}
	return core.File{Name: name, Type: s.readMeta(name), Data: data}, nil
}

// Delete removes the blob under name, tolerating it being already absent.
func (s *DirStore) Delete(ctx context.Context, name string) error {
	if s.initErr != nil {
		return core.ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.blobPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return core.NewStoreError("delete", err)
	}
	if err := os.Remove(s.metaPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return core.NewStoreError("delete", err)
	}
	return nil
}

// List returns a snapshot of the stored blobs' metadata.
func (s *DirStore) List(ctx context.Context) ([]core.FileInfo, error) {
	if s.initErr != nil {
		return nil, core.ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, blobDir))
	if err != nil {
		return nil, core.NewStoreError("list", err)
	}
	infos := make([]core.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, err := url.PathUnescape(entry.Name())
		if err != nil {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, core.FileInfo{
			Name:    name,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
			Type:    s.readMeta(name),
		})
	}
	return infos, nil
}

func (s *DirStore) blobPath(name string) string {
	return filepath.Join(s.root, blobDir, url.PathEscape(name))
}

func (s *DirStore) metaPath(name string) string {
	return filepath.Join(s.root, metaDir, url.PathEscape(name))
}

func (s *DirStore) writeMeta(name, mimeType string) {
	if mimeType == "" {
		mimeType = core.DefaultMIMEType
	}
	raw, err := json.Marshal(blobMeta{Type: mimeType})
	if err != nil {
		return
	}
	_ = os.WriteFile(s.metaPath(name), raw, 0o600)
}

func (s *DirStore) readMeta(name string) string {
	raw, err := os.ReadFile(s.metaPath(name))
	if err != nil {
		return core.DefaultMIMEType
	}
	var meta blobMeta
	if err := json.Unmarshal(raw, &meta); err != nil || meta.Type == "" {
		return core.DefaultMIMEType
	}
	return meta.Type
}
