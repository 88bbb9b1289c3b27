package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Loader resolves resource names to byte streams.
// Implementations only serve data files and must refuse executable content.
// A missing resource is reported with ErrResourceNotFound.
type Loader interface {
	// Open returns a stream for name. The caller closes it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Locate returns a URI identifying name without reading it.
	Locate(ctx context.Context, name string) (string, error)
}

// Invalidator is implemented by loaders that keep their own resource cache.
// The engine calls Invalidate before every reload.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// codeExtensions are never served, whatever the loader's backing store.
var codeExtensions = map[string]struct{}{
	".bat":   {},
	".class": {},
	".dll":   {},
	".dylib": {},
	".exe":   {},
	".go":    {},
	".jar":   {},
	".sh":    {},
	".so":    {},
}

// CheckResourceName validates a slash-separated resource name and rejects executable files.
func CheckResourceName(name string) error {
	if !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("%w: %q", ErrInvalidResourceName, name)
	}
	if _, ok := codeExtensions[strings.ToLower(path.Ext(name))]; ok {
		return fmt.Errorf("%w: %q", ErrExecutableResource, name)
	}
	return nil
}

// FSLoader serves resources from an fs.FS, typically an embed.FS holding the packaged bundles.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader wraps fsys. It panics if fsys is nil.
func NewFSLoader(fsys fs.FS) *FSLoader {
	if fsys == nil {
		panic("i18n: fs is not provided")
	}
	return &FSLoader{fsys: fsys}
}

func (l *FSLoader) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if err := CheckResourceName(name); err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
		}
		return nil, err
	}

	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrResourceNotFound, name)
	}
	return f, nil
}

func (l *FSLoader) Locate(_ context.Context, name string) (string, error) {
	if err := CheckResourceName(name); err != nil {
		return "", err
	}
	if _, err := fs.Stat(l.fsys, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrResourceNotFound, name)
		}
		return "", err
	}
	return (&url.URL{Scheme: "fs", Path: "/" + name}).String(), nil
}

// DirLoader serves resources from a directory on disk, such as a user override directory.
// Names are resolved with os.Root, so they cannot escape the directory.
type DirLoader struct {
	dir string
}

// NewDirLoader returns a loader rooted at dir. The directory does not need to exist yet;
// a missing directory reads as missing resources.
func NewDirLoader(dir string) (*DirLoader, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: base directory is empty", ErrInvalidConfiguration)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	return &DirLoader{dir: abs}, nil
}

// Dir returns the absolute base directory.
func (l *DirLoader) Dir() string {
	return l.dir
}

func (l *DirLoader) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if err := CheckResourceName(name); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return nil, l.notFound(name, err)
	}
	defer root.Close()

	f, err := root.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, l.notFound(name, err)
	}

	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrResourceNotFound, name)
	}
	return f, nil
}

func (l *DirLoader) Locate(_ context.Context, name string) (string, error) {
	if err := CheckResourceName(name); err != nil {
		return "", err
	}

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return "", l.notFound(name, err)
	}
	defer root.Close()

	if _, err := root.Stat(filepath.FromSlash(name)); err != nil {
		return "", l.notFound(name, err)
	}
	full := filepath.ToSlash(filepath.Join(l.dir, filepath.FromSlash(name)))
	if !strings.HasPrefix(full, "/") {
		full = "/" + full
	}
	return (&url.URL{Scheme: "file", Path: full}).String(), nil
}

func (l *DirLoader) notFound(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s in %s", ErrResourceNotFound, name, l.dir)
	}
	return err
}
