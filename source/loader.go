package source

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Loader reads the contents of modules given their path.
type Loader interface {
	// Load returns the contents of the module at path. Errors for modules
	// that do not exist satisfy os.IsNotExist after errors.Cause.
	Load(path string) (string, error)
}

// FsLoader loads modules from the file system. Relative paths are relative
// to its root.
type FsLoader struct {
	root string
}

// NewFsLoader creates a loader of the files under root.
func NewFsLoader(root string) *FsLoader {
	return &FsLoader{filepath.Clean(root)}
}

// Root returns the directory relative paths are resolved against.
func (l *FsLoader) Root() string { return l.root }

func (l *FsLoader) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.root, path)
}

// Load reads the file at path.
func (l *FsLoader) Load(path string) (string, error) {
	file := l.resolve(path)
	info, err := os.Stat(file)
	if err != nil {
		return "", errors.Wrapf(err, "source: can't load %s", path)
	}
	if info.IsDir() {
		return "", errors.Errorf("source: can't load %s: it is a directory", path)
	}

	bytes, err := ioutil.ReadFile(file)
	if err != nil {
		return "", errors.Wrapf(err, "source: can't load %s", path)
	}
	return string(bytes), nil
}

// MemLoader keeps modules in memory, keyed by their cleaned path.
type MemLoader struct {
	files map[string]string
}

// NewMemLoader returns an empty memory loader.
func NewMemLoader() *MemLoader {
	return &MemLoader{make(map[string]string)}
}

// Add sets the contents of the module at path.
func (l *MemLoader) Add(path, content string) {
	l.files[filepath.Clean(path)] = content
}

// Load returns the contents added for path.
func (l *MemLoader) Load(path string) (string, error) {
	if s, ok := l.files[filepath.Clean(path)]; ok {
		return s, nil
	}
	return "", errors.Wrapf(os.ErrNotExist, "source: can't load %s", path)
}
