package pkg

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/config"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile is the name of the project manifest.
	ManifestFile = "componentengine.yaml"
	// Ext is the extension of component modules.
	Ext = ".cmp"
)

var (
	// ErrModuleNotFound is returned when a module is not in any of the source
	// directories.
	ErrModuleNotFound = errors.New("pkg: module not found")
	// ErrManifestNotFound is returned when no manifest exists in a directory
	// or in any of its parents.
	ErrManifestNotFound = errors.New("pkg: manifest not found")
)

// Manifest is the componentengine.yaml file of a project.
type Manifest struct {
	root string

	Name              string         `yaml:"name"`
	Version           Version        `yaml:"version"`
	EngineVersion     VersionRange   `yaml:"engine-version,omitempty"`
	SourceDirectories []string       `yaml:"source-directories"`
	Entries           []string       `yaml:"entries"`
	Options           config.Options `yaml:"options"`
}

// Root returns the directory containing the manifest.
func (m *Manifest) Root() string {
	return m.root
}

// ParseManifest decodes a manifest whose root is the given directory.
// Options missing in the manifest keep their default value.
func ParseManifest(root string, src []byte) (*Manifest, error) {
	m := &Manifest{root: root, Options: config.Default()}

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "pkg: can't decode %s", ManifestFile)
	}

	if len(m.SourceDirectories) == 0 {
		m.SourceDirectories = []string{"."}
	}

	if err := m.Options.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load finds the manifest in the given directory or in the closest of its
// parents and loads it.
func Load(dir string) (*Manifest, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "pkg: can't load manifest from %q", dir)
	}

	path, err := findManifest(dir)
	if err != nil {
		return nil, err
	}

	src, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pkg: can't load manifest from %q", dir)
	}

	glog.V(3).Infof("loading manifest %s", path)
	return ParseManifest(filepath.Dir(path), src)
}

func findManifest(dir string) (string, error) {
	for {
		path := filepath.Join(dir, ManifestFile)
		if ok, err := exists(path); err != nil {
			return "", errors.Wrapf(err, "pkg: can't load manifest from %q", dir)
		} else if ok {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrManifestNotFound
		}
		dir = parent
	}
}

// CheckEngine returns an error if the given engine version is not accepted
// by the project. A manifest without engine version accepts any.
func (m *Manifest) CheckEngine(v Version) error {
	if m.EngineVersion.IsZero() || m.EngineVersion.Contains(v) {
		return nil
	}
	return errors.Errorf("pkg: %s requires engine %s, but this is %s", m.Name, m.EngineVersion, v)
}

// FindModule returns the path of the module with the given name, which is
// its path without extension relative to a source directory, such as
// "ui/Card". Source directories are looked up in order.
func (m *Manifest) FindModule(name string) (string, error) {
	name = strings.TrimSuffix(filepath.FromSlash(name), Ext)
	for _, dir := range m.SourceDirectories {
		path := filepath.Join(m.root, dir, name+Ext)
		if ok, err := exists(path); err != nil {
			return "", errors.Wrapf(err, "pkg: can't find module %s", name)
		} else if ok {
			return path, nil
		}
	}

	return "", ErrModuleNotFound
}

// EntryPaths returns the paths of the entry modules.
func (m *Manifest) EntryPaths() ([]string, error) {
	paths := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		path, err := m.FindModule(e)
		if err != nil {
			return nil, errors.Wrapf(err, "pkg: entry %s", e)
		}
		paths[i] = path
	}
	return paths, nil
}

// Modules returns the sorted paths of all modules in the source directories.
func (m *Manifest) Modules() ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})
	for _, dir := range m.SourceDirectories {
		root := filepath.Join(m.root, dir)
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || filepath.Ext(path) != Ext {
				return nil
			}

			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pkg: can't list modules of %s", dir)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func exists(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, nil
}
