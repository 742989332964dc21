package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/golang/glog"
	"github.com/packagefactory/componentengine/token"
)

// CodeMap contains a set of source code files.
type CodeMap struct {
	loader Loader
	files  map[string]*Source
}

// NewCodeMap returns a new code map.
func NewCodeMap(loader Loader) *CodeMap {
	return &CodeMap{loader, make(map[string]*Source)}
}

// Add includes a new file in the codemap. The path given must be a relative
// path in the project.
func (cm *CodeMap) Add(path string) (*Source, error) {
	if src, ok := cm.files[path]; ok {
		return src, nil
	}

	contents, err := cm.loader.Load(path)
	if err != nil {
		return nil, err
	}

	glog.V(3).Infof("Loaded source %s (len(contents)=%d)", path, len(contents))
	src := NewSource(path, contents)
	cm.files[path] = src
	return src, nil
}

// Put registers an already built source, replacing any previous source with
// the same path.
func (cm *CodeMap) Put(src *Source) {
	cm.files[src.Path] = src
}

// Source returns the source for the given path.
func (cm *CodeMap) Source(path string) *Source {
	return cm.files[path]
}

// Paths returns the paths of all the sources in the code map, sorted.
func (cm *CodeMap) Paths() []string {
	paths := make([]string, 0, len(cm.files))
	for p := range cm.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Source represents a single source file of code. It must not be modified
// once created.
type Source struct {
	// Path is the path of the file, or a memory identifier for sources that
	// do not come from a file.
	Path string
	// Contents is the source code of the file.
	Contents  string
	lineIndex []int
}

const memoryPrefix = "memory:"

// NewSource creates a new source with the given path and contents.
func NewSource(path, contents string) *Source {
	s := &Source{Path: path, Contents: contents}
	s.makeLineIndex()
	return s
}

// NewMemorySource creates a source that does not come from any file. Its path
// is derived from a hash of the contents, so two memory sources with the same
// contents are equal.
func NewMemorySource(contents string) *Source {
	sum := sha256.Sum256([]byte(contents))
	return NewSource(memoryPrefix+hex.EncodeToString(sum[:])[:16], contents)
}

// IsMemory reports whether the source was created from memory.
func (s *Source) IsMemory() bool {
	return strings.HasPrefix(s.Path, memoryPrefix)
}

// Equal reports whether both sources have the same identity and contents.
func (s *Source) Equal(o *Source) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.Path == o.Path && s.Contents == o.Contents
}

func (s *Source) makeLineIndex() {
	s.lineIndex = []int{0}
	for i := 0; i < len(s.Contents); i++ {
		if s.Contents[i] == '\n' {
			s.lineIndex = append(s.lineIndex, i+1)
		}
	}
}

// Lines returns the number of lines in the source.
func (s *Source) Lines() int {
	return len(s.lineIndex)
}

// LinePos returns the position of the given byte offset.
func (s *Source) LinePos(offset int) (token.Position, error) {
	if offset < 0 || offset > len(s.Contents) {
		return token.NoPos, fmt.Errorf("source: offset %d out of bounds in %s", offset, s.Path)
	}

	line := sort.Search(len(s.lineIndex), func(i int) bool {
		return s.lineIndex[i] > offset
	}) - 1

	start := s.lineIndex[line]
	return token.Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(s.Contents[start:offset]),
	}, nil
}

// Line returns the text of the given zero-based line, without the line break.
func (s *Source) Line(n int) string {
	if n < 0 || n >= len(s.lineIndex) {
		return ""
	}

	end := len(s.Contents)
	if n+1 < len(s.lineIndex) {
		end = s.lineIndex[n+1] - 1
	}
	return strings.TrimSuffix(s.Contents[s.lineIndex[n]:end], "\r")
}

// Snippet is a set of complete lines of a source.
type Snippet struct {
	// Start is the zero-based number of the first line.
	Start int
	Lines []string
}

// Region returns the complete lines of code covered by the given range.
func (s *Source) Region(rng token.Range) *Snippet {
	last := rng.End.Line
	if last < rng.Start.Line {
		last = rng.Start.Line
	}

	snippet := &Snippet{Start: rng.Start.Line}
	for l := rng.Start.Line; l <= last && l < len(s.lineIndex); l++ {
		snippet.Lines = append(snippet.Lines, s.Line(l))
	}
	return snippet
}

// Text returns the text covered by the given range.
func (s *Source) Text(rng token.Range) string {
	if !rng.IsValid() || rng.End.Offset > len(s.Contents) {
		return ""
	}
	return s.Contents[rng.Start.Offset:rng.End.Offset]
}

// Location binds a range to the source it belongs to.
type Location struct {
	Source *Source
	Range  token.Range
}

// Path returns the path of the source of the location, if any.
func (l Location) Path() string {
	if l.Source == nil {
		return ""
	}
	return l.Source.Path
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Path(), l.Range.Start.Line+1, l.Range.Start.Column+1)
}
