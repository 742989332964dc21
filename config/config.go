// Package config holds the options of the compiler and how they are read
// from YAML.
package config

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/packagefactory/componentengine/parser"
	"github.com/packagefactory/componentengine/scanner"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Options of the compiler.
type Options struct {
	// MaxDepth is the maximum nesting of expressions, tags and types.
	MaxDepth int `yaml:"max-depth"`
	// KeepTrivia makes token listings include whitespace and comments.
	KeepTrivia bool `yaml:"keep-trivia"`
	// Colors enables colored diagnostics.
	Colors bool `yaml:"colors"`
	// Warnings enables the output of warnings and infos.
	Warnings bool `yaml:"warnings"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		MaxDepth: parser.DefaultMaxDepth,
		Colors:   true,
		Warnings: true,
	}
}

// Parse reads options from YAML. Options missing in the document keep their
// default value and unknown ones are rejected.
func Parse(src []byte) (Options, error) {
	opts := Default()
	if len(bytes.TrimSpace(src)) == 0 {
		return opts, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return Options{}, errors.Wrap(err, "config: can't decode options")
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Load reads the options in the YAML file at the given path.
func Load(path string) (Options, error) {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrapf(err, "config: can't read %s", path)
	}
	return Parse(src)
}

// Validate returns an error if some option has an invalid value.
func (o Options) Validate() error {
	if o.MaxDepth <= 0 {
		return errors.Errorf("config: max-depth must be positive, got %d", o.MaxDepth)
	}
	return nil
}

// ParserOptions returns the parser options for these options.
func (o Options) ParserOptions() []parser.Option {
	return []parser.Option{parser.MaxDepth(o.MaxDepth)}
}

// ScannerOptions returns the scanner options for these options.
func (o Options) ScannerOptions() []scanner.Option {
	if o.KeepTrivia {
		return []scanner.Option{scanner.KeepTrivia()}
	}
	return nil
}
