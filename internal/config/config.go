package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zerosign/envit/internal/errors"
)

// QuoteMode selects how the serializer quotes string literals.
type QuoteMode string

const (
	// QuoteAuto quotes only strings that would otherwise reclassify on
	// re-parse (numeric-looking, boolean-looking, bracketed, or padded).
	QuoteAuto QuoteMode = "auto"
	// QuoteAlways quotes every string literal.
	QuoteAlways QuoteMode = "always"
	// QuoteNever emits string payloads verbatim.
	QuoteNever QuoteMode = "never"
)

// Options carries the separators and formatting knobs shared by the reader
// and the serializer. The set of behaviors is closed, so this is a plain
// value struct rather than pluggable formatter implementations.
type Options struct {
	// FieldSep joins nested field names into one flat key, e.g. A__B__C.
	FieldSep string `yaml:"field_sep"`
	// KeyValueSep splits a line into key and value, e.g. A__B=1.
	KeyValueSep string `yaml:"key_value_sep"`
	// ArraySep separates array elements inside brackets.
	ArraySep string `yaml:"array_sep"`
	// CommentPrefix marks a whole line as a comment.
	CommentPrefix string `yaml:"comment_prefix"`
	// Quote controls string quoting on output.
	Quote QuoteMode `yaml:"quote"`
}

// DefaultOptions returns the conventional env-style configuration.
func DefaultOptions() Options {
	return Options{
		FieldSep:      "__",
		KeyValueSep:   "=",
		ArraySep:      ",",
		CommentPrefix: "#",
		Quote:         QuoteAuto,
	}
}

// Validate checks the options for contradictions that would make reading and
// writing ambiguous.
func (o Options) Validate() error {
	if o.FieldSep == "" {
		return errors.NewConfigError("field separator must not be empty", errors.ErrBadOptions)
	}
	if o.KeyValueSep == "" {
		return errors.NewConfigError("key/value separator must not be empty", errors.ErrBadOptions)
	}
	if o.ArraySep == "" {
		return errors.NewConfigError("array separator must not be empty", errors.ErrBadOptions)
	}
	if o.CommentPrefix == "" {
		return errors.NewConfigError("comment prefix must not be empty", errors.ErrBadOptions)
	}
	if o.FieldSep == o.KeyValueSep {
		return errors.NewConfigError("field separator and key/value separator must differ", errors.ErrBadOptions)
	}
	if strings.Contains(o.FieldSep, o.KeyValueSep) {
		return errors.NewConfigError("field separator must not contain the key/value separator", errors.ErrBadOptions)
	}
	switch o.Quote {
	case QuoteAuto, QuoteAlways, QuoteNever:
	default:
		return errors.NewConfigError(
			fmt.Sprintf("unknown quote mode %q (want auto, always or never)", o.Quote),
			errors.ErrBadOptions,
		)
	}
	return nil
}

// LoadFile reads options from a YAML file, filling unset fields with the
// defaults.
func LoadFile(path string) (Options, error) {
	if strings.TrimSpace(path) == "" {
		return Options{}, errors.NewConfigError("options file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.NewConfigError(
				fmt.Sprintf("options file %q not found", path),
				errors.ErrFileNotFound,
			)
		}
		return Options{}, errors.NewConfigError(
			fmt.Sprintf("failed to read options file %q", path),
			err,
		)
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, errors.NewConfigError(
			fmt.Sprintf("failed to parse options file %q", path),
			err,
		)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
