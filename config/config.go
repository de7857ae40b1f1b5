// Package config loads shape parameter records from TOML or YAML files.
// Keys missing from a file leave the corresponding fields untouched, so
// callers fill dst with defaults before loading.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files whose extension has no decoder.
var ErrUnknownFormat = errors.New("unknown config format")

// Decoder is implemented by the TOML and YAML stream decoders.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r.
type DecoderFunc func(r io.Reader) Decoder

// TOML decodes TOML and rejects keys with no matching field.
func TOML(r io.Reader) Decoder {
	return toml.NewDecoder(r).DisallowUnknownFields()
}

// YAML decodes YAML and rejects keys with no matching field.
func YAML(r io.Reader) Decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// ForPath returns the decoder for the extension of path.
func ForPath(path string) (DecoderFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnknownFormat)
	}
}

// Load decodes the file at path into dst, picking the format from the
// file extension.
func Load(path string, dst any) error {
	f, err := ForPath(path)
	if err != nil {
		return err
	}
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := Read(dst, bufio.NewReader(fp), f); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Read decodes dst from r with the given DecoderFunc. An empty YAML
// document is not an error.
func Read(dst any, r io.Reader, f DecoderFunc) error {
	err := f(r).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
