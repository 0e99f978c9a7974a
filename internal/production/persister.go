package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/headlessx/internal/core"
)

// fileName maps a record key ("widget:id") to a portable file name.
func fileName(dir, key, ext string) string {
	return filepath.Join(dir, strings.ReplaceAll(key, ":", "_")+ext)
}

type codec struct {
	ext       string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

// filePersister stores one file per instance record.
type filePersister struct {
	dir string
	codec
}

func newFilePersister(dir string, c codec) (filePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filePersister{}, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return filePersister{dir: dir, codec: c}, nil
}

func (p filePersister) Save(ctx context.Context, record core.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := p.marshal(record)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", p.ext[1:], err)
	}
	fn := fileName(p.dir, record.Key(), p.ext)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (p filePersister) Load(ctx context.Context, key string) (core.Record, error) {
	if err := ctx.Err(); err != nil {
		return core.Record{}, err
	}
	fn := fileName(p.dir, key, p.ext)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Record{}, fmt.Errorf("record %q: %w", key, os.ErrNotExist)
		}
		return core.Record{}, fmt.Errorf("read %s: %w", fn, err)
	}
	var record core.Record
	if err := p.unmarshal(data, &record); err != nil {
		return core.Record{}, fmt.Errorf("%s unmarshal: %w", p.ext[1:], err)
	}
	if record.Key() != key {
		return core.Record{}, fmt.Errorf("%s holds record %q, want %q", fn, record.Key(), key)
	}
	return record, nil
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	filePersister
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	p, err := newFilePersister(dir, codec{
		ext: ".json",
		marshal: func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		},
		unmarshal: json.Unmarshal,
	})
	if err != nil {
		return nil, err
	}
	return &JSONPersister{p}, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	filePersister
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	p, err := newFilePersister(dir, codec{ext: ".yaml", marshal: yaml.Marshal, unmarshal: yaml.Unmarshal})
	if err != nil {
		return nil, err
	}
	return &YAMLPersister{p}, nil
}

// NewPersister returns the file persister for format, "yaml" (the default)
// or "json".
func NewPersister(format, dir string) (core.Persister, error) {
	switch format {
	case "", "yaml":
		p, err := NewYAMLPersister(dir)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "json":
		p, err := NewJSONPersister(dir)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown record format %q (want yaml or json)", format)
}
