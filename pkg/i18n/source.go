package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source fetches the raw translation tree of a single locale.
type Source interface {
	Load(ctx context.Context, tag string) (map[string]any, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, tag string) (map[string]any, error)

func (f SourceFunc) Load(ctx context.Context, tag string) (map[string]any, error) {
	return f(ctx, tag)
}

// DefaultExtensions lists the resource extensions tried for every tag, in order.
var DefaultExtensions = []string{".yml", ".yaml", ".json"}

// FSSource reads "<tag>.<ext>" resources from an fs.FS.
type FSSource struct {
	fsys fs.FS
	dir  string
	exts []string
}

// NewFSSource creates a Source over fsys. Resources live at the root unless
// a subdirectory is given with WithDir.
//
// Example:
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	src := i18n.NewFSSource(localesFS, i18n.WithDir("locales"))
func NewFSSource(fsys fs.FS, opts ...FSOption) *FSSource {
	s := &FSSource{fsys: fsys, dir: ".", exts: DefaultExtensions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FSOption configures an FSSource.
type FSOption func(*FSSource)

// WithDir sets the directory inside the fs.FS holding locale resources.
func WithDir(dir string) FSOption {
	return func(s *FSSource) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithExtensions overrides the extensions tried for each tag.
func WithExtensions(exts ...string) FSOption {
	return func(s *FSSource) {
		if len(exts) > 0 {
			s.exts = exts
		}
	}
}

// Load returns the first resource found for tag.
func (s *FSSource) Load(ctx context.Context, tag string) (map[string]any, error) {
	if !validResourceName(tag) {
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, tag)
	}

	for _, ext := range s.exts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := path.Join(s.dir, tag+ext)
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}
		return decodeResource(name, data)
	}

	return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, tag)
}

// IsResource reports whether name looks like a locale resource and returns
// its tag.
func IsResource(name string) (string, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(base))
	switch ext {
	case ".yml", ".yaml", ".json":
	default:
		return "", false
	}
	tag := strings.TrimSuffix(base, path.Ext(base))
	if !validResourceName(tag) {
		return "", false
	}
	return tag, true
}

func validResourceName(tag string) bool {
	return tag != "" && tag != "." && tag != ".." && !strings.ContainsAny(tag, `/\`)
}

func decodeResource(name string, data []byte) (map[string]any, error) {
	tree := map[string]any{}

	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if len(strings.TrimSpace(string(data))) > 0 {
			err = json.Unmarshal(data, &tree)
		}
	default:
		err = yaml.Unmarshal(data, &tree)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidResource, name, err)
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}
