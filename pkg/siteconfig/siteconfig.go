package siteconfig

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/archivist/pkg/models"
)

// AutoURL is the url value replaced from the GitHub environment.
const AutoURL = "auto"

// Site is the loaded site configuration.
type Site struct {
	Index       *models.Index `json:"-"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Author      string        `json:"author,omitempty"`
	Language    string        `json:"language,omitempty"`
	URL         string        `json:"url"`
	Keywords    []string      `json:"keywords"`
}

// Problem is a record that loaded with its error flag set.
type Problem struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type file struct {
	Keywords     any    `yaml:"keywords"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Author       string `yaml:"author"`
	Language     string `yaml:"language"`
	URL          string `yaml:"url"`
	Repositories []any  `yaml:"repositories"`
}

type options struct {
	getenv func(string) string
}

// Option configures Load.
type Option func(*options)

// WithGetenv replaces os.Getenv for url expansion.
func WithGetenv(fn func(string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.getenv = fn
		}
	}
}

// Load reads the site file name from fsys along with every repository file
// it references.
func Load(fsys fs.FS, name string, opts ...Option) (*Site, error) {
	o := &options{getenv: os.Getenv}
	for _, opt := range opts {
		opt(o)
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, name, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}

	b := models.NewBuilder()
	dir := path.Dir(name)
	for i, entry := range f.Repositories {
		raw, err := repositoryRecord(fsys, dir, entry)
		if err != nil {
			return nil, fmt.Errorf("repositories[%d]: %w", i, err)
		}
		if _, err := b.AddRepository(raw); err != nil {
			return nil, fmt.Errorf("%w: repositories[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	keywords, err := keywordList(f.Keywords)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}

	return &Site{
		Index:       b.Build(),
		Title:       f.Title,
		Description: f.Description,
		Author:      f.Author,
		Language:    f.Language,
		URL:         ExpandURL(f.URL, o.getenv),
		Keywords:    keywords,
	}, nil
}

// keywordList accepts a YAML list or a comma-separated string.
func keywordList(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		return models.SplitList(val), nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("keywords: expected a list of strings, got %T", item)
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("keywords: expected a list or a string, got %T", v)
	}
}

func repositoryRecord(fsys fs.FS, dir string, entry any) (map[string]any, error) {
	switch v := entry.(type) {
	case map[string]any:
		return v, nil
	case string:
		name := path.Join(dir, v)
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, name, err)
		}
		raw := map[string]any{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: expected a record or a path, got %T", ErrInvalidConfig, entry)
	}
}

// ExpandURL resolves the "auto" url against the GitHub Pages environment.
// Any other value is returned unchanged.
func ExpandURL(url string, getenv func(string) string) string {
	if url != AutoURL {
		return url
	}
	username, repository := getenv("GITHUB_USERNAME"), getenv("GITHUB_REPOSITORY")
	if username == "" || repository == "" {
		return "/"
	}
	return "https://" + username + ".github.io/" + repository
}

// Problems lists every repository, archive and item whose error flag is set.
func (s *Site) Problems() []Problem {
	var out []Problem
	for _, repo := range s.Index.Repositories() {
		if repo.Error {
			out = append(out, Problem{Kind: "repository", ID: string(repo.ID), Name: repo.Name})
		}
		for _, archive := range s.Index.ArchivesOf(repo.ID) {
			if archive.Error {
				out = append(out, Problem{Kind: "archive", ID: string(archive.ID), Name: archive.Name})
			}
			for _, item := range s.Index.ItemsOf(archive.ID) {
				if item.Error {
					out = append(out, Problem{Kind: "item", ID: string(item.ID), Name: item.Name})
				}
			}
		}
	}
	return out
}
