package models

import "time"

// DefaultAvatar is used for archives without an avatar.
const DefaultAvatar = "assets/images/default-avatar.png"

// DefaultFiletype is used for items without a filetype.
const DefaultFiletype = "unknown"

type (
	RepositoryID string
	ArchiveID    string
	ItemID       string
)

// Repository is a top-level collection of archives.
type Repository struct {
	ID          RepositoryID `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	URL         string       `json:"url"`
	LastUpdated string       `json:"lastUpdated,omitempty"`
	ArchiveIDs  []ArchiveID  `json:"archives"`
	Error       bool         `json:"error"`
}

// Archive belongs to exactly one repository and owns its items.
type Archive struct {
	ID           ArchiveID    `json:"id"`
	RepositoryID RepositoryID `json:"repository"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Description  string       `json:"description"`
	Avatar       string       `json:"avatar"`
	URL          string       `json:"url"`
	LastUpdated  string       `json:"lastUpdated,omitempty"`
	Keywords     []string     `json:"keywords"`
	Tags         []string     `json:"tags"`
	// Categories are ordered; each entry nests under the previous one.
	Categories []string `json:"categories"`
	ItemIDs    []ItemID `json:"items"`
	Error      bool     `json:"error"`
}

// Item is a single file or link stored in an archive.
type Item struct {
	ID          ItemID    `json:"id"`
	ArchiveID   ArchiveID `json:"archive"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	LastUpdated string    `json:"lastUpdated,omitempty"`
	Filetype    string    `json:"filetype"`
	Error       bool      `json:"error"`
}

func (r Repository) LastUpdatedTime() (time.Time, error) { return parseTimestamp(r.LastUpdated) }
func (a Archive) LastUpdatedTime() (time.Time, error)    { return parseTimestamp(a.LastUpdated) }
func (i Item) LastUpdatedTime() (time.Time, error)       { return parseTimestamp(i.LastUpdated) }

type repositoryRecord struct {
	Name        string `mapstructure:"name"`
	Slug        string `mapstructure:"slug"`
	Description string `mapstructure:"description"`
	URL         string `mapstructure:"url"`
	LastUpdated string `mapstructure:"lastUpdated"`
	Error       bool   `mapstructure:"error"`
}

type archiveRecord struct {
	Name        string   `mapstructure:"name"`
	Slug        string   `mapstructure:"slug"`
	Description string   `mapstructure:"description"`
	Avatar      string   `mapstructure:"avatar"`
	URL         string   `mapstructure:"url"`
	LastUpdated string   `mapstructure:"lastUpdated"`
	Keywords    []string `mapstructure:"keywords"`
	Tags        []string `mapstructure:"tags"`
	Categories  []string `mapstructure:"categories"`
	Error       bool     `mapstructure:"error"`
}

type itemRecord struct {
	Name        string `mapstructure:"name"`
	Slug        string `mapstructure:"slug"`
	Description string `mapstructure:"description"`
	URL         string `mapstructure:"url"`
	LastUpdated string `mapstructure:"lastUpdated"`
	Filetype    string `mapstructure:"filetype"`
	Error       bool   `mapstructure:"error"`
}

// NewRepository builds a Repository from a raw record. Nested archives are
// ignored here; Builder.AddRepository handles them.
func NewRepository(raw map[string]any) Repository {
	var rec repositoryRecord
	err := decode(raw, &rec)

	slug := defaultSlug(rec.Slug, rec.Name)
	return Repository{
		ID:          RepositoryID(slug),
		Name:        rec.Name,
		Slug:        slug,
		Description: rec.Description,
		URL:         trimSlash(rec.URL),
		LastUpdated: rec.LastUpdated,
		ArchiveIDs:  []ArchiveID{},
		Error:       rec.Error || err != nil,
	}
}

// NewArchive builds an Archive owned by repo. Nested items are ignored here;
// Builder.AddArchive handles them.
func NewArchive(repo RepositoryID, raw map[string]any) Archive {
	var rec archiveRecord
	err := decode(raw, &rec)

	slug := defaultSlug(rec.Slug, rec.Name)
	avatar := rec.Avatar
	if avatar == "" {
		avatar = DefaultAvatar
	}

	return Archive{
		ID:           ArchiveID(string(repo) + "/" + slug),
		RepositoryID: repo,
		Name:         rec.Name,
		Slug:         slug,
		Description:  rec.Description,
		Avatar:       avatar,
		URL:          trimSlash(rec.URL),
		LastUpdated:  rec.LastUpdated,
		Keywords:     orEmpty(rec.Keywords),
		Tags:         orEmpty(rec.Tags),
		Categories:   orEmpty(rec.Categories),
		ItemIDs:      []ItemID{},
		Error:        rec.Error || err != nil,
	}
}

// NewItem builds an Item owned by archive.
func NewItem(archive ArchiveID, raw map[string]any) Item {
	var rec itemRecord
	err := decode(raw, &rec)

	slug := defaultSlug(rec.Slug, rec.Name)
	filetype := rec.Filetype
	if filetype == "" {
		filetype = DefaultFiletype
	}

	return Item{
		ID:          ItemID(string(archive) + "/" + slug),
		ArchiveID:   archive,
		Name:        rec.Name,
		Slug:        slug,
		Description: rec.Description,
		URL:         trimSlash(rec.URL),
		LastUpdated: rec.LastUpdated,
		Filetype:    filetype,
		Error:       rec.Error || err != nil,
	}
}

func defaultSlug(slug, name string) string {
	if slug != "" {
		return slug
	}
	return EncodeURIComponent(name)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
