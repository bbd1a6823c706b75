package models

import (
	"fmt"
	"slices"
)

// Builder assembles an Index. It is not safe for concurrent use.
type Builder struct {
	repos    map[RepositoryID]*Repository
	archives map[ArchiveID]*Archive
	items    map[ItemID]*Item
	order    []RepositoryID
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		repos:    make(map[RepositoryID]*Repository),
		archives: make(map[ArchiveID]*Archive),
		items:    make(map[ItemID]*Item),
	}
}

// AddRepository adds a repository and every record in its "archives" list.
func (b *Builder) AddRepository(raw map[string]any) (RepositoryID, error) {
	repo := NewRepository(raw)
	if _, exists := b.repos[repo.ID]; exists {
		return "", fmt.Errorf("%w: repository %q", ErrDuplicateID, repo.ID)
	}
	b.repos[repo.ID] = &repo
	b.order = append(b.order, repo.ID)

	for _, child := range children(raw, "archives") {
		if _, err := b.AddArchive(repo.ID, child); err != nil {
			return repo.ID, err
		}
	}
	return repo.ID, nil
}

// AddArchive adds an archive to repo and every record in its "items" list.
func (b *Builder) AddArchive(repo RepositoryID, raw map[string]any) (ArchiveID, error) {
	parent, ok := b.repos[repo]
	if !ok {
		return "", fmt.Errorf("%w: repository %q", ErrUnknownParent, repo)
	}

	archive := NewArchive(repo, raw)
	if _, exists := b.archives[archive.ID]; exists {
		return "", fmt.Errorf("%w: archive %q", ErrDuplicateID, archive.ID)
	}
	b.archives[archive.ID] = &archive
	parent.ArchiveIDs = append(parent.ArchiveIDs, archive.ID)

	for _, child := range children(raw, "items") {
		if _, err := b.AddItem(archive.ID, child); err != nil {
			return archive.ID, err
		}
	}
	return archive.ID, nil
}

// AddItem adds an item to archive.
func (b *Builder) AddItem(archive ArchiveID, raw map[string]any) (ItemID, error) {
	parent, ok := b.archives[archive]
	if !ok {
		return "", fmt.Errorf("%w: archive %q", ErrUnknownParent, archive)
	}

	item := NewItem(archive, raw)
	if _, exists := b.items[item.ID]; exists {
		return "", fmt.Errorf("%w: item %q", ErrDuplicateID, item.ID)
	}
	b.items[item.ID] = &item
	parent.ItemIDs = append(parent.ItemIDs, item.ID)
	return item.ID, nil
}

// Build returns an Index over a copy of everything added so far.
func (b *Builder) Build() *Index {
	idx := &Index{
		repos:    make(map[RepositoryID]Repository, len(b.repos)),
		archives: make(map[ArchiveID]Archive, len(b.archives)),
		items:    make(map[ItemID]Item, len(b.items)),
		order:    slices.Clone(b.order),
	}
	for id, r := range b.repos {
		idx.repos[id] = r.clone()
	}
	for id, a := range b.archives {
		idx.archives[id] = a.clone()
	}
	for id, i := range b.items {
		idx.items[id] = *i
	}
	return idx
}

// children returns the mapping entries of raw[key], skipping anything else.
func children(raw map[string]any, key string) []map[string]any {
	list, _ := raw[key].([]any)
	out := make([]map[string]any, 0, len(list))
	for _, v := range list {
		switch m := v.(type) {
		case map[string]any:
			out = append(out, m)
		case map[any]any:
			converted := make(map[string]any, len(m))
			for k, sub := range m {
				converted[fmt.Sprint(k)] = sub
			}
			out = append(out, converted)
		}
	}
	return out
}

// Index is an immutable view over repositories, archives and items.
// Returned values are copies.
type Index struct {
	repos    map[RepositoryID]Repository
	archives map[ArchiveID]Archive
	items    map[ItemID]Item
	order    []RepositoryID
}

// Repositories returns all repositories in insertion order.
func (x *Index) Repositories() []Repository {
	out := make([]Repository, 0, len(x.order))
	for _, id := range x.order {
		out = append(out, x.repos[id].clone())
	}
	return out
}

func (x *Index) Repository(id RepositoryID) (Repository, bool) {
	r, ok := x.repos[id]
	return r.clone(), ok
}

func (x *Index) Archive(id ArchiveID) (Archive, bool) {
	a, ok := x.archives[id]
	return a.clone(), ok
}

func (x *Index) Item(id ItemID) (Item, bool) {
	i, ok := x.items[id]
	return i, ok
}

// FindArchive looks an archive up by repository and archive slug.
func (x *Index) FindArchive(repoSlug, archiveSlug string) (Archive, bool) {
	return x.Archive(ArchiveID(repoSlug + "/" + archiveSlug))
}

// FindItem looks an item up by its slug path.
func (x *Index) FindItem(repoSlug, archiveSlug, itemSlug string) (Item, bool) {
	return x.Item(ItemID(repoSlug + "/" + archiveSlug + "/" + itemSlug))
}

// ArchivesOf returns the archives of repo in insertion order.
func (x *Index) ArchivesOf(repo RepositoryID) []Archive {
	r, ok := x.repos[repo]
	if !ok {
		return nil
	}
	out := make([]Archive, 0, len(r.ArchiveIDs))
	for _, id := range r.ArchiveIDs {
		out = append(out, x.archives[id].clone())
	}
	return out
}

// ItemsOf returns the items of archive in insertion order.
func (x *Index) ItemsOf(archive ArchiveID) []Item {
	a, ok := x.archives[archive]
	if !ok {
		return nil
	}
	out := make([]Item, 0, len(a.ItemIDs))
	for _, id := range a.ItemIDs {
		out = append(out, x.items[id])
	}
	return out
}

// Len returns the number of repositories, archives and items.
func (x *Index) Len() (repos, archives, items int) {
	return len(x.repos), len(x.archives), len(x.items)
}

func (r Repository) clone() Repository {
	r.ArchiveIDs = slices.Clone(r.ArchiveIDs)
	return r
}

func (a Archive) clone() Archive {
	a.Keywords = slices.Clone(a.Keywords)
	a.Tags = slices.Clone(a.Tags)
	a.Categories = slices.Clone(a.Categories)
	a.ItemIDs = slices.Clone(a.ItemIDs)
	return a
}
