package playerok

import (
	"io"
	"os"
	"path/filepath"
)

// UserLookup selects a user by id or by username.
type UserLookup struct {
	id       string
	username string
}

// UserByID looks a user up by id.
func UserByID(id string) UserLookup {
	return UserLookup{id: id}
}

// UserByUsername looks a user up by username.
func UserByUsername(username string) UserLookup {
	return UserLookup{username: username}
}

// ID returns the id, empty for a username lookup.
func (l UserLookup) ID() string { return l.id }

// Username returns the username, empty for an id lookup.
func (l UserLookup) Username() string { return l.username }

// Validate rejects a lookup carrying neither key.
func (l UserLookup) Validate() error {
	if l.id == "" && l.username == "" {
		return InvalidArgumentError("user lookup needs an id or a username")
	}

	return nil
}

// ItemLookup selects an item by id or by slug.
type ItemLookup struct {
	id   string
	slug string
}

// ItemByID looks an item up by id.
func ItemByID(id string) ItemLookup {
	return ItemLookup{id: id}
}

// ItemBySlug looks an item up by slug.
func ItemBySlug(slug string) ItemLookup {
	return ItemLookup{slug: slug}
}

// ID returns the id, empty for a slug lookup.
func (l ItemLookup) ID() string { return l.id }

// Slug returns the slug, empty for an id lookup.
func (l ItemLookup) Slug() string { return l.slug }

// Validate rejects a lookup carrying neither key.
func (l ItemLookup) Validate() error {
	if l.id == "" && l.slug == "" {
		return InvalidArgumentError("item lookup needs an id or a slug")
	}

	return nil
}

// GameLookup selects a game by id or by slug.
type GameLookup struct {
	id   string
	slug string
}

// GameByID looks a game up by id.
func GameByID(id string) GameLookup {
	return GameLookup{id: id}
}

// GameBySlug looks a game up by slug.
func GameBySlug(slug string) GameLookup {
	return GameLookup{slug: slug}
}

// ID returns the id, empty for a slug lookup.
func (l GameLookup) ID() string { return l.id }

// Slug returns the slug, empty for an id lookup.
func (l GameLookup) Slug() string { return l.slug }

// Validate rejects a lookup carrying neither key.
func (l GameLookup) Validate() error {
	if l.id == "" && l.slug == "" {
		return InvalidArgumentError("game lookup needs an id or a slug")
	}

	return nil
}

// CategoryLookup selects a game category by id, or by slug within a game.
type CategoryLookup struct {
	id     string
	gameID string
	slug   string
}

// CategoryByID looks a category up by id.
func CategoryByID(id string) CategoryLookup {
	return CategoryLookup{id: id}
}

// CategoryBySlug looks a category up by its slug within a game.
func CategoryBySlug(gameID, slug string) CategoryLookup {
	return CategoryLookup{gameID: gameID, slug: slug}
}

// ID returns the id, empty for a slug lookup.
func (l CategoryLookup) ID() string { return l.id }

// GameID returns the game of a slug lookup.
func (l CategoryLookup) GameID() string { return l.gameID }

// Slug returns the slug, empty for an id lookup.
func (l CategoryLookup) Slug() string { return l.slug }

// Validate rejects a lookup carrying no usable key.
func (l CategoryLookup) Validate() error {
	if l.id == "" && l.slug == "" {
		return InvalidArgumentError("category lookup needs an id or a slug")
	}

	return nil
}

// CategoryRef names a category either by a fetched entity or by bare id.
type CategoryRef struct {
	id string
}

// CategoryRefID refers to a category by id.
func CategoryRefID(id string) CategoryRef {
	return CategoryRef{id: id}
}

// ID returns the referenced category id.
func (r CategoryRef) ID() string { return r.id }

// ObtainingTypeRef names an obtaining type either by a fetched entity or by
// bare id.
type ObtainingTypeRef struct {
	id string
}

// ObtainingTypeRefID refers to an obtaining type by id.
func ObtainingTypeRefID(id string) ObtainingTypeRef {
	return ObtainingTypeRef{id: id}
}

// ID returns the referenced obtaining type id.
func (r ObtainingTypeRef) ID() string { return r.id }

// Photo is an image to upload, read from disk or from a caller's reader.
type Photo struct {
	path   string
	name   string
	reader io.Reader
}

// PhotoFile uploads the file at path.
func PhotoFile(path string) Photo {
	return Photo{path: path, name: filepath.Base(path)}
}

// PhotoReader uploads the content of r under name.
func PhotoReader(name string, r io.Reader) Photo {
	return Photo{name: name, reader: r}
}

// Name is the file name sent with the upload.
func (p Photo) Name() string { return p.name }

// Validate rejects an empty photo.
func (p Photo) Validate() error {
	if p.path == "" && p.reader == nil {
		return InvalidArgumentError("photo needs a path or a reader")
	}

	return nil
}

// Open returns the photo content. The caller closes it.
func (p Photo) Open() (io.ReadCloser, error) {
	if p.reader != nil {
		return io.NopCloser(p.reader), nil
	}

	file, err := os.Open(p.path)
	if err != nil {
		return nil, InvalidArgumentError("opening photo %s: %v", p.path, err)
	}

	return file, nil
}
