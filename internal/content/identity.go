package content

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// indexStem marks a file whose folder is the content identity.
const indexStem = "index"

// IdentityKind tells whether a content item owns an asset directory.
type IdentityKind int

const (
	// Standalone content is a single file identified by its stem.
	Standalone IdentityKind = iota
	// WithAssets content is an index file identified by its folder.
	WithAssets
)

func (k IdentityKind) String() string {
	if k == WithAssets {
		return "WithAssets"
	}
	return "Standalone"
}

// Identity is the path-derived identifier of a content item.
type Identity struct {
	Kind IdentityKind
	Name string
}

func (i Identity) String() string { return i.Name }

// ResolveIdentity derives the identity of the markdown file at path.
func ResolveIdentity(path string) (Identity, error) {
	stem := fileStem(filepath.Base(path))
	if !validName(stem) {
		return Identity{}, &IdentityError{Path: path, Err: ErrInvalidFilename}
	}
	if stem != indexStem {
		return Identity{Kind: Standalone, Name: stem}, nil
	}

	parent := filepath.Base(filepath.Dir(path))
	if parent == "." || parent == ".." {
		return Identity{}, &IdentityError{Path: path, Err: ErrInvalidParentDirectory}
	}
	folder := fileStem(parent)
	if !validName(folder) {
		return Identity{}, &IdentityError{Path: path, Err: ErrInvalidParentDirectory}
	}
	return Identity{Kind: WithAssets, Name: folder}, nil
}

// fileStem strips the last extension from name.
func fileStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func validName(s string) bool {
	return s != "" && s != "." && s != ".." &&
		!strings.ContainsAny(s, `/\`) &&
		utf8.ValidString(s)
}
