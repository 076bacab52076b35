package maps

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// ErrNotFound is returned by LoadByID when no file declares the ID.
var ErrNotFound = errors.New("map not found")

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Loader handles loading maps from a file tree.
type Loader struct {
	fsys fs.FS
	root string // Used for FilePath reporting
}

// NewLoader creates a loader reading maps below a directory.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// Builtin returns a loader over the maps embedded in the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("maps: embedded builtin directory missing: %v", err))
	}
	return &Loader{fsys: sub}
}

// LoadAll recursively scans and loads all map files.
// Invalid files are skipped. Returns maps sorted by ID.
func (l *Loader) LoadAll() ([]Map, error) {
	var maps []Map

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		m, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.describe(), err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// LoadFile loads a single map file, relative to the loader root.
func (l *Loader) LoadFile(p string) (Map, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	m, err := Parse(data)
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if l.root != "" {
		m.FilePath = path.Join(l.root, p)
	}
	return m, nil
}

// LoadByID loads a specific map by ID.
// A file that carries the ID (as its id key or its file name) but fails to
// parse reports that error instead of ErrNotFound.
func (l *Loader) LoadByID(id string) (Map, error) {
	var found *Map
	var loadErr error

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		m, err := l.LoadFile(p)
		if err != nil {
			if loadErr == nil && l.claims(p, id) {
				loadErr = err
			}
			return nil
		}
		if m.ID == id {
			found = &m
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return Map{}, fmt.Errorf("walking directory %s: %w", l.describe(), err)
	}

	switch {
	case found != nil:
		return *found, nil
	case loadErr != nil:
		return Map{}, loadErr
	}
	return Map{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// claims reports whether the file at p is meant to hold map id.
func (l *Loader) claims(p, id string) bool {
	if strings.TrimSuffix(path.Base(p), path.Ext(p)) == id {
		return true
	}
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return false
	}
	return declaredID(data) == id
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

// LoadPath loads a map from an arbitrary file path on disk.
func LoadPath(p string) (Map, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	m, err := Parse(data)
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	m.FilePath = p
	return m, nil
}

func (l *Loader) describe() string {
	if l.root == "" {
		return "builtin"
	}
	return l.root
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
