package resource

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

// ErrDuplicateLocale is returned when two files of a directory describe the
// same locale.
var ErrDuplicateLocale = errors.New("locale defined by more than one resource")

// data holds the region name tables shipped with the module.
//
//go:embed data/*.json
var data embed.FS

// embeddedDir is the directory inside data that holds the resources.
const embeddedDir = "data"

// Embedded loads the region name tables compiled into the binary.
func Embedded() ([]*Resource, error) {
	return LoadFS(data, embeddedDir)
}

// LoadDir loads every resource file (*.json, *.yaml, *.yml) directly inside
// dir. Subdirectories are not visited.
func LoadDir(dir string) ([]*Resource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading %s: not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS loads every resource file inside dir of fsys. The result is sorted
// by locale identifier.
func LoadFS(fsys fs.FS, dir string) ([]*Resource, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	byLocale := make(map[string]string)
	var resources []*Resource
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := path.Join(dir, entry.Name())
		format, err := FormatFromPath(name)
		if err != nil {
			// Not a resource (README, .gitkeep, ...).
			continue
		}

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		r, err := parseNamed(raw, format, name)
		if err != nil {
			return nil, err
		}

		if prev, dup := byLocale[r.Locale]; dup {
			return nil, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateLocale, r.Locale, prev, name)
		}
		byLocale[r.Locale] = name
		resources = append(resources, r)
	}

	sort.Slice(resources, func(i, j int) bool {
		return resources[i].Locale < resources[j].Locale
	})
	return resources, nil
}
