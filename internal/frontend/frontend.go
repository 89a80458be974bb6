// Package frontend decodes normalized unit descriptors into the structural model.
//
// Language-specific parsing is out of scope for the engine: per-ecosystem
// front-ends emit descriptor documents (*.unit.json, *.unit.yaml) holding the
// normalized shape of each class or component, and this package turns those
// documents into StructuralUnit graphs.
package frontend

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/cogload/internal/contract"
	"github.com/huangsam/cogload/schema"
)

// Descriptor file suffixes recognized by the adapter.
var descriptorSuffixes = []string{
	".unit.json",
	".units.json",
	".unit.yaml",
	".units.yaml",
	".unit.yml",
	".units.yml",
}

// Adapter is the default FrontendAdapter for normalized descriptor files.
type Adapter struct{}

// NewAdapter creates a descriptor file adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Discover walks the given paths and returns every descriptor file that is
// not excluded. Explicit file arguments are always accepted regardless of
// suffix, so a front-end can hand over a single model file under any name.
// The result is sorted for deterministic downstream processing.
func (a *Adapter) Discover(ctx context.Context, paths []string, excludes []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(p string) {
		p = filepath.ToSlash(p)
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot read input path: %w", err)
		}
		if !info.IsDir() {
			if !contract.ShouldIgnore(filepath.ToSlash(root), excludes) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			// Exclude patterns match against the root-relative path, so
			// "vendor/" works no matter where the root itself lives.
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				rel = p
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if rel != "." && contract.ShouldIgnore(rel+"/", excludes) {
					return filepath.SkipDir
				}
				return nil
			}
			if !isDescriptor(p) || contract.ShouldIgnore(rel, excludes) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// DecodeFile reads one descriptor file and builds its structural units.
func (a *Adapter) DecodeFile(ctx context.Context, path string) ([]schema.StructuralUnit, []schema.SkippedUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read descriptor: %w", err)
	}

	doc, err := decodeDocument(path, data)
	if err != nil {
		return nil, nil, err
	}

	units := make([]schema.StructuralUnit, 0, len(doc.Units))
	var skipped []schema.SkippedUnit
	for _, ud := range doc.Units {
		unit, err := buildUnit(path, ud)
		if err != nil {
			// Fatal for this unit only, never silently dropped.
			skipped = append(skipped, schema.SkippedUnit{
				Path:   filepath.ToSlash(path),
				Unit:   ud.ID,
				Reason: err.Error(),
			})
			continue
		}
		units = append(units, unit)
	}
	return units, skipped, nil
}

// isDescriptor reports whether the file name carries a recognized suffix.
func isDescriptor(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range descriptorSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
