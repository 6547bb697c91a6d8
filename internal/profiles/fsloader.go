// Package profiles loads named filter profiles from a directory tree.
package profiles

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vtgrid/tilefilter/pkg/filter"
	"github.com/vtgrid/tilefilter/pkg/profile"
)

// Profile is one named rule set together with its raw document, kept so
// callers can persist the source verbatim.
type Profile struct {
	Name   string
	Source []byte
	Desc   *filter.Description
}

func isYAML(p string) bool {
	l := strings.ToLower(p)
	return strings.HasSuffix(l, ".yml") || strings.HasSuffix(l, ".yaml")
}

// LoadDir walks root recursively and parses every .yml/.yaml file as one
// profile. The profile name is the file name without extension; a duplicate
// name in a subdirectory is an error rather than a silent overwrite.
// Results are sorted by name for deterministic processing.
func LoadDir(root string) ([]Profile, error) {
	seen := make(map[string]string)
	var out []Profile
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("duplicate profile name %q (%s and %s)", name, prev, p)
		}
		seen[name] = p
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		desc, err := profile.Load(b)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, Profile{Name: name, Source: b, Desc: desc})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
