package server

import (
	"context"
	"fmt"

	"github.com/vtgrid/tilefilter/internal/profiles"
)

// LoadProfilesFromDir reads every profile document under dir and upserts it,
// persisting the raw source and swapping in the compiled snapshot.
// Returns the number of profiles loaded.
func (s *AppServer) LoadProfilesFromDir(ctx context.Context, dir string) (int, error) {
	found, err := profiles.LoadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("load profile dir %s: %w", dir, err)
	}
	loaded := 0
	for _, p := range found {
		if err := s.UpsertProfile(ctx, p.Name, string(p.Source)); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
