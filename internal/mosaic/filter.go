// internal/mosaic/filter.go
package mosaic

import (
	"strings"

	"mosaic-service/internal/model"
)

// FilterRepositories returns the candidates eligible for sync: not a fork,
// not archived, and excluded by neither full name nor short name. Input order
// is preserved and duplicates pass through untouched.
func FilterRepositories(candidates []model.RepoSummary, excluded map[string]struct{}) []model.RepoSummary {
	kept := make([]model.RepoSummary, 0, len(candidates))
	for _, repo := range candidates {
		if repo.IsFork || repo.IsArchived {
			continue
		}
		if _, ok := excluded[repo.NameWithOwner]; ok {
			continue
		}
		if _, ok := excluded[shortName(repo.NameWithOwner)]; ok {
			continue
		}
		kept = append(kept, repo)
	}
	return kept
}

// shortName returns the part of an owner-qualified name after the first "/".
func shortName(nameWithOwner string) string {
	if _, name, found := strings.Cut(nameWithOwner, "/"); found {
		return name
	}
	return nameWithOwner
}
