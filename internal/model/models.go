// internal/model/models.go
package model

// RepoSummary is the slice of repository metadata the sync pipeline needs,
// translated from the GitHub API representation.
type RepoSummary struct {
	GithubID      int64
	Name          string
	NameWithOwner string
	Description   *string
	URL           string
	IsFork        bool
	IsArchived    bool
}
