// internal/database/querier.go
package database

import (
	"context"
)

// Querier is the query surface consumed by the syncer and the API layer.
// Tests mock it.
type Querier interface {
	CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error)
	DeleteProjectsNotIn(ctx context.Context, githubIDs []int64) (int64, error)
	GetProjectByGithubID(ctx context.Context, githubID int64) (Project, error)
	GetProjectByNameWithOwner(ctx context.Context, nameWithOwner string) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error)
}

var _ Querier = (*Queries)(nil)
