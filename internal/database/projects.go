// internal/database/projects.go
package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createProject = `
INSERT INTO projects (github_id, name, name_with_owner, description, url, config, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, now())
RETURNING id, github_id, name, name_with_owner, description, url, config, last_updated
`

type CreateProjectParams struct {
	GithubID      int64
	Name          string
	NameWithOwner string
	Description   pgtype.Text
	Url           string
	Config        []byte
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, createProject,
		arg.GithubID,
		arg.Name,
		arg.NameWithOwner,
		arg.Description,
		arg.Url,
		arg.Config,
	)
	var p Project
	err := row.Scan(
		&p.ID,
		&p.GithubID,
		&p.Name,
		&p.NameWithOwner,
		&p.Description,
		&p.Url,
		&p.Config,
		&p.LastUpdated,
	)
	return p, err
}

const deleteProjectsNotIn = `
DELETE FROM projects
WHERE NOT (github_id = ANY($1::bigint[]))
`

// DeleteProjectsNotIn removes every project whose github_id is not in the
// given set and reports how many rows went away.
func (q *Queries) DeleteProjectsNotIn(ctx context.Context, githubIDs []int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteProjectsNotIn, githubIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getProjectByGithubID = `
SELECT id, github_id, name, name_with_owner, description, url, config, last_updated
FROM projects
WHERE github_id = $1
`

func (q *Queries) GetProjectByGithubID(ctx context.Context, githubID int64) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByGithubID, githubID)
	var p Project
	err := row.Scan(
		&p.ID,
		&p.GithubID,
		&p.Name,
		&p.NameWithOwner,
		&p.Description,
		&p.Url,
		&p.Config,
		&p.LastUpdated,
	)
	return p, err
}

const getProjectByNameWithOwner = `
SELECT id, github_id, name, name_with_owner, description, url, config, last_updated
FROM projects
WHERE name_with_owner = $1
`

func (q *Queries) GetProjectByNameWithOwner(ctx context.Context, nameWithOwner string) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByNameWithOwner, nameWithOwner)
	var p Project
	err := row.Scan(
		&p.ID,
		&p.GithubID,
		&p.Name,
		&p.NameWithOwner,
		&p.Description,
		&p.Url,
		&p.Config,
		&p.LastUpdated,
	)
	return p, err
}

const listProjects = `
SELECT id, github_id, name, name_with_owner, description, url, config, last_updated
FROM projects
ORDER BY name_with_owner
`

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.Query(ctx, listProjects)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(
			&p.ID,
			&p.GithubID,
			&p.Name,
			&p.NameWithOwner,
			&p.Description,
			&p.Url,
			&p.Config,
			&p.LastUpdated,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const updateProject = `
UPDATE projects
SET name = $2,
    name_with_owner = $3,
    description = $4,
    url = $5,
    config = $6,
    last_updated = now()
WHERE github_id = $1
RETURNING id, github_id, name, name_with_owner, description, url, config, last_updated
`

type UpdateProjectParams struct {
	GithubID      int64
	Name          string
	NameWithOwner string
	Description   pgtype.Text
	Url           string
	Config        []byte
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (Project, error) {
	row := q.db.QueryRow(ctx, updateProject,
		arg.GithubID,
		arg.Name,
		arg.NameWithOwner,
		arg.Description,
		arg.Url,
		arg.Config,
	)
	var p Project
	err := row.Scan(
		&p.ID,
		&p.GithubID,
		&p.Name,
		&p.NameWithOwner,
		&p.Description,
		&p.Url,
		&p.Config,
		&p.LastUpdated,
	)
	return p, err
}
