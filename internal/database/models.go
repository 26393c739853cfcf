// internal/database/models.go
package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Project is a row in the projects table. A project is keyed externally by
// its stable GithubID; the serial ID is internal to the store. Config holds
// the serialized resolved configuration and is null only for rows written by
// an explicit no-config policy, never implicitly.
type Project struct {
	ID            int64
	GithubID      int64
	Name          string
	NameWithOwner string
	Description   pgtype.Text
	Url           string
	Config        []byte
	LastUpdated   pgtype.Timestamptz
}
