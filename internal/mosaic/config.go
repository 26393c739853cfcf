// internal/mosaic/config.go
package mosaic

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

const defaultPriority = 10

// Config is the declarative per-repository configuration tree, read from a
// mosaic.toml file. The project section is mandatory; everything else is
// optional.
type Config struct {
	Project   ProjectConfig    `toml:"project" json:"project"`
	Readme    *ReadmeConfig    `toml:"readme" json:"readme,omitempty"`
	Website   *WebsiteConfig   `toml:"website" json:"website,omitempty"`
	Package   *PackageConfig   `toml:"package" json:"package,omitempty"`
	Workspace *WorkspaceConfig `toml:"workspace" json:"workspace,omitempty"`
}

// ProjectConfig describes the project itself. Stars and Version are inclusion
// toggles, not literal values.
type ProjectConfig struct {
	Name        string      `toml:"name" json:"name,omitempty"`
	Description *string     `toml:"description" json:"description,omitempty"`
	Stars       bool        `toml:"stars" json:"stars"`
	Version     bool        `toml:"version" json:"version"`
	Priority    int         `toml:"priority" json:"priority"`
	Ignore      bool        `toml:"ignore" json:"ignore"`
	Handle      *string     `toml:"handle" json:"handle,omitempty"`
	Deprecated  *Deprecated `toml:"deprecated" json:"deprecated,omitempty"`
	Alternative *string     `toml:"alternative" json:"alternative,omitempty"`
}

// Deprecated marks a project as deprecated, optionally pointing at its
// replacement.
type Deprecated struct {
	Message     string  `toml:"message" json:"message"`
	Replacement *string `toml:"replacement" json:"replacement,omitempty"`
}

type ReadmeConfig struct {
	Enabled bool    `toml:"enabled" json:"enabled"`
	Path    *string `toml:"path" json:"path,omitempty"`
}

type WebsiteConfig struct {
	Enabled     bool     `toml:"enabled" json:"enabled"`
	Title       *string  `toml:"title" json:"title,omitempty"`
	Description *string  `toml:"description" json:"description,omitempty"`
	URL         *string  `toml:"url" json:"url,omitempty"`
	Keywords    []string `toml:"keywords" json:"keywords,omitempty"`
}

type PackageConfig struct {
	Enabled   bool    `toml:"enabled" json:"enabled"`
	Type      *string `toml:"type" json:"type,omitempty"`
	Downloads bool    `toml:"downloads" json:"downloads"`
	Name      *string `toml:"name" json:"name,omitempty"`
}

// WorkspaceConfig marks the repository as containing multiple logical
// sub-projects. Workspace expansion is not supported by the sync path.
type WorkspaceConfig struct {
	Enabled bool     `toml:"enabled" json:"enabled"`
	Ignores []string `toml:"ignores" json:"ignores,omitempty"`
}

// ResolvedConfig is the outcome of a successful resolution. External is true
// when the config was read from the delegate owner's override path instead of
// the repository's own canonical path.
type ResolvedConfig struct {
	Content  *Config `json:"content"`
	External bool    `json:"external"`
}

// IsWorkspace reports whether the config declares an enabled workspace.
func (c *Config) IsWorkspace() bool {
	return c.Workspace != nil && c.Workspace.Enabled
}

// ParseConfig parses a mosaic.toml document. The [project] section is
// required; project.priority defaults to 10.
func ParseConfig(text string) (*Config, error) {
	var sections map[string]any
	if err := toml.Unmarshal([]byte(text), &sections); err != nil {
		return nil, err
	}
	if _, ok := sections["project"]; !ok {
		return nil, errors.New("missing required [project] section")
	}

	cfg := Config{Project: ProjectConfig{Priority: defaultPriority}}
	if err := toml.Unmarshal([]byte(text), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
